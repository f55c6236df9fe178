package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shamba/shamba-api/internal/prediction"
)

// RegisterPredictionRoutes wires the prediction mutation/query surface.
func RegisterPredictionRoutes(r fiber.Router, h *prediction.Handler) {
	r.Post("/predictions", h.Add)
	r.Get("/users/:userId/predictions", h.ListByUser)
}
