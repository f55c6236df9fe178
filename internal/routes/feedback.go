package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shamba/shamba-api/internal/feedback"
)

// RegisterFeedbackRoutes wires the feedback mutation/query surface.
func RegisterFeedbackRoutes(r fiber.Router, h *feedback.Handler) {
	r.Post("/feedback", h.Submit)
	r.Get("/predictions/:predictionId/feedback", h.ListByPrediction)
}
