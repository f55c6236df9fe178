package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shamba/shamba-api/internal/user"
)

// RegisterUserRoutes wires the user mutation/query surface.
func RegisterUserRoutes(r fiber.Router, h *user.Handler) {
	r.Post("/users/sync", h.Sync)
	r.Get("/users", h.List)
	r.Get("/users/clerk/:clerkId", h.GetByClerkID)
}
