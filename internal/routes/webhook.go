package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shamba/shamba-api/internal/clerk"
)

// RegisterWebhookRoutes wires the Clerk webhook endpoint. It is registered on
// the app root rather than the versioned API group because the path is fixed
// in the identity provider's dashboard configuration.
func RegisterWebhookRoutes(app *fiber.App, h *clerk.WebhookHandler) {
	app.Post("/webhooks/clerk", h.Handle)
}
