package clerk

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shamba/shamba-api/internal/user"
)

// WebhookHandler receives Clerk webhook deliveries, verifies them and
// forwards user.created events into the user service.
type WebhookHandler struct {
	verifier *Verifier
	users    *user.Service
	guard    *ReplayGuard
	logger   *slog.Logger
}

// NewWebhookHandler builds the webhook HTTP handler. guard may be nil, which
// disables replay protection.
func NewWebhookHandler(verifier *Verifier, users *user.Service, guard *ReplayGuard, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, users: users, guard: guard, logger: logger}
}

// Handle processes one webhook delivery. Verification failures map to 400,
// a missing secret to 500, downstream sync failures to 500; everything else,
// including event types this service does not act on, is acknowledged with 200.
func (h *WebhookHandler) Handle(c *fiber.Ctx) error {
	headers := Headers{
		ID:        c.Get(HeaderID),
		Timestamp: c.Get(HeaderTimestamp),
		Signature: c.Get(HeaderSignature),
	}

	evt, err := h.verifier.Verify(c.Body(), headers)
	switch {
	case errors.Is(err, ErrMissingSecret):
		h.logger.Error("webhook secret is not configured")
		return fiber.NewError(http.StatusInternalServerError, "webhook secret is not configured")
	case err != nil:
		h.logger.Warn("webhook delivery rejected",
			slog.String("delivery_id", headers.ID),
			slog.Any("error", err),
		)
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if !h.guard.FirstDelivery(c.UserContext(), headers.ID) {
		h.logger.Info("duplicate webhook delivery acknowledged",
			slog.String("delivery_id", headers.ID),
			slog.String("type", evt.Type),
		)
		return c.SendStatus(http.StatusOK)
	}

	switch evt.Type {
	case EventUserCreated:
		data, err := evt.UserCreated()
		if err != nil {
			h.logger.Warn("webhook payload rejected",
				slog.String("delivery_id", headers.ID),
				slog.Any("error", err),
			)
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		synced, created, err := h.users.Sync(c.UserContext(), user.SyncInput{
			ClerkID: data.ID,
			Name:    data.FullName(),
			Email:   data.PrimaryEmail(),
			Image:   data.ImageURL,
		})
		if err != nil {
			h.logger.Error("user sync failed",
				slog.String("delivery_id", headers.ID),
				slog.String("clerk_id", data.ID),
				slog.Any("error", err),
			)
			return fiber.NewError(http.StatusInternalServerError, "user sync failed")
		}
		h.logger.Info("clerk user synchronized",
			slog.String("clerk_id", data.ID),
			slog.String("user_id", synced.ID),
			slog.Bool("created", created),
		)
	default:
		h.logger.Info("ignoring clerk event",
			slog.String("delivery_id", headers.ID),
			slog.String("type", evt.Type),
		)
	}

	return c.SendStatus(http.StatusOK)
}
