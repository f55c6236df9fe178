package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shamba/shamba-api/internal/clerk"
	"github.com/shamba/shamba-api/internal/config"
	"github.com/shamba/shamba-api/internal/feedback"
	"github.com/shamba/shamba-api/internal/middleware"
	"github.com/shamba/shamba-api/internal/prediction"
	"github.com/shamba/shamba-api/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a
// database the service falls back to in-memory storage, and without Redis
// the webhook replay guard is disabled; both fallbacks are development-only.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var userRepo user.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
	}
	var predictionRepo prediction.Repository
	if d.DB != nil {
		predictionRepo = prediction.NewPostgresRepository(d.DB)
	} else {
		predictionRepo = prediction.NewMemoryRepository()
	}
	var feedbackRepo feedback.Repository
	if d.DB != nil {
		feedbackRepo = feedback.NewPostgresRepository(d.DB)
	} else {
		feedbackRepo = feedback.NewMemoryRepository()
	}

	userSvc := user.NewService(userRepo)
	predictionSvc := prediction.NewService(predictionRepo)
	feedbackSvc := feedback.NewService(feedbackRepo)

	verifier := clerk.NewVerifier(d.Cfg.ClerkWebhookSecret)
	var guard *clerk.ReplayGuard
	if d.Cache != nil {
		guard = clerk.NewReplayGuard(d.Cache, d.Cfg.WebhookReplayTTL, d.Logger)
	}
	webhookHandler := clerk.NewWebhookHandler(verifier, userSvc, guard, d.Logger)

	userHandler := user.NewHandler(userSvc)
	predictionHandler := prediction.NewHandler(predictionSvc)
	feedbackHandler := feedback.NewHandler(feedbackSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterUserRoutes(api, userHandler)
	RegisterPredictionRoutes(api, predictionHandler)
	RegisterFeedbackRoutes(api, feedbackHandler)
	RegisterWebhookRoutes(app, webhookHandler)

	return nil
}
