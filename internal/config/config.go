package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAppName       = "ShambaAPI"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultReplayTTL     = 24 * time.Hour
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName            string
	AppEnv             string
	Port               string
	LogLevel           string
	DatabaseURL        string
	RedisURL           string
	ClerkWebhookSecret string
	ShutdownPeriod     time.Duration
	WebhookReplayTTL   time.Duration
}

// Load reads configuration values from the environment and populates a Config
// instance. DATABASE_URL and REDIS_URL are mandatory outside of development;
// in development the service falls back to in-memory storage and skips the
// webhook replay guard. CLERK_WEBHOOK_SECRET is intentionally not validated
// here: its absence surfaces as a per-request verification failure.
func Load() (Config, error) {
	cfg := Config{
		AppName:            getEnv("APP_NAME", defaultAppName),
		AppEnv:             getEnv("APP_ENV", defaultAppEnv),
		Port:               getEnv("PORT", defaultPort),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		ClerkWebhookSecret: os.Getenv("CLERK_WEBHOOK_SECRET"),
		ShutdownPeriod:     defaultShutdownDelay,
		WebhookReplayTTL:   defaultReplayTTL,
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("WEBHOOK_REPLAY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WEBHOOK_REPLAY_TTL: %w", err)
		}
		cfg.WebhookReplayTTL = d
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
