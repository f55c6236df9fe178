package clerk

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const deliveryKeyPrefix = "clerk:delivery:v1:"

// ReplayGuard remembers recently seen delivery ids in Redis so that a
// re-delivered webhook is acknowledged without being dispatched again. It
// fails open: user synchronization is idempotent, so dispatching a duplicate
// is preferable to rejecting a delivery when Redis is down.
type ReplayGuard struct {
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewReplayGuard builds a replay guard. Entries expire after ttl.
func NewReplayGuard(cache *redis.Client, ttl time.Duration, logger *slog.Logger) *ReplayGuard {
	return &ReplayGuard{cache: cache, ttl: ttl, logger: logger}
}

// FirstDelivery records the delivery id and reports whether it was unseen. A
// nil guard always reports true, which disables replay protection.
func (g *ReplayGuard) FirstDelivery(ctx context.Context, deliveryID string) bool {
	if g == nil || g.cache == nil {
		return true
	}
	first, err := g.cache.SetNX(ctx, deliveryKeyPrefix+deliveryID, "1", g.ttl).Result()
	if err != nil {
		g.logger.Warn("replay guard unavailable, allowing delivery",
			slog.String("delivery_id", deliveryID),
			slog.Any("error", err),
		)
		return true
	}
	return first
}
