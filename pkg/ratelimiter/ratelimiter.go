package ratelimiter

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitError carries the cooldown remainder so handlers can set a
// Retry-After header.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func key(userID uuid.UUID, scope string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, userID.String())
}

// CheckAndSetRateLimit atomically claims the cooldown slot for (user, scope).
// Returns false when the user is still inside the cooldown window. A nil
// client disables rate limiting.
func CheckAndSetRateLimit(ctx context.Context, client *redis.Client, userID uuid.UUID, scope string, window time.Duration) (bool, error) {
	if client == nil {
		return true, nil
	}
	return client.SetNX(ctx, key(userID, scope), time.Now().Unix(), window).Result()
}

// GetRateLimitTTL returns the remaining cooldown for (user, scope).
func GetRateLimitTTL(ctx context.Context, client *redis.Client, userID uuid.UUID, scope string) (time.Duration, error) {
	if client == nil {
		return 0, nil
	}
	return client.TTL(ctx, key(userID, scope)).Result()
}

// ClearRateLimit releases a claimed slot; used to roll back when the guarded
// operation fails after the slot was taken.
func ClearRateLimit(ctx context.Context, client *redis.Client, userID uuid.UUID, scope string) error {
	if client == nil {
		return nil
	}
	return client.Del(ctx, key(userID, scope)).Err()
}

// GetDurationFromEnv reads a duration env var, falling back when unset or
// malformed.
func GetDurationFromEnv(envKey string, fallback time.Duration) time.Duration {
	raw := os.Getenv(envKey)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
