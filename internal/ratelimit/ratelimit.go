package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed window counter kept in Redis: the first hit of a
// window sets its expiry, every hit increments it.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// compile-time check: *Limiter must satisfy port.RateLimiter
var _ port.RateLimiter = (*Limiter)(nil)

func NewLimiter(addr, password string, limit int, window time.Duration) *Limiter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Limiter{client: rdb, limit: int64(limit), window: window}
}

// Allow counts one hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := getLimitKey(key)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr failed: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis expire failed: %w", err)
		}
	}
	if n > l.limit {
		logger.Warnf(ctx, "⚠️  Rate limit hit for %s (%d/%d)", key, n, l.limit)
		return false, nil
	}
	return true, nil
}

func (l *Limiter) Close() error {
	return l.client.Close()
}

func getLimitKey(key string) string {
	return "ratelimit:signature:" + key
}
