package ratelimit

import (
	"context"

	"github.com/fhuszti/catalog-media-go/internal/port"
)

type NoopLimiter struct{}

// compile-time check: *NoopLimiter must satisfy port.RateLimiter
var _ port.RateLimiter = (*NoopLimiter)(nil)

func NewNoop() *NoopLimiter {
	return &NoopLimiter{}
}

func (n *NoopLimiter) Allow(ctx context.Context, key string) (bool, error) { return true, nil }
