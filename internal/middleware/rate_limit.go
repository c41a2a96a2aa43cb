package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/fhuszti/catalog-media-go/internal/api_context"
	"github.com/fhuszti/catalog-media-go/internal/handler/api"
	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/port"
)

// WithRateLimit counts requests per authenticated user, or per client IP
// for anonymous callers. Limiter failures let the request through.
func WithRateLimit(limiter port.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := "ip:" + clientIP(r)
			if uid, ok := api_context.AuthUserIDFromContext(ctx); ok {
				key = "user:" + uid
			}

			ok, err := limiter.Allow(ctx, key)
			if err != nil {
				logger.Warnf(ctx, "⚠️  Rate limiter unavailable, letting request through: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				api.WriteError(ctx, w, http.StatusTooManyRequests, "too many signature requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			if ip := strings.TrimSpace(part); net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
