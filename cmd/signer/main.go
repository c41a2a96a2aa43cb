package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/config"
	"github.com/fhuszti/catalog-media-go/internal/handler/api"
	"github.com/fhuszti/catalog-media-go/internal/logger"
	cMiddleware "github.com/fhuszti/catalog-media-go/internal/middleware"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/ratelimit"
	"github.com/fhuszti/catalog-media-go/internal/usecase/ticket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()
	logger.Init("signer")

	cfg, err := config.LoadSigner()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	r := initRouter(ctx)

	var limiter port.RateLimiter
	if cfg.RedisAddr != "" {
		rl := ratelimit.NewLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RateLimit, cfg.RateWindow)
		defer func() { _ = rl.Close() }()
		limiter = rl
		logger.Infof(ctx, "✅  Redis rate limiting enabled (%d per %s)", cfg.RateLimit, cfg.RateWindow)
	} else {
		limiter = ratelimit.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured, signature rate limiting is disabled")
	}
	if cfg.JWTPublicKey == "" {
		logger.Warn(ctx, "⚠️  JWT_PUBLIC_KEY not set, session authentication is disabled")
	}

	issuer := ticket.NewTicketIssuer(ticket.Credentials{
		CloudName: cfg.CloudName,
		APIKey:    cfg.CloudAPIKey,
		APISecret: cfg.CloudAPISecret,
	}, cfg.AllowedFolders, time.Now)

	r.With(
		cMiddleware.WithSessionAuth(cfg.JWTPublicKey, cfg.JWTIssuer, cfg.JWTAudience),
		cMiddleware.WithRateLimit(limiter),
	).Get("/signature", api.GetSignatureHandler(issuer))

	listenRouter(ctx, r, cfg.ServerPort)
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func listenRouter(ctx context.Context, r *chi.Mux, port int) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(port), Handler: r, ReadHeaderTimeout: 10 * time.Second}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 Signer listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")
}
