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
	storageHandler "github.com/fhuszti/catalog-media-go/internal/handler/storage"
	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()
	logger.Init("devstorage")

	cfg, err := config.LoadStorage()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	strg := initStorage(ctx, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	acc := storageHandler.Account{
		CloudName:     cfg.CloudName,
		APIKey:        cfg.CloudAPIKey,
		APISecret:     cfg.CloudAPISecret,
		PublicBaseURL: cfg.PublicBaseURL,
		TicketTTL:     cfg.TicketTTL,
	}
	r.Post("/v1_1/{cloud}/image/upload", storageHandler.UploadHandler(acc, strg))
	r.Get("/{cloud}/image/upload/*", storageHandler.DeliveryHandler(cfg.CloudName, strg))

	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof(ctx, "🚀 Storage emulator for cloud %q listening on %s", cfg.CloudName, srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

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

func initStorage(ctx context.Context, cfg *config.StorageSettings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.MinioBucket,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}
	if err := strg.InitBucket(ctx); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.MinioBucket, err)
		os.Exit(1)
	}
	return strg
}
