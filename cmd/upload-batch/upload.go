package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/backend"
	"github.com/fhuszti/catalog-media-go/internal/config"
	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/observability"
	"github.com/fhuszti/catalog-media-go/internal/optimiser"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/provider"
	"github.com/fhuszti/catalog-media-go/internal/usecase/media"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type uploadOptions struct {
	folder string
	single bool
}

func newUploadCommand(root *rootOptions) *cobra.Command {
	opts := &uploadOptions{}
	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Transcode and upload images, appending them to the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runUpload(ctx, root, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.folder, "folder", "", "target folder at the storage provider")
	cmd.Flags().BoolVar(&opts.single, "single", false, "accept a single image per run")
	_ = cmd.MarkFlagRequired("folder")
	return cmd
}

// host owns the asset list for the duration of a run.
type host struct {
	mu   sync.Mutex
	list model.AssetList
}

func (h *host) current() model.AssetList {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.list.Clone()
}

func (h *host) set(l model.AssetList) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.list = l
}

func (h *host) appendAssets(assets []model.MediaAsset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.list = h.list.Append(assets...)
}

func runUpload(ctx context.Context, root *rootOptions, opts *uploadOptions, paths []string) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	list, err := loadList(root.listPath)
	if err != nil {
		return err
	}
	files, err := readFiles(paths)
	if err != nil {
		return err
	}

	observer, shutdown := initObserver(ctx, root.metricsAddr, cfg.MetricsAddr)
	defer shutdown()

	h := &host{list: list}
	out := newConsole(os.Stdout)
	httpClient := &http.Client{Timeout: cfg.Timeout}

	uploader, err := media.NewUploader(media.UploaderConfig{
		TargetFolder:     opts.folder,
		AllowMultiple:    !opts.single,
		MaxFiles:         cfg.MaxFiles,
		CurrentAssets:    h.current,
		OnUploadComplete: h.appendAssets,
		OnReorderAssets:  h.set,
		Transcode:        model.TranscodeOptions{MaxWidth: cfg.MaxWidth, Quality: cfg.Quality},
		OnProgress:       out.progress,
	},
		optimiser.NewOptimiser(optimiser.ChaiEncoder{}),
		backend.NewClient(cfg.BackendURL, cfg.SessionToken, httpClient),
		provider.NewClient(cfg.ProviderUploadURL, cfg.ProviderDeliveryURL, httpClient),
		out,
		observer,
	)
	if err != nil {
		return err
	}

	res := uploader.Upload(ctx, files)
	if len(res.Assets) > 0 {
		if err := saveList(root.listPath, h.current()); err != nil {
			return err
		}
	}
	out.printf("%d uploaded, %d failed, %d rejected, %d ignored; %s now holds %d image(s)",
		len(res.Assets), res.Failed, res.Rejected, res.Dropped, root.listPath, len(h.current()))

	if len(res.Assets) == 0 && res.Failed > 0 {
		return errors.New("no file could be uploaded")
	}
	return nil
}

// readFiles loads the selection in argument order.
func readFiles(paths []string) ([]model.File, error) {
	now := time.Now()
	files := make([]model.File, 0, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, model.File{
			Name:        filepath.Base(p),
			ContentType: http.DetectContentType(data),
			Data:        data,
			SubmittedAt: now.Add(time.Duration(i)),
		})
	}
	return files, nil
}

func initObserver(ctx context.Context, flagAddr, envAddr string) (port.Observer, func()) {
	addr := flagAddr
	if addr == "" {
		addr = envAddr
	}
	if addr == "" {
		return observability.Noop{}, func() {}
	}

	reg := prometheus.NewRegistry()
	obs, err := observability.NewPrometheusObserver(reg)
	if err != nil {
		logger.Warnf(ctx, "⚠️  Metrics disabled: %v", err)
		return observability.Noop{}, func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof(ctx, "🚀 Metrics listening on %s", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Metrics listener: %v", err)
		}
	}()

	return obs, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
