package main

import (
	"context"
	"os"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	logger.Init("upload-batch")

	if err := newRootCommand().Execute(); err != nil {
		logger.Errorf(context.Background(), "❌  %v", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	listPath    string
	metricsAddr string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "upload-batch",
		Short:         "Upload catalog images and manage the ordered image list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.listPath, "list", "assets.json", "JSON file holding the ordered asset list")
	root.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	root.AddCommand(newUploadCommand(opts))
	root.AddCommand(newMoveCommand(opts))
	root.AddCommand(newRemoveCommand(opts))
	return root
}
