package storage

import (
	"context"
	"net/http"

	"github.com/fhuszti/catalog-media-go/internal/handler/api"
	"github.com/fhuszti/catalog-media-go/internal/logger"
)

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// writeError answers in the storage provider's error format.
func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Warnf(ctx, "⚠️  %s", msg)
	}
	var body providerError
	body.Error.Message = msg
	api.RespondJSON(w, status, body)
}
