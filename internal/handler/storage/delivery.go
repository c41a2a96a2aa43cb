package storage

import (
	"io"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/go-chi/chi/v5"
)

var (
	versionSegment   = regexp.MustCompile(`^v[0-9]+$`)
	transformSegment = regexp.MustCompile(`^(f|q|w|h|c|g|e|ar|dpr)_[^/]+$`)
)

// objectKey strips leading transformation and version segments and the
// file extension from a delivery path.
func objectKey(rest string) string {
	segs := strings.Split(strings.Trim(rest, "/"), "/")
	i := 0
	for ; i < len(segs); i++ {
		s := segs[i]
		if strings.Contains(s, ",") || transformSegment.MatchString(s) || versionSegment.MatchString(s) {
			continue
		}
		break
	}
	key := strings.Join(segs[i:], "/")
	return strings.TrimSuffix(key, path.Ext(key))
}

// DeliveryHandler serves stored images. Transformations are accepted and
// ignored: the stored bytes are returned as they are.
func DeliveryHandler(cloudName string, strg port.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if cloud := chi.URLParam(r, "cloud"); cloud != cloudName {
			writeError(ctx, w, http.StatusNotFound, "Resource not found", nil)
			return
		}
		key := objectKey(chi.URLParam(r, "*"))
		if key == "" {
			writeError(ctx, w, http.StatusNotFound, "Resource not found", nil)
			return
		}

		info, err := strg.StatFile(ctx, key)
		if err != nil {
			writeError(ctx, w, errStatus(err), "Resource not found", err)
			return
		}
		body, err := strg.GetFile(ctx, key)
		if err != nil {
			writeError(ctx, w, errStatus(err), "Resource not found", err)
			return
		}
		defer func() { _ = body.Close() }()

		w.Header().Set("Content-Type", info.ContentType)
		w.Header().Set("Content-Length", strconv.FormatInt(info.SizeBytes, 10))
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, body); err != nil {
			logger.Warnf(ctx, "⚠️  Failed to stream %q: %v", key, err)
		}
	}
}
