package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/handler/api"
	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/signing"
	"github.com/fhuszti/catalog-media-go/internal/usecase/media"
	"github.com/fhuszti/catalog-media-go/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// Account is the provider account the emulator accepts uploads for.
type Account struct {
	CloudName     string
	APIKey        string
	APISecret     string
	PublicBaseURL string
	TicketTTL     time.Duration
	Now           func() time.Time
}

type UploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

type uploadForm struct {
	APIKey    string `json:"api_key" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required,number"`
	Signature string `json:"signature" validate:"required,hexadecimal,len=40"`
	Folder    string `json:"folder" validate:"omitempty,folder"`
}

// UploadHandler accepts one signed multipart image upload.
func UploadHandler(acc Account, strg port.Storage) http.HandlerFunc {
	now := acc.Now
	if now == nil {
		now = time.Now
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if cloud := chi.URLParam(r, "cloud"); cloud != acc.CloudName {
			writeError(ctx, w, http.StatusNotFound, fmt.Sprintf("Unknown cloud %q", cloud), nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, media.MaxFileSize+(1<<20))
		if err := r.ParseMultipartForm(media.MaxFileSize); err != nil {
			writeError(ctx, w, http.StatusBadRequest, "Invalid multipart form", err)
			return
		}

		form := uploadForm{
			APIKey:    r.FormValue("api_key"),
			Timestamp: r.FormValue("timestamp"),
			Signature: r.FormValue("signature"),
			Folder:    r.FormValue("folder"),
		}
		if errs := validation.ValidateStruct(form); errs != nil {
			for field, tag := range validation.FieldErrors(errs) {
				writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid parameter %s (%s)", field, tag), nil)
				return
			}
		}

		if form.APIKey != acc.APIKey {
			writeError(ctx, w, http.StatusUnauthorized, "Invalid api_key "+form.APIKey, nil)
			return
		}
		ts, _ := strconv.ParseInt(form.Timestamp, 10, 64)
		if age := now().Sub(time.Unix(ts, 0)); age > acc.TicketTTL || age < -acc.TicketTTL {
			writeError(ctx, w, http.StatusUnauthorized, "Stale request - reported time is out of range", nil)
			return
		}
		if !signing.Verify(signing.UploadParams(form.Folder, ts), acc.APISecret, form.Signature) {
			writeError(ctx, w, http.StatusUnauthorized, "Invalid Signature "+form.Signature, nil)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(ctx, w, http.StatusBadRequest, "Missing required parameter - file", nil)
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(ctx, w, http.StatusBadRequest, "Could not read file", err)
			return
		}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			writeError(ctx, w, http.StatusBadRequest, "Invalid image file", nil)
			return
		}

		publicID := uuid.NewString()
		if form.Folder != "" {
			publicID = form.Folder + "/" + publicID
		}
		if err := strg.SaveFile(ctx, publicID, bytes.NewReader(data), int64(len(data)), "image/"+format); err != nil {
			writeError(ctx, w, errStatus(err), "Could not store file", err)
			return
		}

		out := UploadResponse{
			PublicID:  publicID,
			SecureURL: fmt.Sprintf("%s/%s/image/upload/v%d/%s.%s", strings.TrimRight(acc.PublicBaseURL, "/"), acc.CloudName, ts, publicID, format),
			Width:     cfg.Width,
			Height:    cfg.Height,
			Format:    format,
			Bytes:     int64(len(data)),
		}
		api.RespondJSON(w, http.StatusOK, out)
		logger.Infof(ctx, "✅  Stored %s (%dx%d %s, %d bytes)", publicID, cfg.Width, cfg.Height, format, len(data))
	}
}

// errStatus maps storage errors to HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, media.ErrObjectNotFound), errors.Is(err, media.ErrBucketNotFound):
		return http.StatusNotFound
	case errors.Is(err, media.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
