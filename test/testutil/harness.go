package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/handler/api"
	storageHandler "github.com/fhuszti/catalog-media-go/internal/handler/storage"
	cMiddleware "github.com/fhuszti/catalog-media-go/internal/middleware"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/storage"
	"github.com/fhuszti/catalog-media-go/internal/usecase/ticket"
	"github.com/go-chi/chi/v5"
)

const (
	CloudName = "demo"
	APIKey    = "123456789012345"
	APISecret = "integration-secret"
)

// Harness runs the signer and the storage emulator in-process, backed by
// a real MinIO bucket.
type Harness struct {
	Signer  *httptest.Server
	Storage *httptest.Server
	Strg    *storage.MinioStorage
}

// UploadURL is the API root handed to the provider client.
func (h *Harness) UploadURL() string {
	return h.Storage.URL + "/v1_1"
}

// NewHarness creates a fresh bucket and starts both servers. A nil limiter
// lets every signature request through.
func NewHarness(t *testing.T, mi *MinIOContainerInfo, bucket string, allowedFolders []string, limiter port.RateLimiter) *Harness {
	t.Helper()

	strg, err := storage.NewMinioStorage(mi.Endpoint, mi.AccessKey, mi.SecretKey, false, bucket)
	if err != nil {
		t.Fatalf("minio storage: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := strg.InitBucket(ctx); err != nil {
		t.Fatalf("init bucket %q: %v", bucket, err)
	}

	issuer := ticket.NewTicketIssuer(ticket.Credentials{
		CloudName: CloudName,
		APIKey:    APIKey,
		APISecret: APISecret,
	}, allowedFolders, time.Now)

	sr := chi.NewRouter()
	sr.NotFound(api.NotFoundHandler())
	sr.MethodNotAllowed(api.MethodNotAllowedHandler())
	signing := sr.With(cMiddleware.WithSessionAuth("", "", ""))
	if limiter != nil {
		signing = signing.With(cMiddleware.WithRateLimit(limiter))
	}
	signing.Get("/signature", api.GetSignatureHandler(issuer))
	signer := httptest.NewServer(sr)
	t.Cleanup(signer.Close)

	dr := chi.NewRouter()
	dr.NotFound(api.NotFoundHandler())
	store := httptest.NewServer(dr)
	t.Cleanup(store.Close)

	acc := storageHandler.Account{
		CloudName:     CloudName,
		APIKey:        APIKey,
		APISecret:     APISecret,
		PublicBaseURL: store.URL,
		TicketTTL:     time.Hour,
	}
	dr.Post("/v1_1/{cloud}/image/upload", storageHandler.UploadHandler(acc, strg))
	dr.Get("/{cloud}/image/upload/*", storageHandler.DeliveryHandler(CloudName, strg))

	return &Harness{Signer: signer, Storage: store, Strg: strg}
}
