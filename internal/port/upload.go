package port

import (
	"context"

	"github.com/fhuszti/catalog-media-go/internal/model"
)

// TicketRequester asks the trusted backend for a folder-scoped upload ticket.
type TicketRequester interface {
	RequestTicket(ctx context.Context, folder, resourceType string) (model.UploadTicket, error)
}

// Transport sends one file to the storage provider using a ticket.
type Transport interface {
	Upload(ctx context.Context, f model.File, ticket model.UploadTicket) (model.MediaAsset, error)
}

// Notifier receives the user-facing outcome of a batch, one call per event.
type Notifier interface {
	Rejected(ctx context.Context, fileName string, err error)
	Truncated(ctx context.Context, accepted, dropped int)
	Succeeded(ctx context.Context, fileName string)
	Failed(ctx context.Context, fileName string, err error)
}

// ProgressFunc receives every change of a file's progress entry.
type ProgressFunc func(key model.UploadKey, p model.PendingUpload)

// BatchUploader drives a selection of files through the media pipeline.
type BatchUploader interface {
	Upload(ctx context.Context, files []model.File) BatchResult
}

// BatchResult summarises one batch once every admitted file has settled.
type BatchResult struct {
	Assets   []model.MediaAsset
	Rejected int
	Dropped  int
	Failed   int
}
