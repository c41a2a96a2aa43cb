package port

import (
	"context"

	"github.com/fhuszti/catalog-media-go/internal/model"
)

// Transcoder resizes and re-encodes one image into a lossy web format.
type Transcoder interface {
	Transcode(ctx context.Context, f model.File, opts model.TranscodeOptions) (model.File, error)
}
