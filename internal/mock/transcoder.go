package mock

import (
	"context"
	"sync"

	"github.com/fhuszti/catalog-media-go/internal/model"
)

// Transcoder implements port.Transcoder for tests. Without TranscodeFn it
// returns TranscodeOut, or the input unchanged when TranscodeOut is empty.
type Transcoder struct {
	mu sync.Mutex

	TranscodeFn  func(f model.File, opts model.TranscodeOptions) (model.File, error)
	TranscodeOut model.File
	TranscodeErr error

	Inputs []model.File
	Opts   []model.TranscodeOptions
}

func (m *Transcoder) Transcode(ctx context.Context, f model.File, opts model.TranscodeOptions) (model.File, error) {
	m.mu.Lock()
	m.Inputs = append(m.Inputs, f)
	m.Opts = append(m.Opts, opts)
	m.mu.Unlock()

	if m.TranscodeFn != nil {
		return m.TranscodeFn(f, opts)
	}
	if m.TranscodeErr != nil {
		return model.File{}, m.TranscodeErr
	}
	if m.TranscodeOut.Name != "" {
		return m.TranscodeOut, nil
	}
	return f, nil
}
