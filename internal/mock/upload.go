package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/model"
)

// TicketRequester implements port.TicketRequester for tests.
type TicketRequester struct {
	mu sync.Mutex

	TicketOut model.UploadTicket
	// ErrFor fails the n-th call (0-based) with the given error.
	ErrFor map[int]error
	Err    error

	Calls   int
	Folders []string
	Kinds   []string
}

func (m *TicketRequester) RequestTicket(ctx context.Context, folder, resourceType string) (model.UploadTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.Calls
	m.Calls++
	m.Folders = append(m.Folders, folder)
	m.Kinds = append(m.Kinds, resourceType)
	if err, ok := m.ErrFor[n]; ok {
		return model.UploadTicket{}, err
	}
	if m.Err != nil {
		return model.UploadTicket{}, m.Err
	}
	t := m.TicketOut
	if t.Signature == "" {
		t = model.UploadTicket{CloudName: "demo", APIKey: "key", Timestamp: int64(1700000000 + n), Signature: fmt.Sprintf("sig-%d", n), Folder: folder}
	}
	return t, nil
}

// Transport implements port.Transport for tests. Uploaded files are
// recorded; each successful call returns an asset derived from the file.
type Transport struct {
	mu sync.Mutex

	// ErrFor fails the upload of the named file.
	ErrFor map[string]error
	Delay  time.Duration
	// BlockUntil, when set, holds every upload until the channel closes or ctx ends.
	BlockUntil <-chan struct{}

	Uploaded []model.File
	Tickets  []model.UploadTicket
	Calls    int
}

func (m *Transport) Upload(ctx context.Context, f model.File, ticket model.UploadTicket) (model.MediaAsset, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return model.MediaAsset{}, ctx.Err()
		}
	}
	if m.BlockUntil != nil {
		select {
		case <-m.BlockUntil:
		case <-ctx.Done():
			return model.MediaAsset{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.ErrFor[f.Name]; ok {
		return model.MediaAsset{}, err
	}
	m.Uploaded = append(m.Uploaded, f)
	m.Tickets = append(m.Tickets, ticket)
	id := ticket.Folder + "/" + f.Stem()
	return model.MediaAsset{
		URL:         "https://res.example.com/" + ticket.CloudName + "/image/upload/f_auto,q_auto/" + id,
		PublicID:    id,
		OriginalURL: "https://res.example.com/" + ticket.CloudName + "/image/upload/" + id,
		Format:      "webp",
		Bytes:       f.Size(),
	}, nil
}

// Notifier implements port.Notifier and records every event.
type Notifier struct {
	mu sync.Mutex

	Rejections  []string
	Truncations int
	Accepted    int
	Dropped     int
	Successes   []string
	Failures    []string
	FailureErrs []error
}

func (m *Notifier) Rejected(ctx context.Context, fileName string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejections = append(m.Rejections, fileName)
}

func (m *Notifier) Truncated(ctx context.Context, accepted, dropped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Truncations++
	m.Accepted = accepted
	m.Dropped = dropped
}

func (m *Notifier) Succeeded(ctx context.Context, fileName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, fileName)
}

func (m *Notifier) Failed(ctx context.Context, fileName string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures = append(m.Failures, fileName)
	m.FailureErrs = append(m.FailureErrs, err)
}
