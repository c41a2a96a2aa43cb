package mock

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"sync"

	"github.com/fhuszti/catalog-media-go/internal/port"
)

// Storage implements port.Storage in memory for tests.
type Storage struct {
	mu sync.Mutex

	Objects      map[string][]byte
	ContentTypes map[string]string

	// MissingErr is returned for unknown keys (fs.ErrNotExist when nil).
	MissingErr error

	// errors
	InitBucketErr error
	SaveErr       error
	GetErr        error
	StatErr       error

	// call flags
	InitBucketCalled bool
	SaveCalled       bool
	GetCalled        bool
	StatCalled       bool
}

func (m *Storage) InitBucket(ctx context.Context) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalled = true
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if m.Objects == nil {
		m.Objects = map[string][]byte{}
		m.ContentTypes = map[string]string{}
	}
	m.Objects[fileKey] = data
	m.ContentTypes[fileKey] = contentType
	return nil
}

func (m *Storage) GetFile(ctx context.Context, fileKey string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if _, ok := m.Objects[fileKey]; !ok {
		return nil, m.missing()
	}
	return io.NopCloser(bytes.NewReader(m.Objects[fileKey])), nil
}

func (m *Storage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	if _, ok := m.Objects[fileKey]; !ok {
		return port.FileInfo{}, m.missing()
	}
	return port.FileInfo{SizeBytes: int64(len(m.Objects[fileKey])), ContentType: m.ContentTypes[fileKey]}, nil
}

func (m *Storage) missing() error {
	if m.MissingErr != nil {
		return m.MissingErr
	}
	return fs.ErrNotExist
}
