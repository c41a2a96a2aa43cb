package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines the object operations used by the storage emulator.
type Storage interface {
	InitBucket(ctx context.Context) error
	SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error
	GetFile(ctx context.Context, fileKey string) (io.ReadCloser, error)
	StatFile(ctx context.Context, fileKey string) (FileInfo, error)
}
