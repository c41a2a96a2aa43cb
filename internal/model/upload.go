package model

import (
	"path"
	"strings"
	"time"
)

// File is an in-memory, file-like object selected for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	SubmittedAt time.Time
}

func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Key identifies the file within its batch.
func (f File) Key() UploadKey {
	return UploadKey{Name: f.Name, SubmittedAt: f.SubmittedAt.UnixNano()}
}

// Stem returns the file name without its extension.
func (f File) Stem() string {
	return strings.TrimSuffix(f.Name, path.Ext(f.Name))
}

// UploadKey disambiguates same-named files submitted in one batch.
type UploadKey struct {
	Name        string
	SubmittedAt int64
}

type UploadStatus string

const (
	UploadStatusQueued      UploadStatus = "queued"
	UploadStatusCompressing UploadStatus = "compressing"
	UploadStatusUploading   UploadStatus = "uploading"
	UploadStatusDone        UploadStatus = "done"
	UploadStatusError       UploadStatus = "error"
)

func (s UploadStatus) Terminal() bool {
	return s == UploadStatusDone || s == UploadStatusError
}

// PendingUpload is the live progress entry of one file.
type PendingUpload struct {
	Progress int          `json:"progress"`
	Status   UploadStatus `json:"status"`
}

// TranscodeOptions bounds the output of the transcoder.
type TranscodeOptions struct {
	MaxWidth int
	Quality  float64
}

const (
	DefaultMaxWidth = 1200
	DefaultQuality  = 0.8
)

// WithDefaults fills zero values with the defaults.
func (o TranscodeOptions) WithDefaults() TranscodeOptions {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = DefaultQuality
	}
	return o
}
