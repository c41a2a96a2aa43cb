package storage

import (
	"fmt"

	"github.com/fhuszti/catalog-media-go/internal/usecase/media"
	"github.com/minio/minio-go/v7"
)

var minioCodes = map[string]error{
	"NoSuchKey":             media.ErrObjectNotFound,
	"NoSuchBucket":          media.ErrBucketNotFound,
	"AccessDenied":          media.ErrUnauthorized,
	"InvalidAccessKeyId":    media.ErrUnauthorized,
	"SignatureDoesNotMatch": media.ErrUnauthorized,
	"EntityTooLarge":        media.ErrTooLarge,
}

// mapMinioErr turns an S3 error code into the sentinel the emulator's
// handlers translate to an HTTP status.
func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	if sentinel, ok := minioCodes[minio.ToErrorResponse(err).Code]; ok {
		return sentinel
	}
	return fmt.Errorf("%w: %v", media.ErrInternal, err)
}
