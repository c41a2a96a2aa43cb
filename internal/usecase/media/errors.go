package media

import (
	"errors"
	"fmt"
)

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")

	ErrNotImage       = errors.New("file is not an image")
	ErrTooLarge       = errors.New("file exceeds the maximum size")
	ErrTicketRejected = errors.New("upload ticket request rejected")
	ErrUploadRejected = errors.New("upload rejected by storage provider")
	ErrDecode         = errors.New("could not decode image")
	ErrEncode         = errors.New("could not encode image")
)

// ValidationError rejects a file before it enters the pipeline.
type ValidationError struct {
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}
func (e *ValidationError) Unwrap() error { return e.Err }

// AuthorizationError reports a failed ticket request.
type AuthorizationError struct {
	File   string
	Status int
	Err    error
}

func (e *AuthorizationError) Error() string {
	return describe("authorization failed", e.File, e.Status, e.Err)
}
func (e *AuthorizationError) Unwrap() error { return e.Err }

// TransportError reports a failed or rejected transfer to the storage provider.
type TransportError struct {
	File   string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	return describe("upload failed", e.File, e.Status, e.Err)
}
func (e *TransportError) Unwrap() error { return e.Err }

// TranscodeError is recovered by the uploader and only ever logged.
type TranscodeError struct {
	File string
	Err  error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("transcode %s: %v", e.File, e.Err)
}
func (e *TranscodeError) Unwrap() error { return e.Err }

func describe(what, file string, status int, err error) string {
	msg := what
	if file != "" {
		msg += " for " + file
	}
	if status != 0 {
		msg += fmt.Sprintf(" (status %d)", status)
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	return msg
}
