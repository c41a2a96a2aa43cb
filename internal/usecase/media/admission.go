package media

import (
	"strconv"

	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/validation"
)

var (
	contentTypeRule = "startswith=" + imageMarker
	sizeRule        = "lte=" + strconv.FormatInt(MaxFileSize, 10)
)

// Admission is the outcome of filtering one selection.
type Admission struct {
	Accepted  []model.File
	Rejected  []*ValidationError
	Dropped   int
	Truncated bool
}

// Admit filters a selection by type and size and caps it to the remaining
// capacity. It never mutates its inputs and keeps submission order.
func Admit(files []model.File, currentCount, maxFiles int, allowMultiple bool) Admission {
	var out Admission

	valid := make([]model.File, 0, len(files))
	for _, f := range files {
		if err := checkFile(f); err != nil {
			out.Rejected = append(out.Rejected, err)
			continue
		}
		valid = append(valid, f)
	}

	remaining := maxFiles - currentCount
	if remaining < 0 {
		remaining = 0
	}

	limit := remaining
	if !allowMultiple && limit > 1 {
		limit = 1
	}

	if len(valid) > limit {
		// Single selection silently keeps its first file; only capacity drops warn.
		out.Truncated = allowMultiple || limit == 0
		out.Dropped = len(valid) - limit
		valid = valid[:limit]
	}
	out.Accepted = valid

	return out
}

func checkFile(f model.File) *ValidationError {
	if err := validation.ValidateVar(f.ContentType, contentTypeRule); err != nil {
		return &ValidationError{File: f.Name, Err: ErrNotImage}
	}
	if err := validation.ValidateVar(f.Size(), sizeRule); err != nil {
		return &ValidationError{File: f.Name, Err: ErrTooLarge}
	}
	return nil
}
