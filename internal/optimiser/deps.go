package optimiser

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

// WebPEncoder writes a lossy WebP image at the given quality (0-100).
type WebPEncoder interface {
	Encode(img image.Image, quality int, w io.Writer) error
}

// ChaiEncoder encodes through libwebp.
type ChaiEncoder struct{}

func (ChaiEncoder) Encode(img image.Image, quality int, w io.Writer) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
}
