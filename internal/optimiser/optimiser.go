package optimiser

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/model"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/usecase/media"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type Optimiser struct {
	webpEnc WebPEncoder
}

// compile-time check: *Optimiser must satisfy port.Transcoder
var _ port.Transcoder = (*Optimiser)(nil)

func NewOptimiser(webpEnc WebPEncoder) *Optimiser {
	if webpEnc == nil {
		webpEnc = ChaiEncoder{}
	}
	return &Optimiser{webpEnc: webpEnc}
}

// Transcode decodes the image, downscales it to opts.MaxWidth keeping the
// aspect ratio (never upscaling) and re-encodes it as lossy WebP. The
// output is named after the input stem with a .webp extension.
func (o *Optimiser) Transcode(ctx context.Context, f model.File, opts model.TranscodeOptions) (model.File, error) {
	opts = opts.WithDefaults()
	if !media.IsImage(f.ContentType) {
		return model.File{}, &media.TranscodeError{File: f.Name, Err: media.ErrNotImage}
	}

	img, format, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return model.File{}, &media.TranscodeError{File: f.Name, Err: fmt.Errorf("%w: %v", media.ErrDecode, err)}
	}
	if err := ctx.Err(); err != nil {
		return model.File{}, &media.TranscodeError{File: f.Name, Err: err}
	}

	src := img.Bounds()
	dst := img
	if w, h := targetSize(src.Dx(), src.Dy(), opts.MaxWidth); w != src.Dx() {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, src, xdraw.Src, nil)
		dst = scaled
	}

	buf := &bytes.Buffer{}
	quality := int(math.Round(opts.Quality * 100))
	if err := o.webpEnc.Encode(dst, quality, buf); err != nil {
		return model.File{}, &media.TranscodeError{File: f.Name, Err: fmt.Errorf("%w: %v", media.ErrEncode, err)}
	}

	logger.Debugf(ctx, "%s %dx%d → webp %dx%d @ q%d", format, src.Dx(), src.Dy(), dst.Bounds().Dx(), dst.Bounds().Dy(), quality)
	return model.File{
		Name:        f.Stem() + ".webp",
		ContentType: "image/webp",
		Data:        buf.Bytes(),
		SubmittedAt: f.SubmittedAt,
	}, nil
}

func targetSize(width, height, maxWidth int) (int, int) {
	if width <= maxWidth {
		return width, height
	}
	h := int(float64(height) * float64(maxWidth) / float64(width))
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}
