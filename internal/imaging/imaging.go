// Package imaging shrinks uploaded pictures before they reach the object store.
package imaging

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	applog "emytrends/internal/log"
)

var (
	ErrDecode = errors.New("imaging: failed to load image")
	ErrEncode = errors.New("imaging: failed to compress image")
)

type Options struct {
	MaxWidth     int
	MaxHeight    int
	Quality      float64
	TargetSizeKB int
}

func DefaultOptions() Options {
	return Options{MaxWidth: 2048, MaxHeight: 2048, Quality: 0.88, TargetSizeKB: 500}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxWidth <= 0 {
		o.MaxWidth = d.MaxWidth
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = d.MaxHeight
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = d.Quality
	}
	if o.TargetSizeKB <= 0 {
		o.TargetSizeKB = d.TargetSizeKB
	}
	return o
}

// File is an in-memory upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) SizeKB() float64 { return float64(len(f.Data)) / 1024 }

func (f File) contentType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return http.DetectContentType(f.Data)
}

// FitWithin scales w x h down to fit maxW x maxH keeping the aspect ratio.
// Images already inside the box are returned unchanged.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return int(math.Round(float64(w) * ratio)), int(math.Round(float64(h) * ratio))
}

// Compress re-encodes f within the configured bounds. Files smaller than half
// the target size are returned untouched. PNG input stays PNG; everything
// else becomes JPEG at the configured quality.
func Compress(f File, opts Options) (File, error) {
	opts = opts.withDefaults()
	if f.SizeKB() < float64(opts.TargetSizeKB)/2 {
		return f, nil
	}

	src, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return File{}, errors.Wrapf(ErrDecode, "%s: %v", f.Name, err)
	}
	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), opts.MaxWidth, opts.MaxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	out := File{Name: f.Name}
	if f.contentType() == "image/png" {
		out.ContentType = "image/png"
		err = png.Encode(&buf, dst)
	} else {
		out.ContentType = "image/jpeg"
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: int(math.Round(opts.Quality * 100))})
	}
	if err != nil {
		return File{}, errors.Wrapf(ErrEncode, "%s: %v", f.Name, err)
	}
	out.Data = buf.Bytes()

	reduction := 0.0
	if len(f.Data) > 0 {
		reduction = float64(len(f.Data)-len(out.Data)) / float64(len(f.Data)) * 100
	}
	applog.L().Debug("image.compress",
		zap.String("name", f.Name),
		zap.Float64("original_kb", f.SizeKB()),
		zap.Float64("compressed_kb", out.SizeKB()),
		zap.Float64("reduction_pct", math.Round(reduction*10)/10),
		zap.Int("width", w), zap.Int("height", h),
	)
	return out, nil
}

// CompressAll compresses files in parallel, preserving order. Any failure
// fails the whole batch.
func CompressAll(ctx context.Context, files []File, opts Options) ([]File, error) {
	out := make([]File, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := Compress(f, opts)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
