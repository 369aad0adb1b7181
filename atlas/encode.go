package atlas

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritepack/config"
)

// Format is an atlas image encoding.
type Format int

const (
	PNG Format = iota
	WebP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	default:
		return "unknown"
	}
}

// FormatFor picks the encoding for an atlas written to path. With
// opts.Force set the answer is always PNG; otherwise a .webp extension
// selects lossless WebP and anything else PNG.
func FormatFor(path string, opts config.EncodeOptions) Format {
	if opts.Force {
		return PNG
	}
	if strings.ToLower(filepath.Ext(path)) == ".webp" {
		return WebP
	}
	return PNG
}

func pngLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// Quantize reduces img to a palette of at most opts.Colors entries, the
// first of which is fully transparent. Effort of 5 and above averages each
// colour box; lower efforts take its most common colour. Any positive Dither
// diffuses the whole quantization error with Floyd-Steinberg; the amount
// itself is not graded.
func Quantize(img image.Image, opts config.EncodeOptions) *image.Paletted {
	colors := opts.Colors
	if colors < 2 || colors > 256 {
		colors = 256
	}

	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mode}
	if opts.Effort >= 5 {
		q.Aggregation = quantize.Mean
	}
	pal := make(color.Palette, 0, colors)
	pal = append(pal, color.Transparent)
	pal = q.Quantize(pal, img)

	dst := image.NewPaletted(img.Bounds(), pal)
	var drawer draw.Drawer = draw.Src
	if opts.Dither > 0 {
		drawer = draw.FloydSteinberg
	}
	drawer.Draw(dst, dst.Bounds(), img, img.Bounds().Min)
	return dst
}

// Encode writes img to w in format f, applying opts.
func Encode(w io.Writer, img image.Image, opts config.EncodeOptions, f Format) error {
	if opts.Palette {
		img = Quantize(img, opts)
	}

	switch f {
	case PNG:
		enc := png.Encoder{CompressionLevel: pngLevel(opts.CompressionLevel)}
		if err := enc.Encode(w, img); err != nil {
			return errors.Wrap(err, "encoding png")
		}
	case WebP:
		// Lossless WebP reads Quality as compression effort.
		err := webp.Encode(w, img, &webp.Options{
			Lossless: true,
			Quality:  float32(opts.Quality),
			Exact:    true,
		})
		if err != nil {
			return errors.Wrap(err, "encoding webp")
		}
	default:
		return errors.Errorf("unsupported atlas format %v", f)
	}
	return nil
}
