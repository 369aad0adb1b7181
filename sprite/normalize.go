// Package sprite bounds sprites to a maximum footprint before packing.
package sprite

import (
	"context"
	"image"
	"image/draw"
	"runtime"
	"sort"

	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/spritepack"
	"badc0de.net/pkg/spritepack/imagemeta"
)

// Processed is a sprite ready for compositing. Width and Height in the
// embedded Metadata are the final dimensions, which equal Image's bounds.
type Processed struct {
	imagemeta.Metadata
	Image *image.RGBA
}

// toRGBA returns img as an *image.RGBA with its origin at (0,0).
// Already-conforming images are returned as is.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == image.ZP {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Normalize bounds img to limit×limit.
//
// An image whose sides are both within limit keeps its size and pixels.
// A larger one is shrunk with nearest-neighbour sampling to fit inside a
// limit×limit box, keeping its aspect ratio, and centered on a transparent
// limit×limit canvas.
//
// The result is always 4-channel, alpha-premultiplied RGBA.
func Normalize(img image.Image, limit int) *image.RGBA {
	rgba := toRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if w <= limit && h <= limit {
		return rgba
	}

	thumb := resize.Thumbnail(uint(limit), uint(limit), rgba, resize.NearestNeighbor)
	ts := thumb.Bounds().Size()

	canvas := image.NewRGBA(image.Rect(0, 0, limit, limit))
	at := image.Pt((limit-ts.X)/2, (limit-ts.Y)/2)
	draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(ts)}, thumb, thumb.Bounds().Min, draw.Src)
	return canvas
}

// Load decodes the sprite described by m and normalizes it.
func Load(m imagemeta.Metadata, limit int) (Processed, error) {
	if m.Width == 0 || m.Height == 0 {
		return Processed{}, &spritepack.InvalidDimensionsError{Path: m.Path, Width: m.Width, Height: m.Height}
	}
	img, err := imagemeta.Load(m.Path)
	if err != nil {
		return Processed{}, err
	}
	out := Normalize(img, limit)
	if s := out.Bounds().Size(); s.X != m.Width || s.Y != m.Height {
		glog.V(2).Infof("%s: resized %dx%d -> %dx%d", m.Path, m.Width, m.Height, s.X, s.Y)
	}
	return Processed{
		Metadata: imagemeta.Metadata{
			Width:  out.Bounds().Dx(),
			Height: out.Bounds().Dy(),
			Path:   m.Path,
		},
		Image: out,
	}, nil
}

// Process loads and normalizes every sprite concurrently, then orders the
// result with SortByHeight. The first failure aborts the batch.
func Process(metas []imagemeta.Metadata, limit int) ([]Processed, error) {
	out := make([]Processed, len(metas))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, m := range metas {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			p, err := Load(m, limit)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	SortByHeight(out)
	return out, nil
}

// SortByHeight orders sprites tallest first. Sprites of equal height keep
// their relative order, which keeps packing reproducible.
func SortByHeight(s []Processed) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Height > s[j].Height
	})
}
