// Package imagemeta reads image dimensions and decodes source images.
package imagemeta

import (
	"context"
	"image"
	"os"
	"runtime"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/spritepack"
)

// Metadata describes one source image. It is read once and never changed.
type Metadata struct {
	Width, Height int
	Path          string
}

// Size returns the dimensions as an image.Point.
func (m Metadata) Size() image.Point {
	return image.Pt(m.Width, m.Height)
}

// Read decodes just enough of the image at path to learn its dimensions.
func Read(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, &spritepack.DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Metadata{}, &spritepack.DecodeError{Path: path, Err: err}
	}
	glog.V(2).Infof("%s: %s %dx%d", path, format, cfg.Width, cfg.Height)
	return Metadata{Width: cfg.Width, Height: cfg.Height, Path: path}, nil
}

// ReadAll reads the metadata of every path concurrently. The result is in
// the same order as paths. The first failure aborts the whole batch.
func ReadAll(paths []string) ([]Metadata, error) {
	out := make([]Metadata, len(paths))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				// Another read already failed.
				return nil
			}
			m, err := Read(p)
			if err != nil {
				return err
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Load fully decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &spritepack.DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &spritepack.DecodeError{Path: path, Err: err}
	}
	return img, nil
}
