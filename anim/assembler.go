// Package anim turns directories of numbered frame images into looping
// animated GIFs.
package anim

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritepack"
	"badc0de.net/pkg/spritepack/config"
	"badc0de.net/pkg/spritepack/imagemeta"
	"badc0de.net/pkg/spritepack/paths"
)

// Compositor is the drawing surface an animation is assembled on.
//
// Frames are drawn at the origin and never scaled. Finish is called once,
// after the last AddFrame.
type Compositor interface {
	// Clear resets the whole canvas to full transparency.
	Clear()
	// Draw paints img onto the canvas at (0,0).
	Draw(img image.Image)
	// AddFrame appends the current canvas as the next frame.
	AddFrame() error
	// Finish writes the finished animation to w.
	Finish(w io.Writer) error
}

// DecodeFunc loads one frame.
type DecodeFunc func(path string) (image.Image, error)

// CompositorFunc creates a Compositor for frames of the given size.
type CompositorFunc func(size image.Point, delay time.Duration) Compositor

// Assembler builds animations. The zero value is not usable; see New.
type Assembler struct {
	Decode        DecodeFunc
	NewCompositor CompositorFunc
	// Delay is how long each frame is shown.
	Delay time.Duration
}

// New returns an Assembler which decodes frames with the registered image
// codecs and writes GIFs, using the frame delay from cfg.
func New(cfg config.Config) *Assembler {
	return &Assembler{
		Decode:        imagemeta.Load,
		NewCompositor: NewGIFCompositor,
		Delay:         cfg.FrameDelay(),
	}
}

// Assemble turns the image files in dir into an animation written to out.
//
// Frames are ordered by the number in their file names. The first frame
// fixes the canvas size; later frames of a different size are drawn
// unscaled at the origin. A later frame that decodes to zero width or
// height is skipped with a warning; any other error aborts.
func (a *Assembler) Assemble(dir, out string) error {
	files, err := paths.ImageFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return &spritepack.EmptyInputError{Path: dir}
	}

	first, err := a.Decode(files[0])
	if err != nil {
		return err
	}
	size := first.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return &spritepack.InvalidDimensionsError{Path: files[0], Width: size.X, Height: size.Y}
	}

	c := a.NewCompositor(size, a.Delay)
	c.Clear()

	frames := 0
	for i, file := range files {
		img := first
		if i > 0 {
			if img, err = a.Decode(file); err != nil {
				return err
			}
		}
		if s := img.Bounds().Size(); s.X == 0 || s.Y == 0 {
			glog.Warningf("skipping empty frame %s", file)
			continue
		}
		if s := img.Bounds().Size(); s != size {
			glog.V(2).Infof("%s: frame is %dx%d, canvas is %dx%d", file, s.X, s.Y, size.X, size.Y)
		}

		c.Clear()
		c.Draw(img)
		if err := c.AddFrame(); err != nil {
			return errors.Wrapf(err, "adding frame %s", file)
		}
		frames++
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "creating animation")
	}
	if err := c.Finish(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", out)
	}
	if err := f.Close(); err != nil {
		return err
	}
	glog.Infof("animation written for %s: %s, %d frames", dir, out, frames)
	return nil
}
