package anim

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

// gifCompositor draws frames on an RGBA canvas and collects them as
// paletted GIF frames.
type gifCompositor struct {
	canvas *image.RGBA
	delay  int // hundredths of a second
	g      gif.GIF
}

// NewGIFCompositor returns a Compositor producing a GIF of the given size
// which loops forever and shows each frame for delay. Every frame's
// palette starts with a fully transparent colour, which doubles as the
// background.
func NewGIFCompositor(size image.Point, delay time.Duration) Compositor {
	return &gifCompositor{
		canvas: image.NewRGBA(image.Rectangle{Max: size}),
		delay:  int((delay + 5*time.Millisecond) / (10 * time.Millisecond)),
		g: gif.GIF{
			LoopCount:       0,
			BackgroundIndex: 0,
			Config: image.Config{
				Width:  size.X,
				Height: size.Y,
			},
		},
	}
}

func (c *gifCompositor) Clear() {
	draw.Draw(c.canvas, c.canvas.Bounds(), image.Transparent, image.ZP, draw.Src)
}

func (c *gifCompositor) Draw(img image.Image) {
	b := img.Bounds()
	draw.Draw(c.canvas, image.Rectangle{Max: b.Size()}, img, b.Min, draw.Over)
}

// keyed returns the canvas as GIF sees it: fully transparent pixels stay
// transparent, every other pixel becomes opaque with its un-premultiplied
// colour.
func (c *gifCompositor) keyed() *image.NRGBA {
	b := c.canvas.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.NRGBAModel.Convert(c.canvas.RGBAAt(x, y)).(color.NRGBA)
			if px.A == 0 {
				continue
			}
			px.A = 0xff
			out.SetNRGBA(x, y, px)
		}
	}
	return out
}

func (c *gifCompositor) AddFrame() error {
	bounds := c.canvas.Bounds()
	src := c.keyed()

	quantizer := gogif.MedianCutQuantizer{NumColor: 255} // Up to 255 colors plus 1 space for transparency.
	pal := image.NewPaletted(bounds, nil)
	quantizer.Quantize(pal, bounds, src, image.ZP)

	// gogif has no way to just compute the palette, so the frame is drawn
	// a second time into a palette with color.Transparent prepended. Index 0
	// is then both the transparent colour and the background.
	frame := image.NewPaletted(bounds, append(color.Palette{color.Transparent}, pal.Palette...))
	draw.Draw(frame, bounds, src, image.ZP, draw.Over)

	c.g.Image = append(c.g.Image, frame)
	c.g.Delay = append(c.g.Delay, c.delay)
	c.g.Disposal = append(c.g.Disposal, gif.DisposalBackground)
	return nil
}

func (c *gifCompositor) Finish(w io.Writer) error {
	if len(c.g.Image) == 0 {
		return errors.New("gif has no frames")
	}
	if err := gif.EncodeAll(w, &c.g); err != nil {
		return errors.Wrap(err, "encoding gif")
	}
	return nil
}
