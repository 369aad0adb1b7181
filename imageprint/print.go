// Package imageprint prints images on terminal. It is used to preview
// atlases and sprites without leaving the shell.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how pixels reach the terminal.
type Mode int

const (
	// Auto uses a terminal graphics protocol when one is detected and
	// falls back to TrueColor.
	Auto Mode = iota
	// RasTerm writes Kitty, iTerm or Sixel graphics, whichever the
	// terminal supports.
	RasTerm
	// ITerm writes an inline PNG using iTerm2's escape sequence.
	ITerm
	// TrueColor paints two cells per pixel with 24-bit background colours.
	TrueColor
	// Color256 paints through gookit/color, which degrades to the terminal's
	// colour level.
	Color256
	// NoColor only prints shading characters.
	NoColor
)

var modeNames = []string{"auto", "rasterm", "iterm", "truecolor", "256", "nocolor"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a name as printed by Mode.String back to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return Mode(i), nil
		}
	}
	return Auto, errors.Errorf("unknown print mode %q; want one of %s", s, strings.Join(modeNames, ", "))
}

// Printer writes images to W.
type Printer struct {
	W    io.Writer
	Mode Mode
	// Blanks paints coloured blanks instead of shading characters.
	Blanks bool
	// Name is the file name announced to iTerm.
	Name string
}

// Print writes img in the printer's mode.
func (p Printer) Print(img image.Image) error {
	switch p.Mode {
	case Auto:
		ok, err := printRasTerm(p.W, img)
		if ok || err != nil {
			return err
		}
		return p.cells(img, trueColorCell)
	case RasTerm:
		ok, err := printRasTerm(p.W, img)
		if err == nil && !ok {
			err = errors.New("terminal supports no graphics protocol")
		}
		return err
	case ITerm:
		return p.iterm(img)
	case TrueColor:
		return p.cells(img, trueColorCell)
	case Color256:
		return p.cells(img, gookitCell)
	case NoColor:
		return p.cells(img, plainCell)
	default:
		return errors.Errorf("unknown print mode %v", p.Mode)
	}
}

// cellFunc returns the text for one opaque pixel.
type cellFunc func(r, g, b uint8, text string) string

func trueColorCell(r, g, b uint8, text string) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, text)
}

func gookitCell(r, g, b uint8, text string) string {
	return color.RGB(r, g, b, true).Sprint(text)
}

func plainCell(_, _, _ uint8, text string) string {
	return text
}

func (p Printer) shade(col ic.Color) string {
	if p.Blanks {
		return "  "
	}
	cR, cG, cB, _ := col.RGBA()
	a := ((cR + cG + cB) / 3) >> 8
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func (p Printer) cells(img image.Image, cell cellFunc) error {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y++ {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			c := ic.NRGBAModel.Convert(img.At(x, y)).(ic.NRGBA)
			if c.A == 0 {
				sb.WriteString("  ")
				continue
			}
			sb.WriteString(cell(c.R, c.G, c.B, p.shade(c)))
		}
		sb.WriteString("\n")
		if _, err := io.WriteString(p.W, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// iterm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func (p Printer) iterm(img image.Image) error {
	fn := p.Name
	if fn == "" {
		fn = "image.png"
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, img); err != nil {
		return errors.Wrap(err, "encoding png")
	}
	if err := bEnc.Close(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.W, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), img.Bounds().Dx(), img.Bounds().Dy(), b.String())
	return err
}
