package sprite

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/spritepack"
	"badc0de.net/pkg/spritepack/imagemeta"
	"badc0de.net/pkg/spritepack/ttesting"
)

var (
	red         = color.NRGBA{R: 0xff, A: 0xff}
	transparent = color.RGBA{}
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 0x80, A: 0x80})
			}
		}
	}
	return img
}

func TestNormalizeWithinLimitIsUnchanged(t *testing.T) {
	src := checker(10, 20)
	out := Normalize(src, 37)

	ttesting.AssertSize(t, "size", out, 10, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 10; x++ {
			want := color.RGBAModel.Convert(src.At(x, y))
			if got := out.At(x, y); got != want {
				t.Fatalf("pixel %d,%d = %v; want %v", x, y, got, want)
			}
		}
	}
}

func TestNormalizeKeepsRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, src, Normalize(src, 4))
}

func TestNormalizeBoundary(t *testing.T) {
	ttesting.AssertSize(t, "width at limit", Normalize(ttesting.Solid(37, 10, red), 37), 37, 10)
	ttesting.AssertSize(t, "height at limit", Normalize(ttesting.Solid(3, 37, red), 37), 3, 37)
	ttesting.AssertSize(t, "both at limit", Normalize(ttesting.Solid(37, 37, red), 37), 37, 37)
}

func TestNormalizeOneOverLimit(t *testing.T) {
	out := Normalize(ttesting.Solid(38, 19, red), 37)
	ttesting.AssertSize(t, "canvas", out, 37, 37)

	// 38x19 fits into 37x18, centered vertically at y=9.
	opaque := color.RGBA{R: 0xff, A: 0xff}
	assert.Equal(t, transparent, out.At(18, 8))
	assert.Equal(t, opaque, out.At(18, 9))
	assert.Equal(t, opaque, out.At(0, 18))
	assert.Equal(t, opaque, out.At(36, 26))
	assert.Equal(t, transparent, out.At(18, 27))
	assert.Equal(t, transparent, out.At(0, 0))
}

func TestNormalizeNeverEnlarges(t *testing.T) {
	out := Normalize(ttesting.Solid(5, 200, red), 37)
	ttesting.AssertSize(t, "canvas", out, 37, 37)

	opaque := 0
	for y := 0; y < 37; y++ {
		for x := 0; x < 37; x++ {
			if _, _, _, a := out.At(x, y).RGBA(); a != 0 {
				opaque++
			}
		}
	}
	// The 5 px width shrinks, never grows, so at most one column remains.
	assert.Equal(t, 37, opaque)
}

func TestSortByHeightIsStable(t *testing.T) {
	s := []Processed{
		{Metadata: imagemeta.Metadata{Path: "a", Height: 5}},
		{Metadata: imagemeta.Metadata{Path: "b", Height: 20}},
		{Metadata: imagemeta.Metadata{Path: "c", Height: 5}},
		{Metadata: imagemeta.Metadata{Path: "d", Height: 20}},
		{Metadata: imagemeta.Metadata{Path: "e", Height: 10}},
	}
	SortByHeight(s)

	var got []string
	for _, p := range s {
		got = append(got, p.Path)
	}
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, got)
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		ttesting.WriteSolidPNG(t, dir, "small.png", 10, 10, red),
		ttesting.WriteSolidPNG(t, dir, "huge.png", 300, 150, red),
		ttesting.WriteSolidPNG(t, dir, "mid.png", 20, 20, red),
	}
	metas, err := imagemeta.ReadAll(files)
	require.NoError(t, err)

	ps, err := Process(metas, 128)
	require.NoError(t, err)
	require.Len(t, ps, 3)

	assert.Equal(t, files[1], ps[0].Path)
	assert.Equal(t, 128, ps[0].Width)
	assert.Equal(t, 128, ps[0].Height)
	assert.Equal(t, files[2], ps[1].Path)
	assert.Equal(t, files[0], ps[2].Path)
	for _, p := range ps {
		assert.Equal(t, image.Pt(p.Width, p.Height), p.Image.Bounds().Size(), p.Path)
	}
}

func TestProcessRejectsZeroSized(t *testing.T) {
	_, err := Process([]imagemeta.Metadata{{Path: "empty.png"}}, 128)
	var ide *spritepack.InvalidDimensionsError
	require.True(t, errors.As(err, &ide), "got %v", err)
	assert.Equal(t, "empty.png", ide.Path)
}
