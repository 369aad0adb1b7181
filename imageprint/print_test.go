package imageprint

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checker is 2x2: white, transparent / black, red.
func checker() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 0, 0xff})
	img.SetNRGBA(1, 1, color.NRGBA{0xff, 0, 0, 0xff})
	return img
}

func TestNoColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{W: &buf, Mode: NoColor}.Print(checker()))
	assert.Equal(t, "##  \n..==\n", buf.String())
}

func TestNoColorBlanks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{W: &buf, Mode: NoColor, Blanks: true}.Print(checker()))
	assert.Equal(t, "    \n    \n", buf.String())
}

func TestTrueColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{W: &buf, Mode: TrueColor, Blanks: true}.Print(checker()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "\x1b[48;2;255;255;255m  \x1b[0m  ", lines[0])
	assert.Equal(t, "\x1b[48;2;0;0;0m  \x1b[0m\x1b[48;2;255;0;0m  \x1b[0m", lines[1])
}

func TestColor256LineCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{W: &buf, Mode: Color256}.Print(checker()))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "##")
}

func TestITerm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{W: &buf, Mode: ITerm, Name: "atlas.png"}.Print(checker()))

	s := buf.String()
	prefix := "\n\033]1337;File=name=" + base64.StdEncoding.EncodeToString([]byte("atlas.png")) + ";inline=1;size="
	require.True(t, strings.HasPrefix(s, prefix), "got %q", s)
	require.True(t, strings.HasSuffix(s, "\a\n"))

	payload := s[strings.LastIndex(s, ":")+1 : len(s)-2]
	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 2), img.Bounds().Size())
	assert.Contains(t, s, "width=2px;height=2px:")
}

func TestParseMode(t *testing.T) {
	for m := Auto; m <= NoColor; m++ {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode("TrueColor")
	require.NoError(t, err)
	assert.Equal(t, TrueColor, got)

	_, err = ParseMode("sixel")
	assert.Error(t, err)
	assert.Equal(t, "Mode(42)", Mode(42).String())
}

func TestUnknownMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Printer{W: &buf, Mode: Mode(42)}.Print(checker()))
}
