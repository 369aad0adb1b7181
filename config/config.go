// Package config holds the settings shared by the atlas and animation
// pipelines.
//
// A Config is a plain value. Pipelines receive it as an argument and never
// modify it, so several runs with different settings can share a process.
package config

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
)

// EncodeOptions configures how an atlas image is encoded.
type EncodeOptions struct {
	// Quality is passed to lossy-capable encoders (WebP); PNG ignores it.
	Quality int `json:"quality"`
	// CompressionLevel is a zlib-style level from 0 (none) to 9 (best).
	CompressionLevel int `json:"compression_level"`
	// Force always writes PNG, regardless of the output file's extension.
	Force bool `json:"force"`
	// Palette quantizes the atlas to at most Colors colours.
	Palette bool `json:"palette"`
	Colors  int  `json:"colors"`
	// Effort ranges from 1 to 10 and selects the quantizer's aggregation.
	Effort int `json:"effort"`
	// Dither ranges from 0 to 1 but is not graded: any positive value turns
	// on full Floyd-Steinberg error diffusion in palette mode, 0 maps each
	// pixel to its nearest palette colour.
	Dither float64 `json:"dither"`
}

// Config is the full pipeline configuration.
type Config struct {
	AssetsPath string `json:"assets_path"`
	OutputPath string `json:"output_path"`

	// Atlases lists the asset categories packed into atlases, e.g. "items".
	Atlases []string `json:"atlases"`
	// Animations lists the asset categories whose subdirectories become GIFs,
	// e.g. "particle".
	Animations []string `json:"animations"`

	AtlasImageName    string `json:"atlas_image_name"`
	AtlasManifestName string `json:"atlas_manifest_name"`
	// Namespace prefixes every manifest key.
	Namespace string `json:"namespace"`

	Encode EncodeOptions `json:"encode"`

	// MaxSpriteSize bounds both sides of a sprite before packing.
	MaxSpriteSize int `json:"max_sprite_size"`
	// FrameDelayMillis is the per-frame delay of generated animations.
	FrameDelayMillis int `json:"frame_delay_ms"`
}

const (
	// DefaultFrameDelay is the per-frame delay used by default.
	DefaultFrameDelay = 150 * time.Millisecond
	// LegacyFrameDelay is the 1/20 s delay older asset packs were built with.
	LegacyFrameDelay = 50 * time.Millisecond

	DefaultMaxSpriteSize = 128
)

// Default returns the stock configuration.
func Default() Config {
	return Config{
		AssetsPath:        "./assets",
		OutputPath:        "./output",
		Atlases:           []string{"items"},
		Animations:        []string{},
		AtlasImageName:    "atlas.png",
		AtlasManifestName: "atlas.json",
		Encode: EncodeOptions{
			Quality:          100,
			CompressionLevel: 5,
			Force:            true,
			Palette:          false,
			Colors:           256,
			Effort:           6,
			Dither:           0.0,
		},
		MaxSpriteSize:    DefaultMaxSpriteSize,
		FrameDelayMillis: int(DefaultFrameDelay / time.Millisecond),
	}
}

// FrameDelay returns the per-frame animation delay.
func (c Config) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMillis) * time.Millisecond
}

// Validate reports settings the pipelines cannot work with.
func (c Config) Validate() error {
	if c.MaxSpriteSize <= 0 {
		return errors.Errorf("max_sprite_size = %d; want > 0", c.MaxSpriteSize)
	}
	if c.FrameDelayMillis < 0 {
		return errors.Errorf("frame_delay_ms = %d; want >= 0", c.FrameDelayMillis)
	}
	if c.Encode.CompressionLevel < 0 || c.Encode.CompressionLevel > 9 {
		return errors.Errorf("compression_level = %d; want [0,9]", c.Encode.CompressionLevel)
	}
	if c.Encode.Palette && (c.Encode.Colors < 2 || c.Encode.Colors > 256) {
		return errors.Errorf("colors = %d; want [2,256]", c.Encode.Colors)
	}
	if c.Encode.Dither < 0 || c.Encode.Dither > 1 {
		return errors.Errorf("dither = %g; want [0,1]", c.Encode.Dither)
	}
	if c.AtlasImageName == "" || c.AtlasManifestName == "" {
		return errors.New("atlas image and manifest names must be set")
	}
	return nil
}

// Load reads a JSON configuration from r. Fields missing from the document
// keep their Default values.
//
// The io.Reader must be closed by the caller even if this function returns an
// error.
func Load(r io.Reader) (Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "validating config")
	}
	return c, nil
}

// Save writes the configuration to w as indented JSON, in a form Load
// accepts.
func (c Config) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
