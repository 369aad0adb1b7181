// Package atlas packs a directory of sprites into a single image and writes
// the manifest locating each sprite in it.
package atlas

import (
	"image"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritepack"
	"badc0de.net/pkg/spritepack/config"
	"badc0de.net/pkg/spritepack/imagemeta"
	"badc0de.net/pkg/spritepack/manifest"
	"badc0de.net/pkg/spritepack/pack"
	"badc0de.net/pkg/spritepack/paths"
	"badc0de.net/pkg/spritepack/sprite"
)

// Atlas is a composited atlas together with its manifest.
type Atlas struct {
	Image    *image.RGBA
	Manifest *manifest.Manifest
	Layout   pack.Layout
}

// Build reads every image in srcDir, normalizes and packs it, and returns
// the composited atlas. Files that are not images are skipped.
func Build(cfg config.Config, srcDir string) (*Atlas, error) {
	files, err := sourceFiles(srcDir)
	if err != nil {
		return nil, err
	}

	metas, err := imagemeta.ReadAll(files)
	if err != nil {
		return nil, errors.Wrap(err, "reading sprite metadata")
	}

	sprites, err := sprite.Process(metas, cfg.MaxSpriteSize)
	if err != nil {
		return nil, errors.Wrap(err, "processing sprites")
	}

	sizes := make([]image.Point, len(sprites))
	names := make([]string, len(sprites))
	for i, s := range sprites {
		sizes[i] = image.Pt(s.Width, s.Height)
		names[i] = s.Path
	}
	layout := pack.Shelf(sizes)
	glog.Infof("atlas size for %s: %dx%d (estimated width %d)", srcDir, layout.Size.X, layout.Size.Y, layout.EstimatedWidth)

	m, err := manifest.Build(names, layout.Positions, cfg.Namespace)
	if err != nil {
		return nil, err
	}
	if m.Len() != len(names) {
		glog.Warningf("%s: %d sprites share a name with another sprite", srcDir, len(names)-m.Len())
	}

	return &Atlas{
		Image:    Composite(sprites, layout),
		Manifest: m,
		Layout:   layout,
	}, nil
}

func sourceFiles(srcDir string) ([]string, error) {
	all, err := paths.Files(srcDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, f := range all {
		if !paths.IsImage(f) {
			glog.Warningf("skipping %s: not an image", f)
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, &spritepack.EmptyInputError{Path: srcDir}
	}
	return files, nil
}

// Generate builds the atlas for srcDir and writes the image to imagePath,
// the pretty manifest to manifestPath and the minified manifest next to it.
// Missing output directories are created.
func Generate(cfg config.Config, srcDir, imagePath, manifestPath string) (*Atlas, error) {
	for _, dir := range []string{filepath.Dir(imagePath), filepath.Dir(manifestPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating output directory")
		}
	}

	a, err := Build(cfg, srcDir)
	if err != nil {
		return nil, err
	}

	if err := a.WriteImage(imagePath, cfg.Encode); err != nil {
		return nil, err
	}
	if err := a.Manifest.Write(manifestPath); err != nil {
		return nil, err
	}
	glog.Infof("atlas written for %s: %s, %s", srcDir, imagePath, manifestPath)
	return a, nil
}

// WriteImage encodes the atlas image into path, in the format FormatFor
// picks.
func (a *Atlas) WriteImage(path string, opts config.EncodeOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating atlas image")
	}
	format := FormatFor(path, opts)
	if err := Encode(f, a.Image, opts, format); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
