package atlas

import (
	"image"
	"image/draw"

	"github.com/golang/glog"

	"badc0de.net/pkg/spritepack/pack"
	"badc0de.net/pkg/spritepack/sprite"
)

// Composite paints every sprite onto a transparent canvas of l.Size, at the
// position l assigns to it. Sprites and positions are paired by index.
//
// Sprite buffers are premultiplied RGBA, so draw.Over blends their edges
// without dark fringes.
func Composite(sprites []sprite.Processed, l pack.Layout) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: l.Size})

	for i, s := range sprites {
		if i >= len(l.Positions) {
			glog.Errorf("no position for sprite %s", s.Path)
			break
		}
		dst := l.Positions[i]
		draw.Draw(img, dst, s.Image, s.Image.Bounds().Min, draw.Over)
	}

	return img
}
