// Package pack lays sprites out on an atlas canvas.
//
// The layout is next-fit shelf packing: sprites are placed left to right
// in their given order until the next one would cross an estimated row
// width, at which point a new row (shelf) starts below the tallest sprite
// of the current one. Nothing is rotated, nothing spans two rows, and the
// result is not space-optimal. Callers get the best results by passing
// sprites sorted tallest first.
package pack

import (
	"image"
	"math"
)

// Layout is the result of packing.
type Layout struct {
	// Positions holds one rectangle per input size, in input order.
	Positions []image.Rectangle
	// Size is the smallest canvas containing every position.
	Size image.Point
	// EstimatedWidth is the row width the packer aimed for.
	EstimatedWidth int
}

// EstimateWidth returns ceil(sqrt(total area)), the side of a square with
// the combined area of all sizes.
func EstimateWidth(sizes []image.Point) int {
	var area int64
	for _, s := range sizes {
		area += int64(s.X) * int64(s.Y)
	}
	return int(math.Ceil(math.Sqrt(float64(area))))
}

// Shelf packs sizes in order.
//
// A sprite wider than the estimated width still gets a row of its own,
// which makes the canvas wider than the estimate. Identical input always
// yields identical output.
func Shelf(sizes []image.Point) Layout {
	l := Layout{
		Positions:      make([]image.Rectangle, 0, len(sizes)),
		EstimatedWidth: EstimateWidth(sizes),
	}

	var x, y, rowHeight int
	for _, s := range sizes {
		if x+s.X > l.EstimatedWidth {
			x = 0
			y += rowHeight
			rowHeight = 0
		}

		l.Positions = append(l.Positions, image.Rect(x, y, x+s.X, y+s.Y))

		x += s.X
		if s.Y > rowHeight {
			rowHeight = s.Y
		}
		if x > l.Size.X {
			l.Size.X = x
		}
		if y+rowHeight > l.Size.Y {
			l.Size.Y = y + rowHeight
		}
	}
	return l
}
