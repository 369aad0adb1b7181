package ttesting

import (
	"image"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertSize(t *testing.T, name string, img image.Image, wantW, wantH int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got := img.Bounds().Size(); got.X != wantW || got.Y != wantH {
			t.Errorf("got %dx%d; want %dx%d", got.X, got.Y, wantW, wantH)
		}
	})
}

// AssertDisjoint checks that no two rectangles overlap and that all of them
// lie within bounds.
func AssertDisjoint(t *testing.T, name string, rects []image.Rectangle, bounds image.Rectangle) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		for i, a := range rects {
			if !a.In(bounds) {
				t.Errorf("rect %d %v outside %v", i, a, bounds)
			}
			for j := i + 1; j < len(rects); j++ {
				if a.Overlaps(rects[j]) {
					t.Errorf("rect %d %v overlaps rect %d %v", i, a, j, rects[j])
				}
			}
		}
	})
}
