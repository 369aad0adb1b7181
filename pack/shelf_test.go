package pack

import (
	"fmt"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"badc0de.net/pkg/spritepack/ttesting"
)

func TestShelfKnownLayout(t *testing.T) {
	l := Shelf([]image.Point{{20, 20}, {10, 10}, {5, 5}})

	ttesting.AssertEqualInt(t, "estimate", l.EstimatedWidth, 23)
	assert.Equal(t, []image.Rectangle{
		image.Rect(0, 0, 20, 20),
		image.Rect(0, 20, 10, 30),
		image.Rect(10, 20, 15, 25),
	}, l.Positions)
	assert.Equal(t, image.Pt(20, 30), l.Size)
}

func TestShelfRowsFollowTallest(t *testing.T) {
	// Estimate is ceil(sqrt(128+96+72+32)) = 19: two sprites per row.
	l := Shelf([]image.Point{{8, 16}, {8, 12}, {8, 9}, {8, 4}})

	assert.Equal(t, 19, l.EstimatedWidth)
	assert.Equal(t, []image.Rectangle{
		image.Rect(0, 0, 8, 16),
		image.Rect(8, 0, 16, 12),
		image.Rect(0, 16, 8, 25),
		image.Rect(8, 16, 16, 20),
	}, l.Positions)
	assert.Equal(t, image.Pt(16, 25), l.Size)
}

func TestShelfOverWideSprite(t *testing.T) {
	l := Shelf([]image.Point{{100, 2}, {3, 3}, {3, 3}})

	assert.Equal(t, 15, l.EstimatedWidth)
	assert.Equal(t, image.Rect(0, 0, 100, 2), l.Positions[0])
	assert.Equal(t, image.Rect(0, 2, 3, 5), l.Positions[1])
	assert.Equal(t, image.Rect(3, 2, 6, 5), l.Positions[2])
	assert.Equal(t, image.Pt(100, 5), l.Size)
}

func TestShelfEmpty(t *testing.T) {
	l := Shelf(nil)
	assert.Empty(t, l.Positions)
	assert.Equal(t, image.ZP, l.Size)
}

func randomSizes(r *rand.Rand, n, max int) []image.Point {
	sizes := make([]image.Point, n)
	for i := range sizes {
		sizes[i] = image.Pt(1+r.Intn(max), 1+r.Intn(max))
	}
	return sizes
}

func TestShelfNeverOverlaps(t *testing.T) {
	r := rand.New(rand.NewSource(854))
	for i := 0; i < 50; i++ {
		sizes := randomSizes(r, 1+r.Intn(60), 1+r.Intn(128))
		l := Shelf(sizes)

		var area int
		for j, s := range sizes {
			assert.Equal(t, s, l.Positions[j].Size())
			area += s.X * s.Y
		}
		assert.GreaterOrEqual(t, l.Size.X*l.Size.Y, area)
		ttesting.AssertDisjoint(t, fmt.Sprintf("run%d", i), l.Positions, image.Rectangle{Max: l.Size})
	}
}

func TestShelfIsDeterministic(t *testing.T) {
	sizes := randomSizes(rand.New(rand.NewSource(1)), 40, 64)
	assert.Equal(t, Shelf(sizes), Shelf(sizes))
}

func ExampleShelf() {
	l := Shelf([]image.Point{{20, 20}, {10, 10}, {5, 5}})
	fmt.Println(l.Positions, l.Size)
	// Output: [(0,0)-(20,20) (0,20)-(10,30) (10,20)-(15,25)] (20,30)
}
