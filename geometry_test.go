package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(minX, minY, maxX, maxY float64) Rect {
	return Rect{Top: minY, Right: maxX, Bottom: maxY, Left: minX}
}

func TestBorderIntersectionFacingEdges(t *testing.T) {
	a := rect(-10, -10, 10, 10)
	b := rect(100, -10, 120, 10)

	ac, bc := a.Center(), b.Center()
	assert.Equal(t, Point{X: 100, Y: 0}, borderIntersection(ac.X, ac.Y, b))
	assert.Equal(t, Point{X: 10, Y: 0}, borderIntersection(bc.X, bc.Y, a))
}

func TestBorderIntersectionVerticalAlignment(t *testing.T) {
	r := rect(0, 100, 20, 120)

	above := borderIntersection(10, 0, r)
	below := borderIntersection(10, 500, r)

	assert.Equal(t, Point{X: 10, Y: 100}, above)
	assert.Equal(t, Point{X: 10, Y: 120}, below)
	for _, p := range []Point{above, below} {
		assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
		assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
	}
}

func TestBorderIntersectionAtCenter(t *testing.T) {
	r := rect(0, 0, 20, 10)
	assert.Equal(t, Point{X: 10, Y: 5}, borderIntersection(10, 5, r))
}

func TestBorderIntersectionCorner(t *testing.T) {
	r := rect(0, 0, 20, 20)
	assert.Equal(t, Point{X: 0, Y: 0}, borderIntersection(-10, -10, r))
	assert.Equal(t, Point{X: 20, Y: 20}, borderIntersection(40, 40, r))
}

func TestBorderIntersectionHorizontal(t *testing.T) {
	r := rect(0, 0, 20, 20)
	assert.Equal(t, Point{X: 0, Y: 10}, borderIntersection(-50, 10, r))
	assert.Equal(t, Point{X: 20, Y: 10}, borderIntersection(50, 10, r))
}

// Every result must sit on the border and on the segment from the outside
// point to the center, so it is the first border crossing.
func TestBorderIntersectionOnBorderAndSegment(t *testing.T) {
	const eps = 1e-9
	rects := []Rect{
		rect(0, 0, 20, 20),
		rect(-30, 5, 10, 15),
		rect(100, -40, 104, 60),
	}

	for _, r := range rects {
		c := r.Center()
		for dx := -200.0; dx <= 200; dx += 17 {
			for dy := -200.0; dy <= 200; dy += 13 {
				x, y := c.X+dx, c.Y+dy
				if x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom {
					continue
				}

				p := borderIntersection(x, y, r)

				onVertical := (p.X == r.Left || p.X == r.Right) && p.Y >= r.Top-eps && p.Y <= r.Bottom+eps
				onHorizontal := (p.Y == r.Top || p.Y == r.Bottom) && p.X >= r.Left-eps && p.X <= r.Right+eps
				require.True(t, onVertical || onHorizontal, "point %v not on border of %+v (from %g,%g)", p, r, x, y)

				dist := func(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }
				from := Point{X: x, Y: y}
				require.InDelta(t, dist(from, c), dist(from, p)+dist(p, c), 1e-6,
					"point %v not between %v and center %v", p, from, c)
			}
		}
	}
}
