package main

import "fmt"

// Point is a position in viewport pixels.
type Point struct {
	X, Y float64
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("%g %g", p.X, p.Y)
}

// Rect is a bounding box given by its four edges, in the same order the
// change detector records them.
type Rect struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// IsZero reports whether every edge is exactly zero, which is what a
// detached or never laid out element reports.
func (r Rect) IsZero() bool {
	return r.Top == 0 && r.Right == 0 && r.Bottom == 0 && r.Left == 0
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// borderIntersection returns where the line from (x, y) towards the center
// of r crosses the border of r.
func borderIntersection(x, y float64, r Rect) Point {
	minX, minY, maxX, maxY := r.Left, r.Top, r.Right, r.Bottom
	midX := (minX + maxX) / 2
	midY := (minY + maxY) / 2

	if x == midX {
		switch {
		case y < midY:
			return Point{X: midX, Y: minY}
		case y > midY:
			return Point{X: midX, Y: maxY}
		default:
			return Point{X: x, Y: y}
		}
	}

	m := (midY - y) / (midX - x)

	if x <= midX {
		if cy := m*(minX-x) + y; minY <= cy && cy <= maxY {
			return Point{X: minX, Y: cy}
		}
	}
	if x >= midX {
		if cy := m*(maxX-x) + y; minY <= cy && cy <= maxY {
			return Point{X: maxX, Y: cy}
		}
	}
	// m is non-zero here: a horizontal line through the center always
	// meets the left or right edge first.
	if y <= midY {
		if cx := (minY-y)/m + x; minX <= cx && cx <= maxX {
			return Point{X: cx, Y: minY}
		}
	}
	if y >= midY {
		if cx := (maxY-y)/m + x; minX <= cx && cx <= maxX {
			return Point{X: cx, Y: maxY}
		}
	}

	return Point{X: midX, Y: midY}
}
