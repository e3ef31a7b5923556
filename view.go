package main

import (
	"math"
)

// Render draws the viewport into width x height cells. Boxes are opaque:
// arrows are only drawn into cells no box covers.
func (c *Canvas) Render(width, height int, selectedBox Handle) []string {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, box := range c.boxes {
		c.drawBoxAt(canvas, box, box.Handle == selectedBox, box.X-c.panX, box.Y-c.panY)
	}

	for _, a := range c.drawnArrows() {
		c.drawArrowCells(canvas, a.Surface())
	}

	result := make([]string, height)
	for i, row := range canvas {
		result[i] = string(row)
	}
	return result
}

func toCell(p Point) (int, int) {
	return int(math.Floor(p.X / charWidth)), int(math.Floor(p.Y / charHeight))
}

func (c *Canvas) isValidPos(canvas [][]rune, x, y int) bool {
	return y >= 0 && y < len(canvas) && x >= 0 && x < len(canvas[y])
}

// isFree reports whether a viewport cell is on screen and outside every box.
func (c *Canvas) isFree(canvas [][]rune, x, y int) bool {
	return c.isValidPos(canvas, x, y) && c.GetBoxAt(x+c.panX, y+c.panY) == Root
}

// drawArrowCells samples the surface curve into cells, puts a head on the
// last free cell and the label around the middle.
func (c *Canvas) drawArrowCells(canvas [][]rune, s *Surface) {
	cv := s.curve
	at := func(t float64) (int, int) {
		p := cv.pointAt(t)
		return toCell(Point{X: p.X + s.X, Y: p.Y + s.Y})
	}

	sx, sy := at(0)
	ex, ey := at(1)
	dx, dy := ex-sx, ey-sy
	glyph := lineChar(dx, dy)

	steps := max(abs(dx), abs(dy))*2 + 1
	headX, headY, hasHead := 0, 0, false
	for i := 0; i <= steps; i++ {
		x, y := at(float64(i) / float64(steps))
		if !c.isFree(canvas, x, y) {
			continue
		}
		canvas[y][x] = glyph
		headX, headY, hasHead = x, y, true
	}
	if hasHead {
		canvas[headY][headX] = arrowChar(dx, dy)
	}

	if s.label == nil {
		return
	}
	mx, my := at(0.5)
	if dy == 0 {
		// Horizontal arrows carry the label on the row below
		my++
	}
	text := []rune(s.label.Text)
	lx := mx - len(text)/2
	for i, r := range text {
		if c.isFree(canvas, lx+i, my) {
			canvas[my][lx+i] = r
		}
	}
}

func lineChar(dx, dy int) rune {
	if dx == 0 {
		return '|'
	}
	if dy == 0 {
		return '-'
	}
	if (dx > 0) == (dy > 0) {
		return '\\'
	}
	return '/'
}

func arrowChar(dx, dy int) rune {
	if abs(dy) > abs(dx) {
		if dy > 0 {
			return 'v'
		}
		return '^'
	}
	if dx > 0 {
		return '>'
	}
	return '<'
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (c *Canvas) drawBoxAt(canvas [][]rune, box Box, isSelected bool, boxX, boxY int) {
	// Choose border characters based on selection state
	var corner, horizontal, vertical rune
	if isSelected {
		corner = '#'
		horizontal = '#'
		vertical = '#'
	} else {
		corner = '+'
		horizontal = '-'
		vertical = '|'
	}

	for y := boxY; y < boxY+box.Height; y++ {
		for x := boxX; x < boxX+box.Width; x++ {
			if !c.isValidPos(canvas, x, y) {
				continue
			}
			switch {
			case (y == boxY || y == boxY+box.Height-1) && (x == boxX || x == boxX+box.Width-1):
				canvas[y][x] = corner
			case y == boxY || y == boxY+box.Height-1:
				canvas[y][x] = horizontal
			case x == boxX || x == boxX+box.Width-1:
				canvas[y][x] = vertical
			}
		}
	}

	// Draw multi-line text inside box, truncated to the box width
	maxWidth := box.Width - 2
	for lineIdx, line := range box.Lines {
		textY := boxY + 1 + lineIdx
		if textY >= boxY+box.Height-1 {
			break
		}
		for i, char := range []rune(line) {
			if i >= maxWidth {
				break
			}
			if c.isValidPos(canvas, boxX+1+i, textY) {
				canvas[textY][boxX+1+i] = char
			}
		}
	}
}
