package main

import (
	"strings"
)

// Pixels per terminal cell. Bounding boxes handed to the registry are in
// pixels so that surfaces and exports share one coordinate space.
const (
	charWidth  = 8.0
	charHeight = 16.0
)

// Canvas is the document the arrows live in. Boxes are the endpoints;
// their handles are stable for the lifetime of the canvas.
type Canvas struct {
	boxes      []Box
	nextHandle Handle
	panX       int
	panY       int
	surfaces   map[Handle][]*Surface
	arrows     *Registry
}

type Box struct {
	Handle  Handle
	X       int
	Y       int
	Width   int
	Height  int
	Name    string
	Classes []string
	Lines   []string
}

func (b *Box) GetText() string {
	return strings.Join(b.Lines, "\n")
}

func (b *Box) SetText(text string) {
	b.Lines = strings.Split(text, "\n")
	b.updateSize()
}

func (b *Box) updateSize() {
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}

	// Calculate width based on longest line
	maxWidth := minBoxWidth
	for _, line := range b.Lines {
		if len(line)+2 > maxWidth { // +2 for padding
			maxWidth = len(line) + 2
		}
	}
	b.Width = maxWidth

	// Height is number of lines + 2 for borders
	b.Height = len(b.Lines) + 2
}

func (b *Box) HasClass(class string) bool {
	for _, c := range b.Classes {
		if c == class {
			return true
		}
	}
	return false
}

func (b *Box) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

func NewCanvas() *Canvas {
	c := &Canvas{
		boxes:      make([]Box, 0),
		nextHandle: Root + 1,
		surfaces:   make(map[Handle][]*Surface),
	}
	c.arrows = NewRegistry(c, c)
	return c
}

func (c *Canvas) Arrows() *Registry {
	return c.arrows
}

func (c *Canvas) AddBox(x, y int, text string) Handle {
	box := Box{
		Handle: c.nextHandle,
		X:      x,
		Y:      y,
	}
	box.SetText(text)
	c.nextHandle++
	c.boxes = append(c.boxes, box)
	return box.Handle
}

// AddBoxWithHandle puts a box back under a handle it had before, keeping
// document order by handle.
func (c *Canvas) AddBoxWithHandle(box Box) {
	if box.Handle <= Root || c.box(box.Handle) != nil {
		return
	}
	if box.Handle >= c.nextHandle {
		c.nextHandle = box.Handle + 1
	}

	i := len(c.boxes)
	for j, b := range c.boxes {
		if b.Handle > box.Handle {
			i = j
			break
		}
	}
	c.boxes = append(c.boxes, Box{})
	copy(c.boxes[i+1:], c.boxes[i:])
	c.boxes[i] = box
}

func (c *Canvas) box(h Handle) *Box {
	for i := range c.boxes {
		if c.boxes[i].Handle == h {
			return &c.boxes[i]
		}
	}
	return nil
}

// GetBox returns a copy of the box with handle h.
func (c *Canvas) GetBox(h Handle) (Box, bool) {
	if b := c.box(h); b != nil {
		return *b, true
	}
	return Box{}, false
}

func (c *Canvas) Boxes() []Box {
	return append([]Box(nil), c.boxes...)
}

// GetBoxAt returns the topmost box covering the cell, or Root.
func (c *Canvas) GetBoxAt(x, y int) Handle {
	for i := len(c.boxes) - 1; i >= 0; i-- {
		if c.boxes[i].contains(x, y) {
			return c.boxes[i].Handle
		}
	}
	return Root
}

func (c *Canvas) GetBoxText(h Handle) string {
	if b := c.box(h); b != nil {
		return b.GetText()
	}
	return ""
}

func (c *Canvas) SetBoxText(h Handle, text string) {
	if b := c.box(h); b != nil {
		b.SetText(text)
	}
}

func (c *Canvas) SetBoxName(h Handle, name string) {
	if b := c.box(h); b != nil {
		b.Name = name
	}
}

func (c *Canvas) SetBoxClasses(h Handle, classes ...string) {
	if b := c.box(h); b != nil {
		b.Classes = append([]string(nil), classes...)
	}
}

// DeleteBox removes the box and notifies the registry so every arrow
// touching it, or hosted inside it, goes with it.
func (c *Canvas) DeleteBox(h Handle) {
	idx := -1
	for i, b := range c.boxes {
		if b.Handle == h {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	c.boxes = append(c.boxes[:idx], c.boxes[idx+1:]...)

	c.arrows.Teardown(h)
	for _, a := range c.arrows.HostedBy(h) {
		c.arrows.Destroy(a)
	}
}

func (c *Canvas) MoveBox(h Handle, deltaX, deltaY int) {
	if b := c.box(h); b != nil {
		b.X += deltaX
		b.Y += deltaY
	}
}

func (c *Canvas) SetBoxPosition(h Handle, x, y int) {
	if b := c.box(h); b != nil {
		b.X = x
		b.Y = y
	}
}

func (c *Canvas) ResizeBox(h Handle, deltaWidth, deltaHeight int) {
	b := c.box(h)
	if b == nil {
		return
	}
	b.Width += deltaWidth
	b.Height += deltaHeight
	if b.Width < minBoxWidth {
		b.Width = minBoxWidth
	}
	if b.Height < minBoxHeight {
		b.Height = minBoxHeight
	}
}

func (c *Canvas) SetBoxSize(h Handle, width, height int) {
	if b := c.box(h); b != nil {
		b.Width = max(width, minBoxWidth)
		b.Height = max(height, minBoxHeight)
	}
}

func (c *Canvas) SetPan(panX, panY int) {
	c.panX, c.panY = panX, panY
}

func (c *Canvas) Pan() (int, int) {
	return c.panX, c.panY
}

// BoundingBox reports the box in viewport pixels.
func (c *Canvas) BoundingBox(h Handle) (Rect, bool) {
	b := c.box(h)
	if b == nil {
		return Rect{}, false
	}
	left := float64(b.X-c.panX) * charWidth
	top := float64(b.Y-c.panY) * charHeight
	return Rect{
		Top:    top,
		Right:  left + float64(b.Width)*charWidth,
		Bottom: top + float64(b.Height)*charHeight,
		Left:   left,
	}, true
}

func (c *Canvas) AttachSurface(s *Surface) {
	c.surfaces[s.Within] = append(c.surfaces[s.Within], s)
}

func (c *Canvas) DetachSurface(s *Surface) {
	list := c.surfaces[s.Within]
	for i, x := range list {
		if x == s {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(c.surfaces, s.Within)
		return
	}
	c.surfaces[s.Within] = list
}

// Surfaces returns the surfaces attached under container h.
func (c *Canvas) Surfaces(h Handle) []*Surface {
	return append([]*Surface(nil), c.surfaces[h]...)
}

// UpdateArrows runs one update pass over every arrow and returns how many
// were redrawn. Each arrow is observed once per pass.
func (c *Canvas) UpdateArrows() int {
	n := 0
	for _, a := range c.arrows.All() {
		if c.arrows.Update(a) {
			n++
		}
	}
	return n
}

// Clear removes all boxes and their arrows.
func (c *Canvas) Clear() {
	for len(c.boxes) > 0 {
		c.DeleteBox(c.boxes[len(c.boxes)-1].Handle)
	}
	c.panX, c.panY = 0, 0
}
