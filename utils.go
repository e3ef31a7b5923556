package main

import (
	"fmt"

	"github.com/atotto/clipboard"
)

func (m *model) getCanvas() *Canvas {
	if m.buffer != nil {
		return m.buffer.canvas
	}
	return nil
}

// worldCoords converts the cursor from viewport to canvas cells.
func (m *model) worldCoords() (int, int) {
	panX, panY := m.getCanvas().Pan()
	return m.cursorX + panX, m.cursorY + panY
}

func (m *model) boxUnderCursor() Handle {
	x, y := m.worldCoords()
	return m.getCanvas().GetBoxAt(x, y)
}

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	buf := m.buffer
	if buf == nil {
		return
	}
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	buf.undoStack = append(buf.undoStack, action)
	buf.redoStack = buf.redoStack[:0]
}

func (m *model) ensureCursorInBounds() {
	maxY := m.height - 2
	if m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
}

// copySVG puts the svg export of the canvas on the system clipboard.
func copySVG(c *Canvas) error {
	doc, err := c.SVGString()
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(doc); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
