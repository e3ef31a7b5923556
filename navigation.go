package main

import tea "github.com/charmbracelet/bubbletea"

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.zPanMode {
		return m.handlePan(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

// handlePan shifts the viewport. Every box moves in viewport space, so the
// next update pass redraws every arrow.
func (m *model) handlePan(key string, speed int) tea.Model {
	canvas := m.getCanvas()
	if canvas == nil {
		return m
	}
	panX, panY := canvas.Pan()
	switch key {
	case "h", "left", "H", "shift+left":
		panX -= speed
	case "l", "right", "L", "shift+right":
		panX += speed
	case "k", "up", "K", "shift+up":
		panY -= speed
	case "j", "down", "J", "shift+down":
		panY += speed
	}
	canvas.SetPan(panX, panY)
	return m
}

func (m *model) handleCursorMove(key string, speed int) tea.Model {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
	return m
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// directionDelta maps a movement key to a cell delta.
func directionDelta(key string) (int, int, bool) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0, true
	case "l", "right", "L", "shift+right":
		return 1, 0, true
	case "k", "up", "K", "shift+up":
		return 0, -1, true
	case "j", "down", "J", "shift+down":
		return 0, 1, true
	}
	return 0, 0, false
}
