package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	config := defaultConfig()
	config.Confirmations = false
	m := initialModel(config)
	m.width, m.height = 80, 24
	return m
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.handleKey(k)
		switch n := next.(type) {
		case model:
			m = n
		case *model:
			m = *n
		default:
			t.Fatalf("unexpected model %T", next)
		}
	}
	return m
}

func TestUndoDeleteBoxRestoresArrows(t *testing.T) {
	m := newTestModel(t)
	c, a, b, _ := newTestCanvas(t)
	m.buffer.canvas = c
	arrow := c.SelectHandles(a).Arrows(Options{To: "#b", Name: "uses"})[0]

	m.deleteBox(a)
	require.True(t, arrow.Destroyed())
	assert.Empty(t, c.Arrows().Arrows(b))

	m.undo()
	restored, ok := c.Arrows().Lookup(arrow.ID)
	require.True(t, ok)
	assert.Equal(t, a, restored.From)
	assert.Equal(t, "uses", restored.Config.Name)
	assert.Equal(t, []*Arrow{restored}, c.Arrows().Arrows(b))

	m.redo()
	_, ok = c.Arrows().Lookup(arrow.ID)
	assert.False(t, ok)
	_, ok = c.GetBox(a)
	assert.False(t, ok)
}

func TestUndoRemoveArrows(t *testing.T) {
	m := newTestModel(t)
	c, a, _, _ := newTestCanvas(t)
	m.buffer.canvas = c
	c.SelectHandles(a).Arrows(Options{To: "#b, #c"})

	m.removeArrows(a)
	assert.Empty(t, c.Arrows().All())

	m.undo()
	assert.Len(t, c.Arrows().Arrows(a), 2)

	m.redo()
	assert.Empty(t, c.Arrows().All())
}

func TestAddBoxAndArrowByKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "b", "A", "enter")
	m = press(t, m, "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l", "l")
	m = press(t, m, "b", "B", "enter")
	require.Len(t, m.getCanvas().Boxes(), 2)

	m.cursorX = 1
	m = press(t, m, "a")
	assert.Equal(t, ModeLink, m.mode)
	m.cursorX = 21
	m = press(t, m, "enter", "u", "s", "e", "s", "enter")
	assert.Equal(t, ModeNormal, m.mode)

	arrows := m.getCanvas().Arrows().All()
	require.Len(t, arrows, 1)
	assert.Equal(t, "uses", arrows[0].Config.Name)

	m = press(t, m, "u")
	assert.Empty(t, m.getCanvas().Arrows().All())
	m = press(t, m, "U")
	assert.Len(t, m.getCanvas().Arrows().All(), 1)
}

func TestMoveBoxUndo(t *testing.T) {
	m := newTestModel(t)
	c, a, _, _ := newTestCanvas(t)
	m.buffer.canvas = c
	arrow := c.SelectHandles(a).Arrows(Options{To: "#b"})[0]
	m.cursorX, m.cursorY = 1, 1

	m = press(t, m, "m", "j", "j", "enter")
	box, _ := c.GetBox(a)
	assert.Equal(t, 2, box.Y)

	c.UpdateArrows()
	assert.Equal(t, 2, arrow.Surface().Revision)

	m.undo()
	box, _ = c.GetBox(a)
	assert.Equal(t, 0, box.Y)
	m.redo()
	box, _ = c.GetBox(a)
	assert.Equal(t, 2, box.Y)
}

func TestTickUpdatesArrows(t *testing.T) {
	m := newTestModel(t)
	c, a, _, _ := newTestCanvas(t)
	m.buffer.canvas = c
	arrow := c.SelectHandles(a).Arrows(Options{To: "#b"})[0]

	c.MoveBox(a, 0, 3)
	next, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd)
	assert.IsType(t, model{}, next)
	assert.Equal(t, 2, arrow.Surface().Revision)
}

func TestViewShowsStatus(t *testing.T) {
	m := newTestModel(t)
	c, a, _, _ := newTestCanvas(t)
	m.buffer.canvas = c
	c.SelectHandles(a).Arrows(Options{To: "#b"})

	view := m.View()
	assert.Contains(t, view, "Boxes: 3 | Arrows: 1")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Contains(t, next.View(), "Arrows Help")
}

func TestUndoRedoNewBoxKeepsText(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "b", "h", "i", "enter")
	h := m.getCanvas().GetBoxAt(0, 0)
	require.NotEqual(t, Root, h)
	require.Len(t, m.buffer.undoStack, 1)

	m = press(t, m, "u")
	assert.Empty(t, m.getCanvas().Boxes())

	m = press(t, m, "U")
	assert.Equal(t, "hi", m.getCanvas().GetBoxText(h))
}

func TestAbandonedNewBoxCanBeUndone(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "b", "x", "esc")
	require.Len(t, m.getCanvas().Boxes(), 1)
	assert.Equal(t, "", m.getCanvas().Boxes()[0].GetText())

	m = press(t, m, "u")
	assert.Empty(t, m.getCanvas().Boxes())
}

func TestUndoTextEdit(t *testing.T) {
	m := newTestModel(t)
	h := m.getCanvas().AddBox(0, 0, "old")
	m.cursorX, m.cursorY = 1, 1

	m = press(t, m, "e", "backspace", "backspace", "backspace", "n", "e", "w", "enter")
	assert.Equal(t, "new", m.getCanvas().GetBoxText(h))

	m = press(t, m, "u")
	assert.Equal(t, "old", m.getCanvas().GetBoxText(h))
	m = press(t, m, "U")
	assert.Equal(t, "new", m.getCanvas().GetBoxText(h))

	// Committing unchanged text records nothing.
	m = press(t, m, "e", "enter")
	assert.Len(t, m.buffer.undoStack, 1)
}

func TestUndoDeleteContainerRestoresHostedArrows(t *testing.T) {
	m := newTestModel(t)
	c, a, b, d := newTestCanvas(t)
	m.buffer.canvas = c
	hosted := c.SelectHandles(a).Arrows(Options{To: "#b", Within: "#c"})[0]

	m.deleteBox(d)
	require.True(t, hosted.Destroyed())

	m.undo()
	restored, ok := c.Arrows().Lookup(hosted.ID)
	require.True(t, ok)
	assert.Equal(t, d, restored.Config.Within)
	assert.Equal(t, []*Arrow{restored}, c.Arrows().Arrows(b))
}
