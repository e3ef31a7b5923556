package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	modeStyle    = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Padding(1, 2)
)

func main() {
	config := loadConfig()
	logCloser, err := config.openLog()
	if err != nil {
		log.Fatal(err)
	}
	defer logCloser.Close()
	serveMetrics(config.MetricsAddr)

	p := tea.NewProgram(initialModel(config), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config) model {
	return model{
		buffer:      &Buffer{canvas: NewCanvas()},
		mode:        ModeNormal,
		selectedBox: Root,
		linkFrom:    Root,
		config:      config,
	}
}

type tickMsg time.Time

// tick drives the update pass: the registry never polls on its own.
func (m model) tick() tea.Cmd {
	return tea.Tick(m.config.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tickMsg:
		m.getCanvas().UpdateArrows()
		return m, m.tick()

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg.String())
		m.getCanvas().UpdateArrows()
		return next, cmd
	}
	return m, nil
}

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	if m.help {
		m.help = false
		return m, nil
	}

	switch m.mode {
	case ModeMove:
		return m.handleMoveKey(key)
	case ModeResize:
		return m.handleResizeKey(key)
	case ModeLink:
		return m.handleLinkKey(key)
	case ModeEdit, ModeName, ModeFileInput:
		return m.handleTextKey(key)
	case ModeConfirm:
		return m.handleConfirmKey(key)
	}

	m.errorMessage = ""
	m.successMessage = ""
	canvas := m.getCanvas()

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case "z":
		m.zPanMode = !m.zPanMode
	case "b":
		x, y := m.worldCoords()
		// The add is recorded once the text is committed or abandoned.
		m.selectedBox = canvas.AddBox(x, y, "")
		m.pendingAdd = true
		m.editText = ""
		m.mode = ModeEdit
	case "e":
		if h := m.boxUnderCursor(); h != Root {
			m.selectedBox = h
			m.editText = canvas.GetBoxText(h)
			m.mode = ModeEdit
		}
	case "m", "r":
		h := m.boxUnderCursor()
		if h == Root {
			m.errorMessage = "no box under cursor"
			return m, nil
		}
		m.selectedBox = h
		m.originalBox, _ = canvas.GetBox(h)
		if key == "m" {
			m.mode = ModeMove
		} else {
			m.mode = ModeResize
		}
	case "a":
		h := m.boxUnderCursor()
		if h == Root {
			m.errorMessage = "no box under cursor"
			return m, nil
		}
		m.linkFrom = h
		m.mode = ModeLink
	case "d":
		h := m.boxUnderCursor()
		if h == Root {
			return m, nil
		}
		if m.config.Confirmations {
			m.confirmBox = h
			m.confirmAction = ConfirmDeleteBox
			m.mode = ModeConfirm
			return m, nil
		}
		m.deleteBox(h)
	case "x":
		h := m.boxUnderCursor()
		if h == Root {
			return m, nil
		}
		if m.config.Confirmations {
			m.confirmBox = h
			m.confirmAction = ConfirmRemoveArrows
			m.mode = ModeConfirm
			return m, nil
		}
		m.removeArrows(h)
	case "u":
		m.undo()
	case "U":
		m.redo()
	case "s", "o", "p", "g":
		m.fileOp = map[string]FileOperation{
			"s": FileOpSave, "o": FileOpOpen, "p": FileOpSavePNG, "g": FileOpSaveSVG,
		}[key]
		m.filename = m.buffer.filename
		m.mode = ModeFileInput
	case "y":
		if err := copySVG(canvas); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "SVG copied"
		}
	default:
		return m.handleNavigation(key, m.getMoveSpeed(key))
	}
	return m, nil
}

// recordAddBox records a new box as it stands, text included.
func (m *model) recordAddBox(h Handle) {
	m.pendingAdd = false
	if snap, ok := m.getCanvas().Snapshot(h); ok {
		m.recordAction(ActionAddBox, snap, nil)
	}
}

func (m *model) deleteBox(h Handle) {
	snap, ok := m.getCanvas().Snapshot(h)
	if !ok {
		return
	}
	m.getCanvas().DeleteBox(h)
	m.recordAction(ActionDeleteBox, nil, snap)
}

func (m *model) removeArrows(h Handle) {
	var data ArrowsData
	for _, a := range m.getCanvas().Arrows().Arrows(h) {
		data.Arrows = append(data.Arrows, recordOf(a))
	}
	if len(data.Arrows) == 0 {
		return
	}
	m.getCanvas().Arrows().RemoveAll(h)
	m.recordAction(ActionRemoveArrows, nil, data)
}

func (m model) handleMoveKey(key string) (tea.Model, tea.Cmd) {
	canvas := m.getCanvas()
	orig := m.originalBox
	switch key {
	case "enter":
		box, _ := canvas.GetBox(m.selectedBox)
		m.recordAction(ActionMoveBox,
			MoveBoxData{Handle: box.Handle, DeltaX: box.X - orig.X, DeltaY: box.Y - orig.Y},
			OriginalBoxState{Handle: orig.Handle, X: orig.X, Y: orig.Y, Width: orig.Width, Height: orig.Height})
		m.mode = ModeNormal
		m.selectedBox = Root
	case "esc":
		canvas.SetBoxPosition(orig.Handle, orig.X, orig.Y)
		m.mode = ModeNormal
		m.selectedBox = Root
	default:
		if dx, dy, ok := directionDelta(key); ok {
			speed := m.getMoveSpeed(key)
			canvas.MoveBox(m.selectedBox, dx*speed, dy*speed)
			m.cursorX += dx * speed
			m.cursorY += dy * speed
			m.ensureCursorInBounds()
		}
	}
	return m, nil
}

func (m model) handleResizeKey(key string) (tea.Model, tea.Cmd) {
	canvas := m.getCanvas()
	orig := m.originalBox
	switch key {
	case "enter":
		box, _ := canvas.GetBox(m.selectedBox)
		m.recordAction(ActionResizeBox,
			ResizeBoxData{Handle: box.Handle, DeltaWidth: box.Width - orig.Width, DeltaHeight: box.Height - orig.Height},
			OriginalBoxState{Handle: orig.Handle, X: orig.X, Y: orig.Y, Width: orig.Width, Height: orig.Height})
		m.mode = ModeNormal
		m.selectedBox = Root
	case "esc":
		canvas.SetBoxSize(orig.Handle, orig.Width, orig.Height)
		m.mode = ModeNormal
		m.selectedBox = Root
	default:
		if dx, dy, ok := directionDelta(key); ok {
			speed := m.getMoveSpeed(key)
			canvas.ResizeBox(m.selectedBox, dx*speed, dy*speed)
		}
	}
	return m, nil
}

func (m model) handleLinkKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a", "enter":
		to := m.boxUnderCursor()
		if to == Root || to == m.linkFrom {
			m.errorMessage = "pick another box"
			return m, nil
		}
		m.linkTo = to
		m.editText = ""
		m.mode = ModeName
	case "esc":
		m.linkFrom = Root
		m.mode = ModeNormal
	default:
		return m.handleNavigation(key, m.getMoveSpeed(key))
	}
	return m, nil
}

// handleTextKey edits m.editText (or m.filename) and commits on enter.
func (m model) handleTextKey(key string) (tea.Model, tea.Cmd) {
	target := &m.editText
	if m.mode == ModeFileInput {
		target = &m.filename
	}

	switch key {
	case "esc":
		if m.mode == ModeEdit && m.pendingAdd {
			m.recordAddBox(m.selectedBox)
		}
		m.mode = ModeNormal
		m.linkFrom, m.linkTo = Root, Root
		m.selectedBox = Root
		return m, nil
	case "enter":
		return m.commitText()
	case "backspace":
		if r := []rune(*target); len(r) > 0 {
			*target = string(r[:len(r)-1])
		}
	case "space":
		*target += " "
	default:
		if len([]rune(key)) == 1 {
			*target += key
		}
	}
	return m, nil
}

func (m model) commitText() (tea.Model, tea.Cmd) {
	canvas := m.getCanvas()
	switch m.mode {
	case ModeEdit:
		before := canvas.GetBoxText(m.selectedBox)
		canvas.SetBoxText(m.selectedBox, m.editText)
		if m.pendingAdd {
			m.recordAddBox(m.selectedBox)
		} else if before != m.editText {
			m.recordAction(ActionEditText,
				EditTextData{Handle: m.selectedBox, Before: before, After: m.editText}, nil)
		}
		m.selectedBox = Root
	case ModeName:
		created := canvas.Arrows().Connect([]Handle{m.linkFrom}, []Handle{m.linkTo}, ArrowConfig{Name: m.editText})
		var data ArrowsData
		for _, a := range created {
			data.Arrows = append(data.Arrows, recordOf(a))
		}
		m.recordAction(ActionAddArrow, data, nil)
		m.linkFrom, m.linkTo = Root, Root
	case ModeFileInput:
		return m.commitFile(false)
	}
	m.mode = ModeNormal
	return m, nil
}

func (m model) commitFile(overwrite bool) (tea.Model, tea.Cmd) {
	canvas := m.getCanvas()
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "filename required"
		return m, nil
	}

	ext := map[FileOperation]string{
		FileOpSave: ".txt", FileOpOpen: ".txt", FileOpSavePNG: ".png", FileOpSaveSVG: ".svg",
	}[m.fileOp]
	if filepath.Ext(name) == "" {
		name += ext
	}
	path := m.config.GetSavePath(name)

	if m.fileOp != FileOpOpen && !overwrite && m.config.Confirmations {
		if _, err := os.Stat(path); err == nil {
			m.filename = name
			m.confirmAction = ConfirmOverwriteFile
			m.mode = ModeConfirm
			return m, nil
		}
	}

	var err error
	switch m.fileOp {
	case FileOpSave:
		err = canvas.SaveToFile(path)
		if err == nil {
			m.buffer.filename = name
		}
	case FileOpOpen:
		err = canvas.LoadFromFile(path)
		if err == nil {
			m.buffer.filename = name
			m.buffer.undoStack = nil
			m.buffer.redoStack = nil
		}
	case FileOpSavePNG:
		err = canvas.ExportToPNG(path)
	case FileOpSaveSVG:
		err = writeSVGFile(canvas, path)
	}

	m.mode = ModeNormal
	if err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}
	m.successMessage = fmt.Sprintf("%s: %s", m.fileOpString(), path)
	return m, nil
}

func writeSVGFile(c *Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.ExportSVG(f)
}

func (m model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if key != "y" && key != "Y" {
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
		}
		return m, nil
	}

	switch m.confirmAction {
	case ConfirmQuit:
		return m, tea.Quit
	case ConfirmDeleteBox:
		m.deleteBox(m.confirmBox)
	case ConfirmRemoveArrows:
		m.removeArrows(m.confirmBox)
	case ConfirmOverwriteFile:
		return m.commitFile(true)
	}
	return m, nil
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	renderWidth := max(m.width, 1)
	renderHeight := max(m.height-1, 1)

	lines := m.getCanvas().Render(renderWidth, renderHeight, m.selectedBox)

	if m.cursorY >= 0 && m.cursorY < len(lines) {
		row := []rune(lines[m.cursorY])
		if m.cursorX >= 0 && m.cursorX < len(row) {
			row[m.cursorX] = '█'
			lines[m.cursorY] = string(row)
		}
	}

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	mode := m.modeString()
	if m.zPanMode && m.mode == ModeNormal {
		mode = "PAN"
	}
	status := modeStyle.Render(mode) + " "

	switch m.mode {
	case ModeEdit:
		status += fmt.Sprintf("Box text: %s█ | Enter=done, Esc=cancel", m.editText)
	case ModeName:
		status += fmt.Sprintf("Arrow label: %s█ | Enter=create, Esc=cancel", m.editText)
	case ModeLink:
		status += "Move to the target box, a/Enter=pick, Esc=cancel"
	case ModeMove, ModeResize:
		status += "hjkl/arrows, Enter=finish, Esc=cancel"
	case ModeFileInput:
		status += fmt.Sprintf("%s filename: %s█ | Enter=confirm, Esc=cancel", m.fileOpString(), m.filename)
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmQuit:
			status += "Quit? (y/n)"
		case ConfirmDeleteBox:
			status += "Delete this box and its arrows? (y/n)"
		case ConfirmRemoveArrows:
			status += "Remove every arrow on this box? (y/n)"
		case ConfirmOverwriteFile:
			status += fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
	default:
		canvas := m.getCanvas()
		status += fmt.Sprintf("Cursor: (%d,%d) | Boxes: %d | Arrows: %d",
			m.cursorX, m.cursorY, len(canvas.Boxes()), len(canvas.Arrows().All()))
		if m.successMessage == "" && m.errorMessage == "" {
			status += " | ? for help | q to quit"
		}
	}

	if m.successMessage != "" {
		status += " | " + successStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	return status
}

func (m model) fileOpString() string {
	switch m.fileOp {
	case FileOpSave:
		return "Save"
	case FileOpOpen:
		return "Open"
	case FileOpSavePNG:
		return "Export PNG"
	case FileOpSaveSVG:
		return "Export SVG"
	default:
		return ""
	}
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeEdit:
		return "EDIT"
	case ModeMove:
		return "MOVE"
	case ModeResize:
		return "RESIZE"
	case ModeLink:
		return "LINK"
	case ModeName:
		return "LABEL"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"Arrows Help",
		"===========",
		"",
		"Navigation:",
		"  h/←/j/↓/k/↑/l/→  Move cursor",
		"  Shift+h/j/k/l    Move 2x faster",
		"  z                Toggle pan mode (cursor keys pan the view)",
		"",
		"Boxes:",
		"  b                New box at cursor",
		"  e                Edit text of box under cursor",
		"  m                Move box under cursor",
		"  r                Resize box under cursor",
		"  d                Delete box under cursor (and its arrows)",
		"",
		"Arrows:",
		"  a                Start an arrow at the box under cursor,",
		"                   then a/Enter on the target box and type a label",
		"  x                Remove every arrow on the box under cursor",
		"",
		"Files:",
		"  s / o            Save / open",
		"  p / g            Export PNG / SVG",
		"  y                Copy SVG to clipboard",
		"",
		"General:",
		"  u / U            Undo / redo",
		"  ?                Toggle this help",
		"  q / Ctrl+C       Quit",
	}
	return helpStyle.Render(strings.Join(helpLines, "\n"))
}
