package main

type Buffer struct {
	canvas    *Canvas
	undoStack []Action
	redoStack []Action
	filename  string
}

type model struct {
	width          int
	height         int
	cursorX        int
	cursorY        int
	zPanMode       bool
	buffer         *Buffer
	mode           Mode
	help           bool
	selectedBox    Handle
	linkFrom       Handle
	linkTo         Handle
	editText       string
	filename       string
	fileOp         FileOperation
	confirmAction  ConfirmAction
	confirmBox     Handle
	originalBox    Box
	pendingAdd     bool
	errorMessage   string
	successMessage string
	config         *Config
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

// BoxSnapshot is a box plus the arrows that touched it, enough to put a
// deleted box back the way it was.
type BoxSnapshot struct {
	Box    Box
	Arrows []ArrowRecord
}

// ArrowRecord is the persistent part of an arrow.
type ArrowRecord struct {
	From   Handle
	To     Handle
	Config ArrowConfig
}

func recordOf(a *Arrow) ArrowRecord {
	return ArrowRecord{From: a.From, To: a.To, Config: a.Config}
}

type MoveBoxData struct {
	Handle Handle
	DeltaX int
	DeltaY int
}

type ResizeBoxData struct {
	Handle      Handle
	DeltaWidth  int
	DeltaHeight int
}

type OriginalBoxState struct {
	Handle Handle
	X      int
	Y      int
	Width  int
	Height int
}

type ArrowsData struct {
	Arrows []ArrowRecord
}

type EditTextData struct {
	Handle Handle
	Before string
	After  string
}
