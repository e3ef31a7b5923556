package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeResize
	ModeEdit
	ModeLink
	ModeName
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpSavePNG
	FileOpSaveSVG
)

type ConfirmAction int

const (
	ConfirmDeleteBox ConfirmAction = iota
	ConfirmRemoveArrows
	ConfirmQuit
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionAddBox ActionType = iota
	ActionDeleteBox
	ActionMoveBox
	ActionResizeBox
	ActionAddArrow
	ActionRemoveArrows
	ActionEditText
)

const (
	minBoxWidth  = 8
	minBoxHeight = 3
)
