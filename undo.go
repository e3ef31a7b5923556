package main

func (m *model) undo() {
	buf := m.buffer
	if buf == nil || len(buf.undoStack) == 0 {
		return
	}

	lastIndex := len(buf.undoStack) - 1
	action := buf.undoStack[lastIndex]
	buf.undoStack = buf.undoStack[:lastIndex]

	switch action.Type {
	case ActionAddBox:
		data := action.Data.(BoxSnapshot)
		m.getCanvas().DeleteBox(data.Box.Handle)
	case ActionDeleteBox:
		data := action.Inverse.(BoxSnapshot)
		m.getCanvas().RestoreBox(data)
	case ActionResizeBox, ActionMoveBox:
		data := action.Inverse.(OriginalBoxState)
		m.getCanvas().SetBoxPosition(data.Handle, data.X, data.Y)
		m.getCanvas().SetBoxSize(data.Handle, data.Width, data.Height)
	case ActionAddArrow:
		data := action.Data.(ArrowsData)
		m.getCanvas().RemoveArrows(data.Arrows)
	case ActionRemoveArrows:
		data := action.Inverse.(ArrowsData)
		m.getCanvas().RestoreArrows(data.Arrows)
	case ActionEditText:
		data := action.Data.(EditTextData)
		m.getCanvas().SetBoxText(data.Handle, data.Before)
	}

	buf.redoStack = append(buf.redoStack, action)
}

func (m *model) redo() {
	buf := m.buffer
	if buf == nil || len(buf.redoStack) == 0 {
		return
	}

	lastIndex := len(buf.redoStack) - 1
	action := buf.redoStack[lastIndex]
	buf.redoStack = buf.redoStack[:lastIndex]

	switch action.Type {
	case ActionAddBox:
		data := action.Data.(BoxSnapshot)
		m.getCanvas().RestoreBox(data)
	case ActionDeleteBox:
		data := action.Inverse.(BoxSnapshot)
		m.getCanvas().DeleteBox(data.Box.Handle)
	case ActionResizeBox:
		data := action.Data.(ResizeBoxData)
		m.getCanvas().ResizeBox(data.Handle, data.DeltaWidth, data.DeltaHeight)
	case ActionMoveBox:
		data := action.Data.(MoveBoxData)
		m.getCanvas().MoveBox(data.Handle, data.DeltaX, data.DeltaY)
	case ActionAddArrow:
		data := action.Data.(ArrowsData)
		m.getCanvas().RestoreArrows(data.Arrows)
	case ActionRemoveArrows:
		data := action.Inverse.(ArrowsData)
		m.getCanvas().RemoveArrows(data.Arrows)
	case ActionEditText:
		data := action.Data.(EditTextData)
		m.getCanvas().SetBoxText(data.Handle, data.After)
	}

	buf.undoStack = append(buf.undoStack, action)
}
