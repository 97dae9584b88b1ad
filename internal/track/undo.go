package track

const maxUndoStack = 50

// undoActionType represents the type of action that can be undone
type undoActionType int

const (
	undoEdit undoActionType = iota
	undoAppend
	undoRemove
)

// undoState captures enough to reverse one course change.
type undoState struct {
	Type  undoActionType
	Index int

	// For edit and remove undo: the piece state before the change
	PieceID int
	State   pieceState
}

func (c *Course) pushUndo(state undoState) {
	// Cap stack size
	if len(c.undoStack) >= maxUndoStack {
		c.undoStack = c.undoStack[1:]
	}
	c.undoStack = append(c.undoStack, state)
}

// Undo reverts the most recent Edit, Append or Remove. It reports false
// when there is nothing to undo.
func (c *Course) Undo() bool {
	c.mu.Lock()
	if len(c.undoStack) == 0 {
		c.mu.Unlock()
		return false
	}
	// Pop last state
	state := c.undoStack[len(c.undoStack)-1]
	c.undoStack = c.undoStack[:len(c.undoStack)-1]

	regenerated := -1
	switch state.Type {
	case undoEdit:
		p := c.pieces[state.Index]
		p.pieceState = state.State
		c.regenerate(state.Index)
		regenerated = state.Index

	case undoAppend:
		c.removeAt(state.Index)

	case undoRemove:
		p := &Piece{id: state.PieceID, cfg: c.cfg, pieceState: state.State}
		p.generate()
		c.insertAt(state.Index, p)
		regenerated = state.Index
	}
	c.mu.Unlock()

	tracer().P("undo", state.Type).Infof("restored piece %d", state.Index)
	if regenerated >= 0 {
		c.OnRegenerate.Invoke(regenerated)
	}
	return true
}

// UndoDepth returns the number of changes that can be undone.
func (c *Course) UndoDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.undoStack)
}
