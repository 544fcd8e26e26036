package main

type Action struct {
	Type    ActionType
	Data    any
	Inverse any
}

type ReorderData struct {
	Order []string
}

type ResizeData struct {
	Column string
	Width  int
	Unset  bool // restore to "no stored width"
}

type ResetLayoutData struct {
	Order  []string
	Widths map[string]int
}

func (g *Grid) recordAction(id TableID, actionType ActionType, data, inverse any) {
	t := g.table(id)
	if t == nil {
		return
	}
	t.undoStack = append(t.undoStack, Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	})
	t.redoStack = t.redoStack[:0]
}

// Undo reverts the last layout change of a table.
func (g *Grid) Undo(id TableID) bool {
	t := g.table(id)
	if t == nil || len(t.undoStack) == 0 {
		return false
	}
	lastIndex := len(t.undoStack) - 1
	action := t.undoStack[lastIndex]
	t.undoStack = t.undoStack[:lastIndex]

	g.applyLayout(t, action.Type, action.Inverse)
	t.redoStack = append(t.redoStack, action)
	return true
}

func (g *Grid) Redo(id TableID) bool {
	t := g.table(id)
	if t == nil || len(t.redoStack) == 0 {
		return false
	}
	lastIndex := len(t.redoStack) - 1
	action := t.redoStack[lastIndex]
	t.redoStack = t.redoStack[:lastIndex]

	g.applyLayout(t, action.Type, action.Data)
	t.undoStack = append(t.undoStack, action)
	return true
}

func (g *Grid) applyLayout(t *tableState, actionType ActionType, payload any) {
	switch actionType {
	case ActionReorder:
		data := payload.(ReorderData)
		t.layout.SetOrder(data.Order)
	case ActionResize:
		data := payload.(ResizeData)
		if data.Unset {
			t.layout.ClearWidth(data.Column)
		} else {
			t.layout.SetWidthOf(data.Column, data.Width)
		}
	case ActionResetLayout:
		data := payload.(ResetLayoutData)
		if len(data.Widths) == 0 {
			t.layout.Reset()
		}
		t.layout.SetOrder(data.Order)
		for name, px := range data.Widths {
			t.layout.SetWidthOf(name, px)
		}
	}
	g.render(t.spec.ID)
}
