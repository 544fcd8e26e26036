package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (g *Grid) Cursor(id TableID) cellPos {
	if t := g.table(id); t != nil {
		return t.cursor
	}
	return cellPos{}
}

func (g *Grid) SetCursorCol(id TableID, col int) {
	t := g.table(id)
	if t == nil {
		return
	}
	t.cursor.Col = clampInt(col, 0, t.layout.Len()-1)
}

// MoveCursor steps the cursor. A plain move collapses the selection onto
// the new cell; an extending move keeps the anchor and moves the focus.
func (g *Grid) MoveCursor(id TableID, dRow, dCol int, extend bool) {
	t := g.table(id)
	if t == nil {
		return
	}
	from := t.cursor
	if extend && t.sel.hasRange {
		from = t.sel.focus
	}
	row := clampInt(from.Row+dRow, 0, len(t.display)-1)
	col := clampInt(from.Col+dCol, 0, t.layout.Len()-1)
	if len(t.display) == 0 {
		t.cursor = cellPos{Col: col}
		return
	}
	g.PressCell(id, row, col, extend)
	g.ReleaseSelection(id)
}

// EnsureVisible scrolls a table so its cursor lies inside a viewport of
// rows body lines and width cells.
func (g *Grid) EnsureVisible(id TableID, rows, width int) {
	t := g.table(id)
	if t == nil {
		return
	}
	if rows > 0 {
		if t.cursor.Row < t.rowOffset {
			t.rowOffset = t.cursor.Row
		} else if t.cursor.Row >= t.rowOffset+rows {
			t.rowOffset = t.cursor.Row - rows + 1
		}
	}
	if t.cursor.Col < t.colOffset {
		t.colOffset = t.cursor.Col
		return
	}
	for t.colOffset < t.cursor.Col {
		used := 0
		for i := t.colOffset; i <= t.cursor.Col; i++ {
			used += cellsFor(g.EffectiveWidth(id, i)) + 1
		}
		if used <= width {
			break
		}
		t.colOffset++
	}
}

// ScrollRows moves the viewport without moving the cursor.
func (g *Grid) ScrollRows(id TableID, delta, rows int) {
	t := g.table(id)
	if t == nil {
		return
	}
	t.rowOffset = clampInt(t.rowOffset+delta, 0, len(t.display)-rows)
}

func (g *Grid) ScrollCols(id TableID, delta int) {
	t := g.table(id)
	if t == nil {
		return
	}
	t.colOffset = clampInt(t.colOffset+delta, 0, t.layout.Len()-1)
}

func (m *model) bodyRows() int {
	for _, p := range m.grid.panes(m.width, m.height) {
		if p.table == m.focus {
			return p.bodyRows
		}
	}
	return 1
}

func (m *model) handleNavigation(msg tea.KeyMsg) bool {
	rows := m.bodyRows()
	switch {
	case key.Matches(msg, keys.Up):
		m.grid.MoveCursor(m.focus, -1, 0, false)
	case key.Matches(msg, keys.Down):
		m.grid.MoveCursor(m.focus, 1, 0, false)
	case key.Matches(msg, keys.Left):
		m.grid.MoveCursor(m.focus, 0, -1, false)
	case key.Matches(msg, keys.Right):
		m.grid.MoveCursor(m.focus, 0, 1, false)
	case key.Matches(msg, keys.ExtendUp):
		m.grid.MoveCursor(m.focus, -1, 0, true)
	case key.Matches(msg, keys.ExtendDown):
		m.grid.MoveCursor(m.focus, 1, 0, true)
	case key.Matches(msg, keys.ExtendLeft):
		m.grid.MoveCursor(m.focus, 0, -1, true)
	case key.Matches(msg, keys.ExtendRight):
		m.grid.MoveCursor(m.focus, 0, 1, true)
	case key.Matches(msg, keys.PageUp):
		m.grid.MoveCursor(m.focus, -rows, 0, false)
	case key.Matches(msg, keys.PageDown):
		m.grid.MoveCursor(m.focus, rows, 0, false)
	default:
		return false
	}
	m.grid.EnsureVisible(m.focus, rows, m.width)
	return true
}

func (m *model) switchTable() {
	ids := m.grid.Tables()
	for i, id := range ids {
		if id == m.focus {
			m.focus = ids[(i+1)%len(ids)]
			return
		}
	}
	if len(ids) > 0 {
		m.focus = ids[0]
	}
}
