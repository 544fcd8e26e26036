package main

import (
	"log/slog"
	"strings"
	"time"
)

// selectionRange is the spreadsheet-style selection of one table. Positions
// are live visual indices into the rendered cells, so the range follows the
// current column order without extra bookkeeping.
type selectionRange struct {
	anchor     cellPos
	focus      cellPos
	hasAnchor  bool
	hasRange   bool
	selecting  bool
	text       string
	lastActive time.Time
}

type rangeBounds struct {
	R1, R2, C1, C2 int
}

func (s selectionRange) bounds() rangeBounds {
	return rangeBounds{
		R1: min(s.anchor.Row, s.focus.Row),
		R2: max(s.anchor.Row, s.focus.Row),
		C1: min(s.anchor.Col, s.focus.Col),
		C2: max(s.anchor.Col, s.focus.Col),
	}
}

func (b rangeBounds) contains(row, col int) bool {
	return row >= b.R1 && row <= b.R2 && col >= b.C1 && col <= b.C2
}

type cellMark int

const (
	markNone cellMark = iota
	markInRange
	markActive
)

func (g *Grid) validCell(t *tableState, row, col int) bool {
	return row >= 0 && row < len(t.display) && col >= 0 && col < t.layout.Len()
}

// PressCell starts a selection at (row, col). With extend set and an
// existing anchor, only the focus moves.
func (g *Grid) PressCell(id TableID, row, col int, extend bool) bool {
	t := g.table(id)
	if t == nil || !g.validCell(t, row, col) {
		return false
	}
	pos := cellPos{Row: row, Col: col}
	if !extend || !t.sel.hasAnchor {
		t.sel.anchor = pos
		t.sel.hasAnchor = true
	}
	t.sel.focus = pos
	t.sel.selecting = true
	g.applyRange(t)
	return true
}

// HoverCell moves the focus while a selection drag is in progress.
func (g *Grid) HoverCell(id TableID, row, col int) bool {
	t := g.table(id)
	if t == nil || !t.sel.selecting || !g.validCell(t, row, col) {
		return false
	}
	pos := cellPos{Row: row, Col: col}
	if pos == t.sel.focus {
		return false
	}
	t.sel.focus = pos
	g.applyRange(t)
	return true
}

// ReleaseSelection ends the drag; the rectangle stays.
func (g *Grid) ReleaseSelection(id TableID) {
	if t := g.table(id); t != nil {
		t.sel.selecting = false
	}
}

func (g *Grid) ReleaseAllSelections() {
	for _, t := range g.tables {
		t.sel.selecting = false
	}
}

func (g *Grid) applyRange(t *tableState) {
	t.sel.hasRange = true
	t.sel.text = serializeRange(t.display, t.sel.bounds())
	t.sel.lastActive = g.now()
	t.cursor = t.sel.focus
}

func (g *Grid) Selecting(id TableID) bool {
	t := g.table(id)
	return t != nil && t.sel.selecting
}

func (g *Grid) SelectionBounds(id TableID) (rangeBounds, bool) {
	t := g.table(id)
	if t == nil || !t.sel.hasRange {
		return rangeBounds{}, false
	}
	return t.sel.bounds(), true
}

func (g *Grid) CellMark(id TableID, row, col int) cellMark {
	t := g.table(id)
	if t == nil || !t.sel.hasRange {
		return markNone
	}
	if t.sel.focus.Row == row && t.sel.focus.Col == col {
		return markActive
	}
	if t.sel.bounds().contains(row, col) {
		return markInRange
	}
	return markNone
}

func (g *Grid) SelectionText(id TableID) string {
	if t := g.table(id); t != nil {
		return t.sel.text
	}
	return ""
}

// FormulaText is the trimmed text of the top-left cell of the range.
func (g *Grid) FormulaText(id TableID) string {
	t := g.table(id)
	if t == nil || !t.sel.hasRange {
		return ""
	}
	b := t.sel.bounds()
	if b.R1 >= len(t.display) || b.C1 >= len(t.display[b.R1]) {
		return ""
	}
	return strings.TrimSpace(t.display[b.R1][b.C1])
}

// LastActiveTable returns the table whose selection changed most recently.
// Ties go to the table listed first.
func (g *Grid) LastActiveTable() (TableID, bool) {
	var (
		best  TableID
		found bool
		when  time.Time
	)
	for _, id := range g.order {
		t := g.tables[id]
		if t.sel.lastActive.IsZero() {
			continue
		}
		if !found || t.sel.lastActive.After(when) {
			best, when, found = id, t.sel.lastActive, true
		}
	}
	return best, found
}

// CopySelection writes the most recently active table's range to the
// clipboard.
func (g *Grid) CopySelection() (string, error) {
	id, ok := g.LastActiveTable()
	if !ok {
		return "", ErrNothingSelected
	}
	text := g.tables[id].sel.text
	if text == "" {
		return "", ErrNothingSelected
	}
	if err := g.clip(text); err != nil {
		return "", err
	}
	g.log.Info("selection copied", slog.String("table", string(id)), slog.Int("bytes", len(text)))
	return text, nil
}

// serializeRange builds the TSV text of a rectangle from rendered cells.
func serializeRange(display [][]string, b rangeBounds) string {
	lines := make([]string, 0, b.R2-b.R1+1)
	for r := b.R1; r <= b.R2; r++ {
		var row []string
		if r < len(display) {
			row = display[r]
		}
		cells := make([]string, 0, b.C2-b.C1+1)
		for c := b.C1; c <= b.C2; c++ {
			v := ""
			if c < len(row) {
				v = row[c]
			}
			cells = append(cells, collapseSpace(v))
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
