package main

import (
	"log/slog"
	"time"

	"github.com/mattn/go-runewidth"
)

type Record map[string]any

type cellPos struct {
	Row, Col int
}

// tableState is everything one logical table owns.
type tableState struct {
	spec          tableSpec
	layout        *columnLayout
	proj          projector
	rows          []Record
	total         int
	display       [][]string
	sel           selectionRange
	manuallySized bool
	undoStack     []Action
	redoStack     []Action
	cursor        cellPos
	rowOffset     int
	colOffset     int
}

// Grid is the session state of the grid controller: one tableState per
// table id plus the single drag session and gesture scope shared by all.
type Grid struct {
	tables    map[TableID]*tableState
	order     []TableID
	log       *slog.Logger
	drag      dragSession
	gestures  gestureScope
	clip      func(string) error
	now       func() time.Time
	truncated bool
}

func NewGrid(specs []tableSpec, store Store, log *slog.Logger) *Grid {
	g := &Grid{
		tables: make(map[TableID]*tableState, len(specs)),
		log:    log,
		clip:   writeClipboardText,
		now:    time.Now,
	}
	for _, spec := range specs {
		t := &tableState{
			spec:   spec,
			layout: newColumnLayout(spec, store, log),
			proj:   newProjector(spec),
		}
		g.tables[spec.ID] = t
		g.order = append(g.order, spec.ID)
		g.render(spec.ID)
	}
	return g
}

func (g *Grid) table(id TableID) *tableState {
	return g.tables[id]
}

func (g *Grid) Tables() []TableID {
	return append([]TableID(nil), g.order...)
}

func (g *Grid) Title(id TableID) string {
	if t := g.table(id); t != nil {
		return t.spec.Title
	}
	return ""
}

func (g *Grid) ColumnOrder(id TableID) []string {
	t := g.table(id)
	if t == nil {
		return nil
	}
	return t.layout.Order()
}

// SetColumnOrder applies a full order; a non-permutation falls back to the
// canonical order. Either way the table is re-rendered.
func (g *Grid) SetColumnOrder(id TableID, order []string) bool {
	t := g.table(id)
	if t == nil {
		return false
	}
	ok := t.layout.SetOrder(order)
	g.render(id)
	return ok
}

func (g *Grid) ColumnWidth(id TableID, index int) (int, bool) {
	t := g.table(id)
	if t == nil {
		return 0, false
	}
	return t.layout.Width(index)
}

func (g *Grid) SetColumnWidth(id TableID, index, px int) int {
	t := g.table(id)
	if t == nil {
		return 0
	}
	return t.layout.SetWidth(index, px)
}

// EffectiveWidth is the live rendered width of the column at index: the
// stored width when there is one, otherwise a content-fitted width.
func (g *Grid) EffectiveWidth(id TableID, index int) int {
	t := g.table(id)
	if t == nil {
		return 0
	}
	if px, ok := t.layout.Width(index); ok {
		return px
	}
	return t.autoWidth(index)
}

func (t *tableState) autoWidth(index int) int {
	name, ok := t.layout.Name(index)
	if !ok {
		return 0
	}
	cells := runewidth.StringWidth(name)
	for _, row := range t.display {
		if index < len(row) {
			cells = max(cells, runewidth.StringWidth(row[index]))
		}
	}
	return min(maxAutoWidth, max(minColumnWidth, (cells+2)*pxPerCell))
}

func (g *Grid) ManuallySized(id TableID) bool {
	t := g.table(id)
	return t != nil && t.manuallySized
}

// ReorderColumn moves a column with array-move semantics, persists the new
// order and re-renders every held row.
func (g *Grid) ReorderColumn(id TableID, from, to int) bool {
	t := g.table(id)
	if t == nil {
		return false
	}
	old := t.layout.Order()
	if !t.layout.Move(from, to) {
		return false
	}
	next := t.layout.Order()
	g.recordAction(id, ActionReorder, ReorderData{Order: next}, ReorderData{Order: old})
	g.log.Info("column moved",
		slog.String("table", string(id)),
		slog.Int("from", from),
		slog.Int("to", to),
		slog.String("column", old[from]),
	)
	g.render(id)
	return true
}

// ResetLayout restores the canonical order and drops custom widths.
func (g *Grid) ResetLayout(id TableID) {
	t := g.table(id)
	if t == nil {
		return
	}
	inverse := ResetLayoutData{Order: t.layout.Order(), Widths: t.layout.Widths()}
	t.layout.Reset()
	t.manuallySized = false
	g.recordAction(id, ActionResetLayout, ResetLayoutData{Order: t.layout.Order()}, inverse)
	g.render(id)
}

func (g *Grid) Rows(id TableID) []Record {
	if t := g.table(id); t != nil {
		return t.rows
	}
	return nil
}

func (g *Grid) Total(id TableID) int {
	if t := g.table(id); t != nil {
		return t.total
	}
	return 0
}

// Display returns the rendered (formatted) cells of a table.
func (g *Grid) Display(id TableID) [][]string {
	if t := g.table(id); t != nil {
		return t.display
	}
	return nil
}

func (g *Grid) RightAligned(id TableID, index int) bool {
	t := g.table(id)
	if t == nil {
		return false
	}
	name, ok := t.layout.Name(index)
	return ok && t.proj.rightAlign[name]
}

// SetResult replaces a table's rows and re-renders it from scratch.
func (g *Grid) SetResult(id TableID, res QueryResult) {
	t := g.table(id)
	if t == nil {
		return
	}
	t.rows = res.Rows
	t.total = res.Count
	t.sel = selectionRange{}
	t.cursor = cellPos{}
	t.rowOffset = 0
	g.render(id)
}

func (g *Grid) HeldRows() int {
	n := 0
	for _, t := range g.tables {
		n += len(t.rows)
	}
	return n
}

func (g *Grid) SetTruncated(v bool) {
	g.truncated = v
}

func (g *Grid) Truncated() bool {
	return g.truncated
}

// render projects the held rows through the current column order. It is a
// full rebuild; a retained selection is re-read from the new cells.
func (g *Grid) render(id TableID) {
	t := g.table(id)
	if t == nil {
		return
	}
	t.display = t.proj.project(t.rows, t.layout.Order())
	if t.sel.hasRange {
		t.sel.text = serializeRange(t.display, t.sel.bounds())
	}
	g.log.Debug("table rendered",
		slog.String("table", string(id)),
		slog.Int("rows", len(t.display)),
		slog.Int("columns", t.layout.Len()),
	)
}
