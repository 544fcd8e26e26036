package main

import "log/slog"

type resizeGesture struct {
	g          *Grid
	table      TableID
	column     string
	startX     int // pixel units
	startWidth int
	oldWidth   int
	hadWidth   bool
	lastWidth  int
}

// BeginResize grabs the resize handle of the column currently at index.
// x is the pointer column in terminal cells.
func (g *Grid) BeginResize(id TableID, index, x int) bool {
	t := g.table(id)
	if t == nil {
		return false
	}
	name, ok := t.layout.Name(index)
	if !ok {
		return false
	}
	g.gestures.abort()
	start := g.EffectiveWidth(id, index)
	old, had := t.layout.WidthOf(name)
	if !had {
		t.layout.SetWidthOf(name, start)
	}
	g.gestures.acquire(&resizeGesture{
		g:          g,
		table:      id,
		column:     name,
		startX:     x * pxPerCell,
		startWidth: start,
		oldWidth:   old,
		hadWidth:   had,
		lastWidth:  start,
	})
	return true
}

func (r *resizeGesture) move(p pointer) {
	t := r.g.table(r.table)
	delta := p.X*pxPerCell - r.startX
	r.lastWidth = t.layout.SetWidthOf(r.column, max(minColumnWidth, r.startWidth+delta))
	t.manuallySized = true
}

func (r *resizeGesture) finish(pointer) {
	r.end()
}

func (r *resizeGesture) cancel() {
	r.end()
}

func (r *resizeGesture) end() {
	if r.hadWidth && r.lastWidth == r.oldWidth {
		return
	}
	r.g.recordAction(r.table, ActionResize,
		ResizeData{Column: r.column, Width: r.lastWidth},
		ResizeData{Column: r.column, Width: r.oldWidth, Unset: !r.hadWidth},
	)
	r.g.log.Info("column resized",
		slog.String("table", string(r.table)),
		slog.String("column", r.column),
		slog.Int("width", r.lastWidth),
	)
}

// ResizeColumnBy is the keyboard form of a resize drag.
func (g *Grid) ResizeColumnBy(id TableID, index, delta int) (int, bool) {
	t := g.table(id)
	if t == nil {
		return 0, false
	}
	name, ok := t.layout.Name(index)
	if !ok {
		return 0, false
	}
	old, had := t.layout.WidthOf(name)
	start := g.EffectiveWidth(id, index)
	width := t.layout.SetWidthOf(name, start+delta)
	t.manuallySized = true
	if had && width == old {
		return width, true
	}
	g.recordAction(id, ActionResize,
		ResizeData{Column: name, Width: width},
		ResizeData{Column: name, Width: old, Unset: !had},
	)
	return width, true
}
