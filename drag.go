package main

import "log/slog"

// dragSession is the single header drag in progress, if any.
type dragSession struct {
	active bool
	table  TableID
	source int
	over   int
}

type dragGesture struct {
	g *Grid
}

// BeginDrag picks up the header at index.
func (g *Grid) BeginDrag(id TableID, index int) bool {
	t := g.table(id)
	if t == nil || index < 0 || index >= t.layout.Len() {
		return false
	}
	g.gestures.abort()
	g.drag = dragSession{active: true, table: id, source: index, over: -1}
	g.gestures.acquire(&dragGesture{g: g})
	g.log.Debug("drag start", slog.String("table", string(id)), slog.Int("column", index))
	return true
}

// DragOver marks a header as the drop candidate; headers of other tables
// and the source itself are never candidates.
func (g *Grid) DragOver(id TableID, index int) {
	if !g.drag.active {
		return
	}
	if id == g.drag.table && index != g.drag.source {
		g.drag.over = index
		return
	}
	g.drag.over = -1
}

// DropColumn ends the drag session. The move happens only for a different
// header of the same table.
func (g *Grid) DropColumn(id TableID, target int) bool {
	s := g.drag
	g.drag = dragSession{}
	if !s.active || id != s.table || target == s.source {
		return false
	}
	return g.ReorderColumn(id, s.source, target)
}

func (g *Grid) CancelDrag() {
	g.drag = dragSession{}
}

// DragState reports the source and hovered header of an active drag on id.
func (g *Grid) DragState(id TableID) (source, over int, ok bool) {
	if !g.drag.active || g.drag.table != id {
		return -1, -1, false
	}
	return g.drag.source, g.drag.over, true
}

// MoveColumnBy shifts the column at index one way or the other through the
// same array-move path as a drop.
func (g *Grid) MoveColumnBy(id TableID, index, delta int) (int, bool) {
	to := index + delta
	if !g.ReorderColumn(id, index, to) {
		return index, false
	}
	return to, true
}

func (d *dragGesture) move(p pointer) {
	if p.Hit.Kind == hitHeader {
		d.g.DragOver(p.Hit.Table, p.Hit.Col)
		return
	}
	d.g.drag.over = -1
}

func (d *dragGesture) finish(p pointer) {
	if p.Hit.Kind != hitHeader {
		d.g.CancelDrag()
		return
	}
	d.g.DropColumn(p.Hit.Table, p.Hit.Col)
}

func (d *dragGesture) cancel() {
	d.g.CancelDrag()
}
