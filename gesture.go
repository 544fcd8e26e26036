package main

type hitKind int

const (
	hitNone hitKind = iota
	hitHeader
	hitResizeHandle
	hitCell
)

// hitTarget is what lies under the pointer in the last rendered frame.
type hitTarget struct {
	Kind  hitKind
	Table TableID
	Row   int
	Col   int // live visual column index
}

// pointer is one pointer event; X and Y are terminal cells.
type pointer struct {
	X, Y int
	Hit  hitTarget
}

// gesture is one press-move-release interaction.
type gesture interface {
	move(p pointer)
	finish(p pointer)
	cancel()
}

// gestureScope holds at most one gesture. Acquiring a new one cancels the
// previous; release and abort always clear the slot before calling out.
type gestureScope struct {
	active gesture
}

func (s *gestureScope) acquire(g gesture) {
	s.abort()
	s.active = g
}

func (s *gestureScope) busy() bool {
	return s.active != nil
}

func (s *gestureScope) move(p pointer) bool {
	if s.active == nil {
		return false
	}
	s.active.move(p)
	return true
}

func (s *gestureScope) release(p pointer) bool {
	g := s.active
	if g == nil {
		return false
	}
	s.active = nil
	g.finish(p)
	return true
}

func (s *gestureScope) abort() {
	g := s.active
	if g == nil {
		return
	}
	s.active = nil
	g.cancel()
}

func (g *Grid) PointerMove(p pointer) bool {
	return g.gestures.move(p)
}

func (g *Grid) PointerUp(p pointer) bool {
	released := g.gestures.release(p)
	g.ReleaseAllSelections()
	return released
}

// AbortGesture ends whatever gesture is running without a drop.
func (g *Grid) AbortGesture() {
	g.gestures.abort()
}

func (g *Grid) GestureActive() bool {
	return g.gestures.busy()
}

type selectGesture struct {
	g     *Grid
	table TableID
}

// BeginSelect presses a body cell and tracks the drag until release.
func (g *Grid) BeginSelect(id TableID, row, col int, extend bool) bool {
	g.gestures.abort()
	if !g.PressCell(id, row, col, extend) {
		return false
	}
	g.gestures.acquire(&selectGesture{g: g, table: id})
	return true
}

func (s *selectGesture) move(p pointer) {
	if p.Hit.Kind != hitCell || p.Hit.Table != s.table {
		return
	}
	s.g.HoverCell(s.table, p.Hit.Row, p.Hit.Col)
}

func (s *selectGesture) finish(pointer) {
	s.g.ReleaseSelection(s.table)
}

func (s *selectGesture) cancel() {
	s.g.ReleaseSelection(s.table)
}
