package main

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestResizeDragWritesWidthOnEveryMove(t *testing.T) {
	store := newMemoryStore()
	g, _ := newTestGrid(t, store)

	assert.Assert(t, g.BeginResize(TableStandard, 0, 10))
	px, ok := g.ColumnWidth(TableStandard, 0)
	assert.Assert(t, ok)
	assert.Equal(t, px, minColumnWidth)

	g.PointerMove(pointer{X: 15})
	px, _ = g.ColumnWidth(TableStandard, 0)
	assert.Equal(t, px, minColumnWidth+5*pxPerCell)
	assert.Assert(t, g.ManuallySized(TableStandard))

	raw, _, _ := store.Get("colWidthDf1")
	assert.Equal(t, raw, `{"A":100}`)

	g.PointerMove(pointer{X: 0})
	px, _ = g.ColumnWidth(TableStandard, 0)
	assert.Equal(t, px, minColumnWidth)

	g.PointerMove(pointer{X: 20})
	g.PointerUp(pointer{X: 20})
	px, _ = g.ColumnWidth(TableStandard, 0)
	assert.Equal(t, px, minColumnWidth+10*pxPerCell)
	assert.Assert(t, !g.GestureActive())
}

func TestResizeUsesLiveIndexAfterReorder(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.ReorderColumn(TableStandard, 2, 0)

	g.BeginResize(TableStandard, 0, 0)
	g.PointerMove(pointer{X: 4})
	g.PointerUp(pointer{X: 4})

	px, ok := g.ColumnWidth(TableStandard, 0)
	assert.Assert(t, ok)
	assert.Equal(t, px, minColumnWidth+4*pxPerCell)
	assert.DeepEqual(t, g.table(TableStandard).layout.Widths(), map[string]int{"C": px})
}

func TestResizeAbortKeepsLastWidth(t *testing.T) {
	g, _ := newTestGrid(t, nil)

	g.BeginResize(TableStandard, 1, 0)
	g.PointerMove(pointer{X: 3})
	g.AbortGesture()

	px, _ := g.ColumnWidth(TableStandard, 1)
	assert.Equal(t, px, minColumnWidth+3*pxPerCell)
	assert.Assert(t, !g.GestureActive())
}

func TestResizeColumnBy(t *testing.T) {
	g, _ := newTestGrid(t, nil)

	px, ok := g.ResizeColumnBy(TableStandard, 0, resizeStep)
	assert.Assert(t, ok)
	assert.Equal(t, px, minColumnWidth+resizeStep)

	px, _ = g.ResizeColumnBy(TableStandard, 0, -10*resizeStep)
	assert.Equal(t, px, minColumnWidth)

	_, ok = g.ResizeColumnBy(TableStandard, 9, resizeStep)
	assert.Assert(t, !ok)
}
