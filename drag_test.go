package main

import (
	"testing"

	"gotest.tools/v3/assert"
)

func headerAt(id TableID, col int) pointer {
	return pointer{Hit: hitTarget{Kind: hitHeader, Table: id, Col: col}}
}

func TestDropReordersPersistsAndRerenders(t *testing.T) {
	store := newMemoryStore()
	g, _ := newTestGrid(t, store)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(2), Count: 2})

	assert.Assert(t, g.BeginDrag(TableStandard, 2))
	g.PointerMove(headerAt(TableStandard, 0))
	source, over, ok := g.DragState(TableStandard)
	assert.Assert(t, ok)
	assert.Equal(t, source, 2)
	assert.Equal(t, over, 0)

	g.PointerUp(headerAt(TableStandard, 0))

	assert.DeepEqual(t, g.ColumnOrder(TableStandard), []string{"C", "A", "B"})
	assert.DeepEqual(t, g.Display(TableStandard), [][]string{
		{"c0", "a0", "b0"},
		{"c1", "a1", "b1"},
	})
	raw, ok, _ := store.Get("columnOrderDf1")
	assert.Assert(t, ok)
	assert.Equal(t, raw, `["C","A","B"]`)
	_, _, ok = g.DragState(TableStandard)
	assert.Assert(t, !ok)
	assert.Assert(t, !g.GestureActive())
}

func TestDropOnOtherTableIsIgnored(t *testing.T) {
	g, _ := newTestGrid(t, nil)

	g.BeginDrag(TableStandard, 0)
	g.PointerMove(headerAt(TableExtended, 1))
	_, over, _ := g.DragState(TableStandard)
	assert.Equal(t, over, -1)

	g.PointerUp(headerAt(TableExtended, 1))

	assert.DeepEqual(t, g.ColumnOrder(TableStandard), []string{"A", "B", "C"})
	assert.DeepEqual(t, g.ColumnOrder(TableExtended), []string{"X", "Y"})
}

func TestDropOnSourceOrOutsideHeaderCancels(t *testing.T) {
	g, _ := newTestGrid(t, nil)

	g.BeginDrag(TableStandard, 1)
	assert.Assert(t, !g.DropColumn(TableStandard, 1))
	assert.DeepEqual(t, g.ColumnOrder(TableStandard), []string{"A", "B", "C"})

	g.BeginDrag(TableStandard, 1)
	g.PointerUp(pointer{Hit: hitTarget{Kind: hitCell, Table: TableStandard}})
	_, _, ok := g.DragState(TableStandard)
	assert.Assert(t, !ok)
	assert.DeepEqual(t, g.ColumnOrder(TableStandard), []string{"A", "B", "C"})
}

func TestBeginDragRejectsOutOfRange(t *testing.T) {
	g, _ := newTestGrid(t, nil)

	assert.Assert(t, !g.BeginDrag(TableStandard, 3))
	assert.Assert(t, !g.BeginDrag("nope", 0))
	assert.Assert(t, !g.GestureActive())
}

func TestMoveColumnBy(t *testing.T) {
	g, _ := newTestGrid(t, nil)

	to, ok := g.MoveColumnBy(TableStandard, 0, 1)
	assert.Assert(t, ok)
	assert.Equal(t, to, 1)
	assert.DeepEqual(t, g.ColumnOrder(TableStandard), []string{"B", "A", "C"})

	_, ok = g.MoveColumnBy(TableStandard, 0, -1)
	assert.Assert(t, !ok)
	_, ok = g.MoveColumnBy(TableStandard, 2, 1)
	assert.Assert(t, !ok)
}

func TestNewGestureAbortsDrag(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(1), Count: 1})

	g.BeginDrag(TableStandard, 0)
	g.BeginSelect(TableStandard, 0, 0, false)

	_, _, ok := g.DragState(TableStandard)
	assert.Assert(t, !ok)
	assert.Assert(t, g.Selecting(TableStandard))
}
