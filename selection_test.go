package main

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func cellAt(id TableID, row, col int) pointer {
	return pointer{Hit: hitTarget{Kind: hitCell, Table: id, Row: row, Col: col}}
}

func TestSelectionRectangleSerializesAsTSV(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(3), Count: 3})

	g.BeginSelect(TableStandard, 2, 2, false)
	g.PointerMove(cellAt(TableStandard, 1, 1))
	g.PointerUp(cellAt(TableStandard, 1, 1))

	b, ok := g.SelectionBounds(TableStandard)
	assert.Assert(t, ok)
	assert.Equal(t, b, rangeBounds{R1: 1, R2: 2, C1: 1, C2: 2})
	assert.Equal(t, g.SelectionText(TableStandard), "b1\tc1\nb2\tc2")
	assert.Equal(t, g.FormulaText(TableStandard), "b1")
	assert.Assert(t, !g.Selecting(TableStandard))

	assert.Equal(t, g.CellMark(TableStandard, 1, 1), markActive)
	assert.Equal(t, g.CellMark(TableStandard, 2, 2), markInRange)
	assert.Equal(t, g.CellMark(TableStandard, 0, 0), markNone)
}

func TestSelectionExtendKeepsAnchor(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(3), Count: 3})

	g.BeginSelect(TableStandard, 0, 0, false)
	g.PointerUp(cellAt(TableStandard, 0, 0))
	g.BeginSelect(TableStandard, 1, 1, true)
	g.PointerUp(cellAt(TableStandard, 1, 1))

	assert.Equal(t, g.SelectionText(TableStandard), "a0\tb0\na1\tb1")
}

func TestSelectionExtendWithoutAnchorStartsFresh(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(3), Count: 3})

	g.PressCell(TableStandard, 1, 2, true)

	assert.Equal(t, g.SelectionText(TableStandard), "c1")
}

func TestSelectionIgnoresOtherTableAndOutOfRange(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(2), Count: 2})
	g.SetResult(TableExtended, QueryResult{Rows: []Record{{"X": "x", "Y": "y"}}, Count: 1})

	assert.Assert(t, !g.PressCell(TableStandard, 5, 0, false))
	g.BeginSelect(TableStandard, 0, 0, false)
	g.PointerMove(cellAt(TableExtended, 0, 1))

	assert.Equal(t, g.SelectionText(TableStandard), "a0")
	assert.Equal(t, g.SelectionText(TableExtended), "")
}

func TestSelectionCollapsesWhitespace(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: []Record{{"A": "  Hộp 10   vỉ\n x 10 viên ", "B": "\t"}}})

	g.PressCell(TableStandard, 0, 0, false)
	g.HoverCell(TableStandard, 0, 1)

	assert.Equal(t, g.SelectionText(TableStandard), "Hộp 10 vỉ x 10 viên\t")
}

func TestSelectionFollowsReorder(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(2), Count: 2})
	g.PressCell(TableStandard, 0, 0, false)
	g.ReleaseSelection(TableStandard)
	assert.Equal(t, g.SelectionText(TableStandard), "a0")

	g.ReorderColumn(TableStandard, 0, 2)

	assert.Equal(t, g.SelectionText(TableStandard), "b0")
}

func TestCopyUsesMostRecentlyActiveTable(t *testing.T) {
	g, copied := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(2), Count: 2})
	g.SetResult(TableExtended, QueryResult{Rows: []Record{{"X": "x0", "Y": "y0"}}, Count: 1})

	g.PressCell(TableStandard, 0, 0, false)
	g.PressCell(TableExtended, 0, 1, false)
	g.ReleaseAllSelections()

	text, err := g.CopySelection()
	assert.NilError(t, err)
	assert.Equal(t, text, "y0")

	g.HoverCell(TableStandard, 1, 1) // not selecting, ignored
	g.PressCell(TableStandard, 1, 1, true)

	text, err = g.CopySelection()
	assert.NilError(t, err)
	assert.Equal(t, text, "a0\tb0\na1\tb1")
	assert.DeepEqual(t, *copied, []string{"y0", "a0\tb0\na1\tb1"})
}

func TestCopyWithNothingSelected(t *testing.T) {
	g, copied := newTestGrid(t, nil)

	_, err := g.CopySelection()
	assert.ErrorIs(t, err, ErrNothingSelected)
	assert.Equal(t, len(*copied), 0)
}

func TestCopyReportsClipboardFailure(t *testing.T) {
	g, _ := newTestGrid(t, nil)
	g.SetResult(TableStandard, QueryResult{Rows: abcRows(1), Count: 1})
	g.PressCell(TableStandard, 0, 0, false)
	boom := errors.New("no clipboard")
	g.clip = func(string) error { return boom }

	_, err := g.CopySelection()
	assert.ErrorIs(t, err, boom)
}

func TestSerializeRangePadsMissingCells(t *testing.T) {
	display := [][]string{{"a", "b"}, {"c"}}

	got := serializeRange(display, rangeBounds{R1: 0, R2: 2, C1: 0, C2: 1})

	assert.Equal(t, got, "a\tb\nc\t\n\t")
}
