package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// projector turns records into display cells for a given column order.
type projector struct {
	formatters map[string]formatter
	rightAlign map[string]bool
}

func newProjector(spec tableSpec) projector {
	p := projector{
		formatters: spec.Formatters,
		rightAlign: make(map[string]bool, len(spec.RightAlign)),
	}
	for _, name := range spec.RightAlign {
		p.rightAlign[name] = true
	}
	return p
}

// project builds one display row per record, cells in the given order.
// Record keys are matched after trimming surrounding whitespace.
func (p projector) project(records []Record, order []string) [][]string {
	out := make([][]string, 0, len(records))
	for _, rec := range records {
		values := normalizeRecord(rec)
		row := make([]string, len(order))
		for i, name := range order {
			v := values[name]
			if f, ok := p.formatters[name]; ok {
				row[i] = f(v)
			} else {
				row[i] = cellString(v)
			}
		}
		out = append(out, row)
	}
	return out
}

func normalizeRecord(rec Record) map[string]any {
	clean := true
	for k := range rec {
		if strings.TrimSpace(k) != k {
			clean = false
			break
		}
	}
	if clean {
		return rec
	}
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[strings.TrimSpace(k)] = v
	}
	return out
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)
	sourceStyle    = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("8")).Foreground(lipgloss.Color("15"))
	dragOverStyle  = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	inRangeStyle   = lipgloss.NewStyle().Background(lipgloss.Color("17"))
	activeStyle    = lipgloss.NewStyle().Background(lipgloss.Color("25")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Underline(true)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	barStyle       = lipgloss.NewStyle().Reverse(true)
)

const separator = "│"

// paneColumn is one visible column: its live index, first screen column
// and width in cells. The resize handle sits at x+cells.
type paneColumn struct {
	index int
	x     int
	cells int
}

// pane is the screen geometry of one table in the current frame.
type pane struct {
	table    TableID
	titleY   int
	headerY  int
	bodyY    int
	bodyRows int
	cols     []paneColumn
}

func cellsFor(px int) int {
	return max(1, px/pxPerCell)
}

// panes lays out the tables stacked vertically between the top bar and
// the status line.
func (g *Grid) panes(width, height int) []pane {
	ids := g.Tables()
	avail := height - 2
	if avail < len(ids)*3 || len(ids) == 0 {
		return nil
	}
	per := avail / len(ids)
	out := make([]pane, 0, len(ids))
	y := 1
	for _, id := range ids {
		p := pane{
			table:    id,
			titleY:   y,
			headerY:  y + 1,
			bodyY:    y + 2,
			bodyRows: per - 2,
		}
		t := g.table(id)
		x := 0
		for i := t.colOffset; i < t.layout.Len() && x < width; i++ {
			cells := cellsFor(g.EffectiveWidth(id, i))
			p.cols = append(p.cols, paneColumn{index: i, x: x, cells: cells})
			x += cells + 1
		}
		out = append(out, p)
		y += per
	}
	return out
}

// hitTest resolves a screen position against the given frame geometry.
func (g *Grid) hitTest(panes []pane, x, y int) hitTarget {
	for _, p := range panes {
		switch {
		case y == p.headerY:
			for _, c := range p.cols {
				if x >= c.x && x < c.x+c.cells {
					return hitTarget{Kind: hitHeader, Table: p.table, Col: c.index}
				}
				if x == c.x+c.cells {
					return hitTarget{Kind: hitResizeHandle, Table: p.table, Col: c.index}
				}
			}
		case y >= p.bodyY && y < p.bodyY+p.bodyRows:
			t := g.table(p.table)
			row := t.rowOffset + (y - p.bodyY)
			if row >= len(t.display) {
				return hitTarget{}
			}
			for _, c := range p.cols {
				if x >= c.x && x <= c.x+c.cells {
					return hitTarget{Kind: hitCell, Table: p.table, Row: row, Col: c.index}
				}
			}
		}
	}
	return hitTarget{}
}

func fitCell(s string, cells int, right bool) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > cells {
		s = runewidth.Truncate(s, cells, "…")
	}
	if right {
		return runewidth.FillLeft(s, cells)
	}
	return runewidth.FillRight(s, cells)
}

// drawPane renders the title, header and visible body rows of one table.
func (g *Grid) drawPane(p pane, width int, focused bool) []string {
	t := g.table(p.table)
	lines := make([]string, 0, p.bodyRows+2)

	title := fmt.Sprintf(" %s (%d/%d)", t.spec.Title, len(t.rows), t.total)
	if t.manuallySized {
		title += " *"
	}
	if f := g.FormulaText(p.table); f != "" {
		title += "  fx " + f
	}
	style := dimStyle
	if focused {
		style = titleStyle
	}
	lines = append(lines, style.Render(fitCell(title, width, false)))

	source, over, dragging := g.DragState(p.table)
	var header strings.Builder
	for _, c := range p.cols {
		name, _ := t.layout.Name(c.index)
		cell := fitCell(name, c.cells, false)
		switch {
		case dragging && c.index == over:
			header.WriteString(dragOverStyle.Render(cell))
		case dragging && c.index == source:
			header.WriteString(sourceStyle.Render(cell))
		default:
			header.WriteString(headerStyle.Render(cell))
		}
		header.WriteString(separatorStyle.Render(separator))
	}
	lines = append(lines, header.String())

	for i := 0; i < p.bodyRows; i++ {
		row := t.rowOffset + i
		if row >= len(t.display) {
			if len(t.display) == 0 && i == 0 {
				lines = append(lines, dimStyle.Render(" Không có dữ liệu"))
				continue
			}
			lines = append(lines, "")
			continue
		}
		var b strings.Builder
		for _, c := range p.cols {
			text := ""
			if c.index < len(t.display[row]) {
				text = t.display[row][c.index]
			}
			name, _ := t.layout.Name(c.index)
			cell := fitCell(text, c.cells, t.proj.rightAlign[name])
			switch g.CellMark(p.table, row, c.index) {
			case markActive:
				b.WriteString(activeStyle.Render(cell))
			case markInRange:
				b.WriteString(inRangeStyle.Render(cell))
			default:
				if focused && t.cursor.Row == row && t.cursor.Col == c.index {
					b.WriteString(cursorStyle.Render(cell))
				} else {
					b.WriteString(cell)
				}
			}
			b.WriteString(separatorStyle.Render(separator))
		}
		lines = append(lines, b.String())
	}
	return lines
}
