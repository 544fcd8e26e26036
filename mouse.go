package main

import tea "github.com/charmbracelet/bubbletea"

const wheelStep = 3

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeHistory {
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}
	if m.mode != ModeNormal {
		return m, nil
	}

	panes := m.grid.panes(m.width, m.height)
	hit := m.grid.hitTest(panes, msg.X, msg.Y)
	p := pointer{X: msg.X, Y: msg.Y, Hit: hit}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			m.scrollWheel(panes, hit, msg)
		case tea.MouseButtonLeft:
			m.press(hit, msg)
		}
	case tea.MouseActionMotion:
		m.grid.PointerMove(p)
	case tea.MouseActionRelease:
		m.grid.PointerUp(p)
	}
	return m, nil
}

func (m *model) press(hit hitTarget, msg tea.MouseMsg) {
	if hit.Table != "" {
		m.focus = hit.Table
	}
	switch hit.Kind {
	case hitHeader:
		m.grid.SetCursorCol(hit.Table, hit.Col)
		m.grid.BeginDrag(hit.Table, hit.Col)
	case hitResizeHandle:
		m.grid.BeginResize(hit.Table, hit.Col, msg.X)
	case hitCell:
		m.grid.BeginSelect(hit.Table, hit.Row, hit.Col, msg.Shift || msg.Alt)
	default:
		m.grid.AbortGesture()
	}
}

func (m *model) scrollWheel(panes []pane, hit hitTarget, msg tea.MouseMsg) {
	id := hit.Table
	if id == "" {
		id = m.focus
	}
	delta := wheelStep
	if msg.Button == tea.MouseButtonWheelUp {
		delta = -delta
	}
	if msg.Shift {
		m.grid.ScrollCols(id, delta/wheelStep)
		return
	}
	rows := 1
	for _, p := range panes {
		if p.table == id {
			rows = p.bodyRows
		}
	}
	m.grid.ScrollRows(id, delta, rows)
}
