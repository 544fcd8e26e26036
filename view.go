package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch m.mode {
	case ModeHelp:
		return m.helpView()
	case ModeFilter:
		return m.framed(m.filterView())
	case ModeSort:
		return m.framed(m.sortView())
	case ModeExport:
		return m.framed(m.exportView())
	case ModeHistory:
		return m.history.View() + "\n" + m.statusLine()
	}

	lines := []string{m.topBar()}
	panes := m.grid.panes(m.width, m.height)
	if panes == nil {
		lines = append(lines, warningStyle.Render("Cửa sổ quá nhỏ"))
	}
	for _, p := range panes {
		pl := m.grid.drawPane(p, m.width, p.table == m.focus)
		for len(pl) < p.bodyRows+2 {
			pl = append(pl, "")
		}
		lines = append(lines, pl...)
	}
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, m.statusLine())
	return strings.Join(lines, "\n")
}

func (m *model) framed(body string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(body)
	h := max(1, m.height-1)
	placed := lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, box)
	return placed + "\n" + m.statusLine()
}

func (m *model) topBar() string {
	left := " bidgrid"
	if filters := m.orch.Filters(); !filters.Empty() {
		left += " · đang lọc"
	}
	if n := m.orch.Rules().Len(); n > 0 {
		left += fmt.Sprintf(" · %d điều kiện sắp xếp", n)
	}
	right := ""
	if _, when, ok := m.metadata.Latest(); ok {
		right = "Cập nhật " + relativeAge(m.now(), when) + " "
	}
	if m.grid.Truncated() {
		total := m.grid.Total(TableStandard) + m.grid.Total(TableExtended)
		shown := len(m.grid.Rows(TableStandard)) + len(m.grid.Rows(TableExtended))
		warn := fmt.Sprintf(" Chỉ hiển thị %s/%s kết quả, hãy thu hẹp bộ lọc ", viPrinter.Sprintf("%d", shown), viPrinter.Sprintf("%d", total))
		left += " " + warningStyle.Render(warn)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + dimStyle.Render(right)
}

func (m *model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeFilter:
		return "FILTER"
	case ModeSort:
		return "SORT"
	case ModeHistory:
		return "HISTORY"
	case ModeExport:
		return "EXPORT"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

func (m *model) statusLine() string {
	var b strings.Builder
	b.WriteString(barStyle.Render(" " + m.modeString() + " "))
	b.WriteString(" ")
	if m.orch.Pending() {
		b.WriteString(m.spinner.View() + " Đang tải dữ liệu... ")
	}
	switch {
	case m.errorMessage != "":
		b.WriteString(errorStyle.Render(m.errorMessage))
	case m.successMessage != "":
		b.WriteString(successStyle.Render(m.successMessage))
	case m.mode == ModeNormal:
		b.WriteString(m.help.View(keys))
	}
	return b.String()
}

func (m *model) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("bidgrid help"))
	b.WriteString("\n\n")
	m.help.ShowAll = true
	b.WriteString(m.help.View(keys))
	m.help.ShowAll = false
	b.WriteString("\n\n")
	b.WriteString("Chuột:\n")
	b.WriteString("  kéo tiêu đề cột        đổi thứ tự cột trong cùng bảng\n")
	b.WriteString("  kéo mép phải tiêu đề   đổi độ rộng cột\n")
	b.WriteString("  kéo trên ô             chọn vùng ô (Shift/Alt để mở rộng)\n")
	b.WriteString("  cuộn                   cuộn dọc, Shift+cuộn cuộn ngang\n")
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Nhấn phím bất kỳ để đóng"))
	return b.String()
}
