package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var filterFieldDefs = []struct {
	Key, Label, Placeholder string
	Kind                    filterKind
}{
	{"dateFrom", "Từ ngày", "dd/mm/yyyy", filterDate},
	{"dateTo", "Đến ngày", "dd/mm/yyyy", filterDate},
	{"investor", "Chủ đầu tư", "Tên cơ sở KCB", filterText},
	{"approvalDecision", "Quyết định phê duyệt", "VD: 01/QĐ-TTYT", filterText},
	{"selectionMethod", "Hình thức LCNT", "Đấu thầu rộng rãi, Chỉ định thầu", filterList},
	{"place", "Tỉnh/Thành phố", "Thành phố Hà Nội, Tỉnh Nghệ An", filterList},
	{"validity", "Tình trạng hiệu lực", "Còn hiệu lực / Hết hiệu lực", filterText},
	{"drugName", "Tên thuốc", "VD: Paracetamol", filterText},
	{"activeIngredient", "Tên hoạt chất", "VD: Paracetamol", filterText},
	{"concentration", "Nồng độ, hàm lượng", "VD: 500mg", filterText},
	{"route", "Đường dùng", "VD: Uống", filterText},
	{"dosageForm", "Dạng bào chế", "VD: Viên nén", filterText},
	{"specification", "Quy cách", "VD: Hộp 10 vỉ x 10 viên", filterText},
	{"drugGroup", "Nhóm thuốc", "VD: N1", filterText},
	{"regNo", "GĐKLH hoặc GPNK", "VD: VD-12345-18", filterText},
	{"unit", "Đơn vị tính", "Ví dụ: Hộp, Viên, Lọ", filterText},
	{"manufacturer", "Cơ sở sản xuất", "Tên nhà máy/công ty", filterText},
	{"country", "Xuất xứ", "VD: Việt Nam, Ấn Độ", filterText},
}

func newFilterForm() filterForm {
	f := filterForm{}
	for _, def := range filterFieldDefs {
		ti := textinput.New()
		ti.Placeholder = def.Placeholder
		ti.Prompt = ""
		ti.CharLimit = 200
		f.fields = append(f.fields, filterField{Key: def.Key, Label: def.Label, Kind: def.Kind, input: ti})
	}
	return f
}

func (f *filterForm) focusField(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].input.Blur()
	f.focus = (i%len(f.fields) + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].input.Focus()
}

// blank reports whether no field holds a value. Apply and reset are
// disabled until one does.
func (f *filterForm) blank() bool {
	for _, field := range f.fields {
		if strings.TrimSpace(field.input.Value()) != "" {
			return false
		}
	}
	return true
}

const blankFilterHint = "Nhập ít nhất một điều kiện lọc"

// resetFilters clears the form and both tables. It is a no-op on a blank form.
func (m *model) resetFilters() {
	if m.filterForm.blank() {
		m.errorMessage = blankFilterHint
		return
	}
	m.filterForm.clear()
	m.orch.ResetFilters()
	m.errorMessage = ""
	m.successMessage = "Đã xóa bộ lọc"
}

func (f *filterForm) clear() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
	}
}

// snapshot reads every field. All keys are always present; list fields
// become arrays and dates are sent as yyyy-mm-dd.
func (f *filterForm) snapshot() (FilterSnapshot, error) {
	out := make(FilterSnapshot, len(f.fields))
	for _, field := range f.fields {
		raw := field.input.Value()
		switch field.Kind {
		case filterDate:
			v, ok := parseDateInput(raw)
			if !ok {
				return nil, fmt.Errorf("%s: ngày không hợp lệ %q", field.Label, raw)
			}
			out[field.Key] = v
		case filterList:
			out[field.Key] = splitList(raw)
		default:
			out[field.Key] = strings.TrimSpace(raw)
		}
	}
	return out, nil
}

func (m *model) openFilter() tea.Cmd {
	m.mode = ModeFilter
	return m.filterForm.focusField(m.filterForm.focus)
}

func (m *model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterForm.fields[m.filterForm.focus].input.Blur()
		m.mode = ModeNormal
		return m, nil
	case "tab", "down":
		return m, m.filterForm.focusField(m.filterForm.focus + 1)
	case "shift+tab", "up":
		return m, m.filterForm.focusField(m.filterForm.focus - 1)
	case "ctrl+x":
		m.resetFilters()
		return m, nil
	case "enter":
		if m.filterForm.blank() {
			m.errorMessage = blankFilterHint
			return m, nil
		}
		criteria, err := m.filterForm.snapshot()
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.filterForm.fields[m.filterForm.focus].input.Blur()
		m.mode = ModeNormal
		call := m.orch.ApplyFilters(criteria)
		return m, m.startQuery(call)
	}

	var cmd tea.Cmd
	field := &m.filterForm.fields[m.filterForm.focus]
	field.input, cmd = field.input.Update(msg)
	return m, cmd
}

func (m *model) filterView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bộ lọc tìm kiếm"))
	b.WriteString("\n\n")
	labelWidth := 0
	for _, f := range m.filterForm.fields {
		labelWidth = max(labelWidth, len([]rune(f.Label)))
	}
	for i, f := range m.filterForm.fields {
		marker := "  "
		if i == m.filterForm.focus {
			marker = "> "
		}
		label := f.Label + strings.Repeat(" ", labelWidth-len([]rune(f.Label)))
		b.WriteString(marker + label + "  " + f.input.View() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("tab/↑↓ chuyển ô · enter tìm kiếm · ctrl+x xóa bộ lọc · esc đóng"))
	return b.String()
}

func (m *model) handleSortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rules := m.orch.Rules()
	switch {
	case key.Matches(msg, sortKeys.Close):
		m.mode = ModeNormal
	case key.Matches(msg, sortKeys.Add):
		m.sortCursor = rules.Add()
	case key.Matches(msg, sortKeys.Remove):
		call, ok := m.orch.RemoveSortRule(m.sortCursor)
		m.sortCursor = clampInt(m.sortCursor, 0, rules.Len()-1)
		if ok {
			m.mode = ModeNormal
			return m, m.startQuery(call)
		}
		if rules.Len() == 0 {
			m.mode = ModeNormal
		}
	case key.Matches(msg, sortKeys.MoveUp):
		if rules.MoveUp(m.sortCursor) {
			m.sortCursor--
		}
	case key.Matches(msg, sortKeys.MoveDown):
		if rules.MoveDown(m.sortCursor) {
			m.sortCursor++
		}
	case key.Matches(msg, sortKeys.Up):
		m.sortCursor = clampInt(m.sortCursor-1, 0, rules.Len()-1)
	case key.Matches(msg, sortKeys.Down):
		m.sortCursor = clampInt(m.sortCursor+1, 0, rules.Len()-1)
	case key.Matches(msg, sortKeys.PrevCol):
		rules.CycleColumn(m.sortCursor, -1)
	case key.Matches(msg, sortKeys.NextCol):
		rules.CycleColumn(m.sortCursor, 1)
	case key.Matches(msg, sortKeys.Toggle):
		rules.ToggleOrder(m.sortCursor)
	case key.Matches(msg, sortKeys.Apply):
		m.mode = ModeNormal
		if call, ok := m.orch.ApplySort(); ok {
			return m, m.startQuery(call)
		}
	case key.Matches(msg, sortKeys.Reset):
		m.mode = ModeNormal
		m.sortCursor = 0
		if call, ok := m.orch.ResetSort(); ok {
			return m, m.startQuery(call)
		}
	}
	return m, nil
}

func (m *model) sortView() string {
	rules := m.orch.Rules()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sắp xếp nâng cao"))
	b.WriteString("\n\n")
	if rules.Len() == 0 {
		b.WriteString(dimStyle.Render("  Chưa có điều kiện sắp xếp. Nhấn a để thêm."))
		b.WriteString("\n")
	}
	for i, r := range rules.Rules() {
		line := fmt.Sprintf("%d. %-28s %s", i+1, rules.Label(r.Column), r.Order.Label())
		if i == 0 {
			line += dimStyle.Render("  (chính)")
		}
		if i == m.sortCursor {
			b.WriteString(activeStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(sortKeys.ShortHelp()))
	return b.String()
}

func newExportInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Tên tệp: "
	ti.CharLimit = 255
	return ti
}

func (m *model) openExport() tea.Cmd {
	m.mode = ModeExport
	m.exportInput.SetValue(timestampedName(string(m.focus), "", m.now()))
	m.exportInput.CursorEnd()
	return m.exportInput.Focus()
}

func (m *model) handleExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.exportInput.Blur()
		m.mode = ModeNormal
		return m, nil
	case "tab":
		if m.exportFormat == ExportPNG {
			m.exportFormat = ExportTSV
		} else {
			m.exportFormat = ExportPNG
		}
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.exportInput.Value())
		if name == "" {
			m.errorMessage = "Tên tệp trống"
			return m, nil
		}
		if !strings.HasSuffix(strings.ToLower(name), m.exportFormat.Ext()) {
			name += m.exportFormat.Ext()
		}
		m.exportInput.Blur()
		m.mode = ModeNormal
		path := m.config.GetSavePath(name)
		var err error
		switch m.exportFormat {
		case ExportTSV:
			err = m.grid.ExportTSV(m.focus, path)
		default:
			err = m.grid.ExportPNG(m.focus, path)
		}
		if err != nil {
			m.errorMessage = "Xuất tệp thất bại: " + err.Error()
			m.log.Error("export failed", slog.String("path", path), slog.Any("error", err))
			return m, nil
		}
		m.successMessage = "Đã xuất " + path
		return m, nil
	}
	var cmd tea.Cmd
	m.exportInput, cmd = m.exportInput.Update(msg)
	return m, cmd
}

func (m *model) exportView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Xuất bảng " + m.grid.Title(m.focus)))
	b.WriteString("\n\n")
	b.WriteString(m.exportInput.View())
	b.WriteString("\n")
	b.WriteString("Định dạng: " + m.exportFormat.String())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("tab đổi định dạng · enter xuất · esc hủy"))
	return b.String()
}

func newHistoryView() viewport.Model {
	return viewport.New(80, 20)
}

func (m *model) openHistory() tea.Cmd {
	m.mode = ModeHistory
	m.history.Width = max(20, m.width)
	m.history.Height = max(5, m.height-2)
	m.history.SetContent(m.historyContent())
	m.history.GotoTop()
	return m.fetchMetadata()
}

func (m *model) historyContent() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Lịch sử cập nhật dữ liệu"))
	b.WriteString("\n\n")
	last, when, ok := m.metadata.Latest()
	if !m.metaLoaded || !ok {
		b.WriteString("Lần cập nhật gần nhất: Chưa có dữ liệu\n")
		b.WriteString("Độ mới: --\n")
		b.WriteString("Số gói thầu: 0\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Lần cập nhật gần nhất: %s\n", when.Local().Format("15:04:05 02/01/2006"))
	fmt.Fprintf(&b, "Độ mới: %s\n", relativeAge(m.now(), when))
	fmt.Fprintf(&b, "Số gói thầu: %s\n\n", viPrinter.Sprintf("%d", last.BoxesSelected))
	for _, run := range m.metadata.History {
		t, ok := parseDate(run.EndTime)
		stamp := run.EndTime
		if ok {
			stamp = t.Local().Format("15:04:05 02/01/2006")
		}
		fmt.Fprintf(&b, "  %-22s %10s  %6.1fs\n", stamp, viPrinter.Sprintf("%d", run.BoxesSelected), run.DurationSeconds)
	}
	return b.String()
}

func (m *model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "m":
		m.mode = ModeNormal
		return m, nil
	case "r":
		return m, m.fetchMetadata()
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}
