package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config := loadConfig()
	logger, closeLog := SetupLogger(config)
	defer closeLog()

	store, err := openStore(config, logger)
	if err != nil {
		logger.Warn("layout store unavailable, using memory", slog.Any("error", err))
		store = newMemoryStore()
	}
	defer store.Close()

	logger.Info("starting",
		slog.String("api_base", config.APIBase),
		slog.String("store", config.Store),
		slog.Int("limit", config.Limit),
	)

	p := tea.NewProgram(
		initialModel(config, store, newHTTPClient(config.APIBase, logger), logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initialModel(config *Config, store Store, client QueryClient, logger *slog.Logger) *model {
	grid := NewGrid(defaultTableSpecs(), store, logger)
	s := spinner.New()
	s.Spinner = spinner.Dot

	return &model{
		mode:        ModeNormal,
		grid:        grid,
		orch:        NewOrchestrator(NewSortRules(sortableColumns), grid, config.Limit, logger),
		client:      client,
		store:       store,
		config:      config,
		log:         logger,
		focus:       TableStandard,
		filterForm:  newFilterForm(),
		exportInput: newExportInput(),
		history:     newHistoryView(),
		spinner:     s,
		help:        help.New(),
		now:         time.Now,
	}
}

func (m *model) Init() tea.Cmd {
	return m.fetchMetadata()
}

// startQuery runs a call off the update loop; the answer comes back as a
// queryDoneMsg.
func (m *model) startQuery(call QueryCall) tea.Cmd {
	client, timeout := m.client, m.config.Timeout
	m.errorMessage = ""
	m.successMessage = ""
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return runQuery(ctx, client, call)
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *model) fetchMetadata() tea.Cmd {
	client, timeout := m.client, m.config.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		meta, err := client.Metadata(ctx)
		return metadataMsg{Metadata: meta, Err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return statusClearMsg{} })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.grid.AbortGesture()
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.history.Width = msg.Width
		m.history.Height = max(5, msg.Height-2)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeFilter:
			return m.handleFilterKey(msg)
		case ModeSort:
			return m.handleSortKey(msg)
		case ModeExport:
			return m.handleExportKey(msg)
		case ModeHistory:
			return m.handleHistoryKey(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKey(msg)

	case queryDoneMsg:
		return m, m.reconcile(msg)

	case metadataMsg:
		if msg.Err != nil {
			m.log.Warn("metadata unavailable", slog.Any("error", msg.Err))
			return m, nil
		}
		m.metadata = msg.Metadata
		m.metaLoaded = true
		m.history.SetContent(m.historyContent())
		return m, nil

	case spinner.TickMsg:
		if !m.orch.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusClearMsg:
		m.successMessage = ""
		return m, nil
	}
	return m, nil
}

func (m *model) reconcile(msg queryDoneMsg) tea.Cmd {
	switch m.orch.Reconcile(msg) {
	case outcomeApplied:
		m.errorMessage = ""
		total := m.grid.Total(TableStandard) + m.grid.Total(TableExtended)
		shown := len(m.grid.Rows(TableStandard)) + len(m.grid.Rows(TableExtended))
		m.successMessage = fmt.Sprintf("%s/%s kết quả", viPrinter.Sprintf("%d", shown), viPrinter.Sprintf("%d", total))
		return clearStatusAfter(5 * time.Second)
	case outcomeCleared:
		m.errorMessage = "Lỗi kết nối: " + msg.Err.Error()
	case outcomeIgnored:
		if msg.Err != nil {
			m.errorMessage = "Truy vấn thất bại: " + msg.Err.Error()
		}
	}
	return nil
}

func (m *model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.grid.AbortGesture()
		m.errorMessage = ""
		return m, nil
	}
	if m.handleNavigation(msg) {
		return m, nil
	}

	cursor := m.grid.Cursor(m.focus)
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.ToggleHelp):
		m.mode = ModeHelp
	case key.Matches(msg, keys.Filter):
		return m, m.openFilter()
	case key.Matches(msg, keys.ResetFilter):
		m.resetFilters()
	case key.Matches(msg, keys.Sort):
		m.mode = ModeSort
		m.sortCursor = clampInt(m.sortCursor, 0, m.orch.Rules().Len()-1)
	case key.Matches(msg, keys.History):
		return m, m.openHistory()
	case key.Matches(msg, keys.Export):
		return m, m.openExport()
	case key.Matches(msg, keys.SwitchTable):
		m.switchTable()
	case key.Matches(msg, keys.Copy):
		m.copySelection()
	case key.Matches(msg, keys.MoveLeft), key.Matches(msg, keys.MoveRight):
		delta := 1
		if key.Matches(msg, keys.MoveLeft) {
			delta = -1
		}
		if to, ok := m.grid.MoveColumnBy(m.focus, cursor.Col, delta); ok {
			m.grid.SetCursorCol(m.focus, to)
			m.grid.EnsureVisible(m.focus, m.bodyRows(), m.width)
		}
	case key.Matches(msg, keys.Narrow):
		m.grid.ResizeColumnBy(m.focus, cursor.Col, -resizeStep)
	case key.Matches(msg, keys.Widen):
		m.grid.ResizeColumnBy(m.focus, cursor.Col, resizeStep)
	case key.Matches(msg, keys.ResetLayout):
		m.grid.ResetLayout(m.focus)
		m.successMessage = "Đã khôi phục bố cục cột"
	case key.Matches(msg, keys.Undo):
		if !m.grid.Undo(m.focus) {
			m.errorMessage = "Không có thao tác để hoàn tác"
		}
	case key.Matches(msg, keys.Redo):
		if !m.grid.Redo(m.focus) {
			m.errorMessage = "Không có thao tác để làm lại"
		}
	}
	return m, nil
}

func (m *model) copySelection() {
	text, err := m.grid.CopySelection()
	switch {
	case errors.Is(err, ErrNothingSelected):
		return
	case err != nil:
		m.errorMessage = "Không sao chép được: " + err.Error()
		m.log.Error("clipboard write failed", slog.Any("error", err))
	default:
		m.successMessage = fmt.Sprintf("Đã sao chép %d ô", countCells(text))
	}
}

func countCells(tsv string) int {
	if tsv == "" {
		return 0
	}
	n := 1
	for _, r := range tsv {
		if r == '\t' || r == '\n' {
			n++
		}
	}
	return n
}
