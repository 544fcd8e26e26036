package main

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

type model struct {
	width  int
	height int
	mode   Mode

	grid   *Grid
	orch   *Orchestrator
	client QueryClient
	store  Store
	config *Config
	log    *slog.Logger

	focus TableID

	filterForm filterForm
	sortCursor int

	exportInput  textinput.Model
	exportFormat ExportFormat

	history    viewport.Model
	metadata   Metadata
	metaLoaded bool

	spinner spinner.Model
	help    help.Model

	errorMessage   string
	successMessage string
	now            func() time.Time
}

// filterField is one input of the filter form.
type filterField struct {
	Key   string
	Label string
	Kind  filterKind
	input textinput.Model
}

type filterKind int

const (
	filterText filterKind = iota
	filterDate
	filterList // comma separated, sent as an array
)

type filterForm struct {
	fields []filterField
	focus  int
}

type ExportFormat int

const (
	ExportPNG ExportFormat = iota
	ExportTSV
)

func (f ExportFormat) String() string {
	if f == ExportTSV {
		return "TSV"
	}
	return "PNG"
}

func (f ExportFormat) Ext() string {
	if f == ExportTSV {
		return ".tsv"
	}
	return ".png"
}

type metadataMsg struct {
	Metadata Metadata
	Err      error
}

type statusClearMsg struct{}
