package tui

import (
	"context"
	"io"
	"log/slog"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"parkmap/internal/geom"
	"parkmap/internal/layout"
	"parkmap/internal/render"
	"parkmap/internal/status"
)

type viewKind int

const (
	viewMap viewKind = iota
	viewTable
	viewSchematic
)

var viewNames = []string{"Map", "Table", "Schematic"}

// LoadFunc loads a layout from a path or URL.
type LoadFunc func(ctx context.Context, src string) (*layout.Collection, error)

// Options wires a session into the model.
type Options struct {
	// Context bounds layout loads; the caller cancels it when the session ends.
	Context context.Context
	Layout  string
	Load    LoadFunc
	// Results carries poll results; nil means no live feed.
	Results <-chan status.Result
	Logger  *slog.Logger
}

type Model struct {
	width  int
	height int

	view        viewKind
	showSidebar bool
	helpVisible bool
	showEdges   bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// Layout picker
	cwd     string
	l       list.Model
	selPath string

	// Session
	ctx     context.Context
	load    LoadFunc
	results <-chan status.Result
	log     *slog.Logger

	// Data
	coll      *layout.Collection
	env       geom.Envelope
	hasEnv    bool
	loading   bool
	layoutErr error
	lookup    status.Lookup
	lastPoll  status.Result
	polling   bool

	// Derived from (coll, env, lookup, map size); rebuilt, never patched.
	proj   geom.Projector
	shapes []render.Shape
	index  *render.Index
	mapW   int
	mapH   int

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverSlot   string

	tbl  table.Model
	spin spinner.Model
}

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "parkmap ready",
		ctx:         opts.Context,
		load:        opts.Load,
		results:     opts.Results,
		log:         opts.Logger,
		selPath:     opts.Layout,
		polling:     opts.Results != nil,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Layouts"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(slotColumns()))
	m.tbl.SetHeight(12)
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(dimStyle))
	if m.selPath != "" && m.load != nil {
		m.loading = true
	}
	m.refreshDir()
	return m
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.loading {
		cmds = append(cmds, loadLayout(m.ctx, m.load, m.selPath), m.spin.Tick)
	}
	if m.results != nil {
		cmds = append(cmds, waitForStatus(m.results))
	}
	return tea.Batch(cmds...)
}
