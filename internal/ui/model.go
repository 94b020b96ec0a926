package ui

import (
	"context"
	"math"
	"reflect"
	"time"

	"github.com/atomicstack/pie-launcher/internal/backend"
	"github.com/atomicstack/pie-launcher/internal/data/dispatcher"
	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/menu"
	"github.com/atomicstack/pie-launcher/internal/state"
	"github.com/atomicstack/pie-launcher/internal/theme"
	"github.com/atomicstack/pie-launcher/internal/ui/command"
	uistate "github.com/atomicstack/pie-launcher/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultColumns = 80
	defaultRows    = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Launcher starts applications on behalf of the pie.
type Launcher interface {
	LaunchApp(pkg string) error
	LaunchURL(pkg, url string) error
	LaunchShortcut(pkg, id string) error
}

// Persister writes edited layers and the app-list cache.
type Persister interface {
	SaveLayers(ctx context.Context, layers []menu.Layer) error
	SaveAppListCache(ctx context.Context, snap directory.Snapshot) error
}

// Options configures a Model.
type Options struct {
	// Width and Height fix the viewport in cells; zero follows the terminal.
	Width  int
	Height int
	// CellWidth and CellHeight convert terminal cells into pixels.
	CellWidth  float64
	CellHeight float64
	Metrics    geometry.Metrics
	Timing     gesture.Timing
	Behaviour  gesture.Options
	Watcher    *backend.Watcher
	Directory  state.DirectoryStore
	Config     state.ConfigStore
	Launcher   Launcher
	Store      Persister
}

// pointer tracks the terminal mouse between press and release.
type pointer struct {
	down  bool
	moved bool
	col   int
	row   int
}

// Model implements the Bubble Tea model for the pie launcher.
type Model struct {
	gs       gesture.State
	session  string
	pointer  pointer
	flash    bool
	flashSeq int

	errMsg         string
	infoMsg        string
	width          int
	height         int
	fixedWidth     bool
	fixedHeight    bool
	cellWidth      float64
	cellHeight     float64
	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string

	handlers map[reflect.Type]msgHandler

	metrics    geometry.Metrics
	timing     gesture.Timing
	behaviour  gesture.Options
	bus        *command.Bus
	keys       keyMap
	help       help.Model
	listing    *uistate.Listing
	editor     *editor
	directory  state.DirectoryStore
	config     state.ConfigStore
	dispatcher *dispatcher.Dispatcher
	launcher   Launcher
	store      Persister

	// after schedules msg once d has elapsed.
	after func(d time.Duration, msg tea.Msg) tea.Cmd
}

// NewModel initialises the UI state from opts.
func NewModel(opts Options) *Model {
	dirs := opts.Directory
	if dirs == nil {
		dirs = state.NewDirectoryStore()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = state.NewConfigStore(menu.DefaultLayers(), menu.DefaultBrowserActions())
	}
	m := &Model{
		width:        defaultColumns,
		height:       defaultRows,
		cellWidth:    opts.CellWidth,
		cellHeight:   opts.CellHeight,
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		metrics:      opts.Metrics,
		timing:       opts.Timing,
		behaviour:    opts.Behaviour,
		bus:          command.New(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		listing:      uistate.NewListing(dirs.Snapshot().Apps),
		directory:    dirs,
		config:       cfg,
		dispatcher:   dispatcher.New(dirs, cfg),
		launcher:     opts.Launcher,
		store:        opts.Store,
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
	}
	if m.cellWidth <= 0 {
		m.cellWidth = 10
	}
	if m.cellHeight <= 0 {
		m.cellHeight = 20
	}
	if m.metrics == (geometry.Metrics{}) {
		m.metrics = geometry.DefaultMetrics()
	}
	if m.timing == (gesture.Timing{}) {
		m.timing = gesture.DefaultTiming()
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.gs = gesture.NewState(m.env())
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editor != nil {
		if handled, cmd := m.updateEditor(msg); handled {
			return m, cmd
		}
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):       m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(timerMsg{}):           m.handleTimerMsg,
		reflect.TypeOf(flashDoneMsg{}):       m.handleFlashDoneMsg,
		reflect.TypeOf(shortcutsLoadedMsg{}): m.handleShortcutsLoadedMsg,
		reflect.TypeOf(launchResultMsg{}):    m.handleLaunchResultMsg,
		reflect.TypeOf(layersSavedMsg{}):     m.handleLayersSavedMsg,
		reflect.TypeOf(cacheSavedMsg{}):      m.handleCacheSavedMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth && size.Width > 0 {
		m.width = size.Width
	}
	if !m.fixedHeight && size.Height > 0 {
		m.height = size.Height
	}
	m.help.Width = m.width
	if m.editor != nil {
		m.editor.resize(m.width, m.height)
	}
	return nil
}

// screen is the terminal expressed in pixels.
func (m *Model) screen() geometry.Screen {
	return geometry.Screen{
		Width:  float64(m.width) * m.cellWidth,
		Height: float64(m.height) * m.cellHeight,
	}
}

// pixel maps the centre of a terminal cell to pixel coordinates.
func (m *Model) pixel(col, row int) geometry.Point {
	return geometry.Point{
		X: (float64(col) + 0.5) * m.cellWidth,
		Y: (float64(row) + 0.5) * m.cellHeight,
	}
}

// cell maps a pixel position back to its terminal cell.
func (m *Model) cell(p geometry.Point) (int, int) {
	return int(math.Floor(p.X / m.cellWidth)), int(math.Floor(p.Y / m.cellHeight))
}

// gridRows is the number of listing rows whose centres fit on screen.
func (m *Model) gridRows() int {
	span := m.screen().Height - m.metrics.GridOrigin.Y
	if m.metrics.RowPitch <= 0 || span <= 0 {
		return 1
	}
	return max(int(math.Ceil(span/m.metrics.RowPitch)), 1)
}

func (m *Model) env() gesture.Env {
	return gesture.Env{
		Registry:       m.config.Registry(),
		Directory:      m.directory.Snapshot(),
		BrowserActions: m.config.BrowserActions(),
		Shortcuts:      m.directory.Shortcuts(),
		Listing:        m.listing.Window(m.metrics.GridColumns, m.gridRows()),
		Screen:         m.screen(),
		Metrics:        m.metrics,
		Timing:         m.timing,
		Options:        m.behaviour,
	}
}

func (m *Model) setInfo(info string) {
	m.infoMsg = info
}

func (m *Model) clearMessages() {
	m.infoMsg = ""
	m.errMsg = ""
}
