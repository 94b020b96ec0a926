package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/pie-launcher/internal/backend"
	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/format/table"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/launch"
	"github.com/atomicstack/pie-launcher/internal/logging"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/atomicstack/pie-launcher/internal/menu"
	"github.com/atomicstack/pie-launcher/internal/render"
	"github.com/atomicstack/pie-launcher/internal/state"
	"github.com/atomicstack/pie-launcher/internal/store"
	"github.com/atomicstack/pie-launcher/internal/tmux"
	"github.com/atomicstack/pie-launcher/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const loadTimeout = 5 * time.Second

// Config describes user-provided application options.
type Config struct {
	SocketPath     string
	DBPath         string
	DesktopDirs    []string
	LayersFile     string
	ActionsFile    string
	Width          int
	Height         int
	CellWidth      float64
	CellHeight     float64
	Radius         float64
	HoverThreshold float64
	Options        gesture.Options
	Poll           time.Duration
}

// Metrics returns the ring geometry with the configured overrides applied.
func (cfg Config) Metrics() geometry.Metrics {
	m := geometry.DefaultMetrics()
	if cfg.Radius > 0 {
		m.Radius = cfg.Radius
	}
	if cfg.HoverThreshold > 0 {
		m.HoverThreshold = cfg.HoverThreshold
	}
	return m
}

func (cfg Config) desktopDirs() []string {
	if len(cfg.DesktopDirs) > 0 {
		return cfg.DesktopDirs
	}
	return directory.DefaultDirs()
}

// Runtime is the shared state behind a frontend: the configuration
// database, the in-memory stores fed by the backend watcher and the
// launcher.
type Runtime struct {
	SocketPath string
	Store      *store.Store
	Directory  state.DirectoryStore
	Config     state.ConfigStore
	Watcher    *backend.Watcher
	Launcher   *launch.Launcher
}

// Open loads the stored configuration, seeds the directory from the app-list
// cache and starts the backend watcher.
func Open(ctx context.Context, cfg Config) (*Runtime, error) {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("resolve socket path: %w", err)
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	cfgStore, err := loadConfig(ctx, db, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dirStore := state.NewDirectoryStore()
	if snap, ok, err := db.AppListCache(ctx); err != nil {
		logging.Error(fmt.Errorf("read app-list cache: %w", err))
	} else if ok {
		dirStore.SetSnapshot(snap)
	}
	poll := cfg.Poll
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &Runtime{
		SocketPath: socketPath,
		Store:      db,
		Directory:  dirStore,
		Config:     cfgStore,
		Watcher:    backend.NewWatcher(backend.Source{DesktopDirs: cfg.desktopDirs(), Store: db}, poll),
		Launcher:   launch.New(dirStore, socketPath),
	}, nil
}

// importFile saves path under key unless the stored value is newer than the
// file.
func importFile(ctx context.Context, db *store.Store, key, path string, load func(string) (int, error)) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("import %s: %w", key, err)
	}
	stored, err := db.Updated(ctx, key)
	if err != nil {
		return err
	}
	if stored.After(info.ModTime()) {
		events.Config.Skip(key, path)
		return nil
	}
	n, err := load(path)
	if err != nil {
		return err
	}
	events.Config.Import(key, path, n)
	return nil
}

// Close stops the watcher and closes the database.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	if r.Watcher != nil {
		r.Watcher.Stop()
	}
	return r.Store.Close()
}

func loadConfig(ctx context.Context, db *store.Store, cfg Config) (state.ConfigStore, error) {
	err := importFile(ctx, db, store.KeyLayers, cfg.LayersFile, func(path string) (int, error) {
		layers, err := db.ImportLayers(ctx, path)
		return len(layers), err
	})
	if err != nil {
		return nil, err
	}
	err = importFile(ctx, db, store.KeyBrowserActions, cfg.ActionsFile, func(path string) (int, error) {
		actions, err := db.ImportBrowserActions(ctx, path)
		return len(actions), err
	})
	if err != nil {
		return nil, err
	}
	layers, err := db.Layers(ctx)
	if err != nil {
		events.Config.Reject(store.KeyLayers, err)
		logging.Error(err)
		layers = menu.DefaultLayers()
	}
	events.Config.Load(store.KeyLayers, err != nil)
	actions, err := db.BrowserActions(ctx)
	if err != nil {
		events.Config.Reject(store.KeyBrowserActions, err)
		logging.Error(err)
		actions = menu.DefaultBrowserActions()
	}
	events.Config.Load(store.KeyBrowserActions, err != nil)
	return state.NewConfigStore(layers, actions), nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	rt, err := Open(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer rt.Close()

	model := ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		Metrics:    cfg.Metrics(),
		Timing:     gesture.DefaultTiming(),
		Behaviour:  cfg.Options,
		Watcher:    rt.Watcher,
		Directory:  rt.Directory,
		Config:     rt.Config,
		Launcher:   rt.Launcher,
		Store:      rt.Store,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	events.App.Stop("exit")
	return err
}

// ListApps scans the application directory and writes one row per app.
func ListApps(ctx context.Context, cfg Config, w io.Writer) error {
	snap, err := directory.Load(ctx, cfg.desktopDirs())
	if err != nil && len(snap.Apps) == 0 {
		return fmt.Errorf("scan applications: %w", err)
	}
	rows := make([][]string, 0, len(snap.Apps)+1)
	rows = append(rows, []string{"ID", "LABEL", "ACTIONS", "FLAGS"})
	for _, app := range snap.Apps {
		var flags string
		if app.Terminal {
			flags = "terminal"
		}
		if app.Package == snap.DefaultBrowser {
			flags = joinFlags(flags, "browser")
		}
		rows = append(rows, []string{app.Package, app.Label, fmt.Sprint(len(app.Shortcuts())), flags})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignLeft})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func joinFlags(a, b string) string {
	if a == "" {
		return b
	}
	return a + "," + b
}

// SnapshotOptions positions the finger for WriteSnapshot.
type SnapshotOptions struct {
	Path   string
	Screen geometry.Screen
	Press  geometry.Point
	Touch  *geometry.Point
}

// WriteSnapshot renders the pie as it looks after pressing at opts.Press and
// dragging to opts.Touch, and writes it as a PNG.
func WriteSnapshot(ctx context.Context, cfg Config, opts SnapshotOptions) error {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()
	configs, err := loadConfig(ctx, db, cfg)
	if err != nil {
		return err
	}
	snap, ok, err := db.AppListCache(ctx)
	if err != nil || !ok {
		if snap, err = directory.Load(ctx, cfg.desktopDirs()); err != nil && len(snap.Apps) == 0 {
			return fmt.Errorf("scan applications: %w", err)
		}
	}
	env := gesture.Env{
		Registry:       configs.Registry(),
		Directory:      snap,
		BrowserActions: configs.BrowserActions(),
		Shortcuts:      map[string][]directory.Shortcut{},
		Screen:         opts.Screen,
		Metrics:        cfg.Metrics(),
		Timing:         gesture.DefaultTiming(),
		Options:        cfg.Options,
	}
	view := render.Preview(env, opts.Press, opts.Touch)
	r, err := render.New(opts.Screen, render.FindFont())
	if err != nil {
		return err
	}
	defer r.Close()
	r.Draw(view, env.Metrics)
	return r.SavePNG(opts.Path)
}
