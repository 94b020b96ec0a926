// Package launch starts applications, app shortcuts and URLs selected in the
// launcher. Terminal applications open in a new tmux window when the
// launcher itself runs inside tmux.
package launch

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/atomicstack/pie-launcher/internal/tmux"
)

// Directory supplies the current application snapshot.
type Directory interface {
	Snapshot() directory.Snapshot
}

// NotFoundError reports a package or shortcut missing from the directory.
type NotFoundError struct {
	Package  string
	Shortcut string
}

func (e *NotFoundError) Error() string {
	if e.Shortcut != "" {
		return fmt.Sprintf("launch: %s has no shortcut %q", e.Package, e.Shortcut)
	}
	return fmt.Sprintf("launch: unknown application %q", e.Package)
}

var (
	startProcess = func(argv []string, dir string) error {
		cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec
		cmd.Dir = dir
		if err := cmd.Start(); err != nil {
			return err
		}
		go func() { _ = cmd.Wait() }()
		return nil
	}
	openWindow = tmux.NewWindow
	insideTmux = tmux.Inside
)

// Launcher resolves packages against a Directory and starts them.
type Launcher struct {
	apps       Directory
	socketPath string
}

// New returns a launcher. socketPath selects the tmux server used for
// terminal applications; empty means the default socket.
func New(apps Directory, socketPath string) *Launcher {
	return &Launcher{apps: apps, socketPath: socketPath}
}

// LaunchApp starts the application identified by pkg.
func (l *Launcher) LaunchApp(pkg string) error {
	events.Action.Launch("app", pkg, "")
	app, ok := l.apps.Snapshot().Lookup(pkg)
	if !ok {
		return &NotFoundError{Package: pkg}
	}
	return l.run(app, app.Exec, "")
}

// LaunchURL opens url with the browser identified by pkg. Without a browser
// the URL goes to xdg-open.
func (l *Launcher) LaunchURL(pkg, url string) error {
	events.Action.Launch("url", pkg, url)
	if pkg == "" {
		return l.start([]string{"xdg-open", url}, "", false, "")
	}
	app, ok := l.apps.Snapshot().Lookup(pkg)
	if !ok {
		return &NotFoundError{Package: pkg}
	}
	return l.run(app, app.Exec, url)
}

// LaunchShortcut runs the desktop action id of pkg.
func (l *Launcher) LaunchShortcut(pkg, id string) error {
	events.Action.Launch("shortcut", pkg, id)
	app, ok := l.apps.Snapshot().Lookup(pkg)
	if !ok {
		return &NotFoundError{Package: pkg}
	}
	action, ok := app.Action(id)
	if !ok {
		return &NotFoundError{Package: pkg, Shortcut: id}
	}
	return l.run(app, action.Exec, "")
}

func (l *Launcher) run(app directory.App, line, url string) error {
	argv, err := ExpandExec(line, app, url)
	if err != nil {
		return fmt.Errorf("%s: %w", app.Package, err)
	}
	return l.start(argv, app.WorkDir, app.Terminal, app.Label)
}

func (l *Launcher) start(argv []string, dir string, terminal bool, name string) error {
	events.Action.Exec(argv, terminal)
	if terminal {
		if insideTmux() {
			return openWindow(l.socketPath, tmux.WindowOptions{Name: name, Dir: dir, Command: argv})
		}
		argv = append([]string{terminalEmulator(), "-e"}, argv...)
	}
	if err := startProcess(argv, dir); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	return nil
}

func terminalEmulator() string {
	if term := os.Getenv("TERMINAL"); term != "" {
		return term
	}
	return "x-terminal-emulator"
}
