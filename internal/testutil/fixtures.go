package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/menu"
)

// WriteDesktopFile writes a desktop entry named id.desktop under dir and
// returns its path. Lines are joined below a [Desktop Entry] header.
func WriteDesktopFile(t *testing.T, dir, id string, lines ...string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, id+".desktop")
	body := "[Desktop Entry]\n" + strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Apps returns a small directory: Alpha, Bravo (with two desktop actions)
// and Firefox as the default browser.
func Apps() directory.Snapshot {
	return directory.Snapshot{
		Apps: []directory.App{
			{Package: "pkg.a", Label: "Alpha", Exec: "alpha", Accent: "#FF0000"},
			{Package: "pkg.b", Label: "Bravo", Exec: "bravo %U", Actions: []directory.Action{
				{ID: "new-window", Label: "New Window", Exec: "bravo --new-window"},
				{ID: "private", Label: "Private", Exec: "bravo --private"},
			}},
			{Package: "org.mozilla.firefox", Label: "Firefox", Exec: "firefox %u"},
		},
		DefaultBrowser: "org.mozilla.firefox",
	}
}

// Layers returns a base layer "Home" holding entries and a second layer
// "Work" holding Bravo.
func Layers(entries ...menu.Entry) []menu.Layer {
	return []menu.Layer{
		{ID: 1, Name: "Home", Color: "#AEAEAE", IsBaseLayer: true, Items: entries},
		{ID: 2, Name: "Work", Color: "#EAEAEA", Items: []menu.Entry{menu.AppRef("pkg.b")}},
	}
}

// Launch is one recorded launcher call.
type Launch struct {
	Kind    string
	Package string
	Target  string
}

// RecordingLauncher records launches instead of starting processes. Err, when
// set, is returned from every call.
type RecordingLauncher struct {
	mu       sync.Mutex
	launches []Launch
	Err      error
}

var ErrLaunch = errors.New("launch failed")

func (l *RecordingLauncher) record(kind, pkg, target string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launches = append(l.launches, Launch{Kind: kind, Package: pkg, Target: target})
	return l.Err
}

func (l *RecordingLauncher) LaunchApp(pkg string) error {
	return l.record("app", pkg, "")
}

func (l *RecordingLauncher) LaunchURL(pkg, url string) error {
	return l.record("url", pkg, url)
}

func (l *RecordingLauncher) LaunchShortcut(pkg, id string) error {
	return l.record("shortcut", pkg, id)
}

// Launches returns a copy of the recorded calls.
func (l *RecordingLauncher) Launches() []Launch {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Launch(nil), l.launches...)
}
