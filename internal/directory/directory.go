// Package directory builds the application directory the launcher resolves
// layer entries against: installed desktop applications, their desktop
// actions (exposed as shortcuts) and the default web browser.
package directory

import (
	"slices"
	"strings"
)

// MaxShortcuts caps the number of shortcuts offered for a single app.
const MaxShortcuts = 6

// App is one installed application.
type App struct {
	Package    string   `json:"package"`
	Label      string   `json:"label"`
	Icon       string   `json:"icon,omitempty"`
	Accent     string   `json:"accent,omitempty"`
	Background string   `json:"background,omitempty"`
	Monochrome bool     `json:"monochrome,omitempty"`
	Exec       string   `json:"exec"`
	Terminal   bool     `json:"terminal,omitempty"`
	// Path is the desktop file location, WorkDir its Path= key.
	Path       string   `json:"path,omitempty"`
	WorkDir    string   `json:"workDir,omitempty"`
	Actions    []Action `json:"actions,omitempty"`
}

// Action is a desktop action declared by an application.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Exec  string `json:"exec"`
}

// Shortcut is the launcher-facing view of an app's desktop action.
type Shortcut struct {
	ID    string
	Label string
	Icon  string
}

// Snapshot is an immutable view of the directory at one point in time.
type Snapshot struct {
	Apps           []App  `json:"apps"`
	DefaultBrowser string `json:"defaultBrowser,omitempty"`
}

// Lookup finds an app by package identifier.
func (s Snapshot) Lookup(pkg string) (App, bool) {
	for _, app := range s.Apps {
		if app.Package == pkg {
			return app, true
		}
	}
	return App{}, false
}

// Clone returns a deep copy so callers can hand snapshots across goroutines.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{DefaultBrowser: s.DefaultBrowser}
	if len(s.Apps) == 0 {
		return out
	}
	out.Apps = make([]App, len(s.Apps))
	for i, app := range s.Apps {
		app.Actions = slices.Clone(app.Actions)
		out.Apps[i] = app
	}
	return out
}

// Shortcuts lists at most MaxShortcuts shortcuts for the app.
func (a App) Shortcuts() []Shortcut {
	out := make([]Shortcut, 0, min(len(a.Actions), MaxShortcuts))
	for _, action := range a.Actions {
		if len(out) == MaxShortcuts {
			break
		}
		out = append(out, Shortcut{ID: action.ID, Label: action.Label, Icon: action.Icon})
	}
	return out
}

// Action returns the desktop action with the given id.
func (a App) Action(id string) (Action, bool) {
	for _, action := range a.Actions {
		if action.ID == id {
			return action, true
		}
	}
	return Action{}, false
}

func sortApps(apps []App) {
	slices.SortStableFunc(apps, func(a, b App) int {
		if c := strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label)); c != 0 {
			return c
		}
		return strings.Compare(a.Package, b.Package)
	})
}
