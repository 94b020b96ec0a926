package state

import (
	"slices"
	"sync"

	"github.com/atomicstack/pie-launcher/internal/directory"
)

// DirectoryStore holds the latest application snapshot and the shortcuts
// looked up so far. It is read from launch commands running off the UI
// goroutine, so access is synchronised.
type DirectoryStore interface {
	Snapshot() directory.Snapshot
	SetSnapshot(directory.Snapshot)
	Shortcuts() map[string][]directory.Shortcut
	SetShortcuts(pkg string, shortcuts []directory.Shortcut)
}

type directoryStore struct {
	mu        sync.RWMutex
	snapshot  directory.Snapshot
	shortcuts map[string][]directory.Shortcut
}

func NewDirectoryStore() DirectoryStore {
	return &directoryStore{shortcuts: map[string][]directory.Shortcut{}}
}

func (d *directoryStore) Snapshot() directory.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot.Clone()
}

// SetSnapshot replaces the snapshot and drops cached shortcuts of apps that
// disappeared or whose actions changed.
func (d *directoryStore) SetSnapshot(snap directory.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot = snap.Clone()
	for pkg, cached := range d.shortcuts {
		if app, ok := d.snapshot.Lookup(pkg); !ok || !slices.Equal(app.Shortcuts(), cached) {
			delete(d.shortcuts, pkg)
		}
	}
}

func (d *directoryStore) Shortcuts() map[string][]directory.Shortcut {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string][]directory.Shortcut, len(d.shortcuts))
	for pkg, list := range d.shortcuts {
		out[pkg] = append([]directory.Shortcut(nil), list...)
	}
	return out
}

func (d *directoryStore) SetShortcuts(pkg string, shortcuts []directory.Shortcut) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shortcuts[pkg] = append([]directory.Shortcut{}, shortcuts...)
}
