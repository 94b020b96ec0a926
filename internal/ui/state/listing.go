// Package state holds the keyboard-driven state of the all-apps listing:
// the filter query, the highlighted app and the visible grid window.
package state

import (
	"slices"

	"github.com/atomicstack/pie-launcher/internal/directory"
)

// Listing is the flat app grid shown when a gesture fails. Cursor indexes
// Items; ViewportOffset counts grid rows scrolled off the top.
type Listing struct {
	Items          []directory.App
	Full           []directory.App
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewListing constructs a Listing over apps.
func NewListing(apps []directory.App) *Listing {
	l := &Listing{LastCursor: -1}
	l.UpdateApps(apps)
	return l
}

// UpdateApps replaces the installed apps while keeping the filter and, when
// the highlighted app survives, the highlight.
func (l *Listing) UpdateApps(apps []directory.App) {
	prev, hadPrev := l.Selected()
	l.Full = slices.Clone(apps)
	l.applyFilter()
	if hadPrev {
		if idx := l.IndexOf(prev.Package); idx >= 0 {
			l.Cursor = idx
		}
	}
	if l.ViewportOffset < 0 || len(l.Items) == 0 {
		l.ViewportOffset = 0
	}
}

// IndexOf returns the position of pkg among the filtered items.
func (l *Listing) IndexOf(pkg string) int {
	if pkg == "" {
		return -1
	}
	return slices.IndexFunc(l.Items, func(app directory.App) bool {
		return app.Package == pkg
	})
}

// Selected returns the highlighted app.
func (l *Listing) Selected() (directory.App, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return directory.App{}, false
	}
	return l.Items[l.Cursor], true
}

// Window returns the apps of the rows currently scrolled into view.
func (l *Listing) Window(columns, rows int) []directory.App {
	if columns <= 0 || rows <= 0 {
		return nil
	}
	start := min(l.ViewportOffset*columns, len(l.Items))
	end := min(start+columns*rows, len(l.Items))
	return l.Items[start:end]
}
