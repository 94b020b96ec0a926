package ui

import (
	"unicode"

	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleListingKey drives the all-apps listing from the keyboard.
func (m *Model) handleListingKey(msg tea.KeyMsg) tea.Cmd {
	if handled := m.handleTextInput(msg); handled {
		return nil
	}
	columns := m.metrics.GridColumns
	rows := m.gridRows()
	moved := false
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.listing.Filter != "" {
			m.listing.SetFilter("", 0)
			events.Filter.Cleared()
			m.syncListing()
			return nil
		}
		return m.step(gesture.Dismiss{})
	case key.Matches(msg, m.keys.Launch):
		return m.launchHighlighted()
	case key.Matches(msg, m.keys.Up):
		moved = m.listing.MoveCursorBy(-columns)
	case key.Matches(msg, m.keys.Down):
		moved = m.listing.MoveCursorBy(columns)
	case key.Matches(msg, m.keys.Next):
		moved = m.listing.MoveCursorBy(1)
	case key.Matches(msg, m.keys.Prev):
		moved = m.listing.MoveCursorBy(-1)
	case key.Matches(msg, m.keys.PageUp):
		moved = m.listing.MoveCursorPageUp(columns, rows)
	case key.Matches(msg, m.keys.PageDown):
		moved = m.listing.MoveCursorPageDown(columns, rows)
	case key.Matches(msg, m.keys.Home):
		moved = m.listing.MoveCursorHome()
	case key.Matches(msg, m.keys.End):
		moved = m.listing.MoveCursorEnd()
	}
	if moved {
		m.syncListing()
	}
	return nil
}

// launchHighlighted taps the highlighted cell so the launch goes through the
// same path as a pointer tap.
func (m *Model) launchHighlighted() tea.Cmd {
	app, ok := m.listing.Selected()
	if !ok {
		return nil
	}
	m.syncListing()
	env := m.env()
	for _, cell := range gesture.Render(env, m.gs).Listing {
		if cell.App.Package != app.Package {
			continue
		}
		return tea.Batch(
			m.stepWith(env, gesture.Start{P: cell.At}),
			m.stepWith(env, gesture.End{}),
		)
	}
	return nil
}

func (m *Model) scrollListing(delta int) tea.Cmd {
	if m.gs.Mode != gesture.ModeAllApps {
		return nil
	}
	if m.listing.MoveCursorBy(delta * m.metrics.GridColumns) {
		m.syncListing()
	}
	return nil
}

// syncListing keeps the highlighted row on screen.
func (m *Model) syncListing() {
	m.listing.EnsureCursorVisible(m.metrics.GridColumns, m.gridRows())
	if app, ok := m.listing.Selected(); ok {
		events.Filter.Highlight(app.Package, m.listing.Cursor)
	}
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	l := m.listing
	switch msg.String() {
	case "ctrl+u":
		if l.Filter == "" {
			return false
		}
		l.SetFilter("", 0)
		m.clearMessages()
		events.Filter.Cleared()
		m.syncListing()
		return true
	case "ctrl+w":
		if !l.DeleteFilterWordBackward() {
			return false
		}
		m.clearMessages()
		events.Filter.WordBackspace(l.Filter)
		m.syncListing()
		return true
	case "ctrl+a":
		if !l.MoveFilterCursorStart() {
			return false
		}
		events.Filter.Cursor(l.FilterCursor)
		return true
	case "ctrl+e":
		if !l.MoveFilterCursorEnd() {
			return false
		}
		events.Filter.Cursor(l.FilterCursor)
		return true
	case "alt+b":
		if !l.MoveFilterCursorWordBackward() {
			return false
		}
		events.Filter.Cursor(l.FilterCursor)
		return true
	case "alt+f":
		if !l.MoveFilterCursorWordForward() {
			return false
		}
		events.Filter.Cursor(l.FilterCursor)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !l.DeleteFilterRuneBackward() {
			return false
		}
		m.clearMessages()
		events.Filter.Backspace(l.Filter)
		m.syncListing()
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		if !l.MoveFilterCursorRuneBackward() {
			return false
		}
		events.Filter.Cursor(l.FilterCursor)
		return true
	case tea.KeyRight:
		if !l.MoveFilterCursorRuneForward() {
			return false
		}
		events.Filter.Cursor(l.FilterCursor)
		return true
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if !m.listing.InsertFilterText(text) {
		return false
	}
	m.clearMessages()
	events.Filter.Append(m.listing.Filter)
	m.syncListing()
	return true
}
