package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/pie-launcher/internal/backend"
	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const cacheWriteTimeout = 2 * time.Second

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

type cacheSavedMsg struct {
	err error
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
	}

	previous := m.directory.Snapshot()
	res := m.dispatcher.Handle(evt)
	var cmd tea.Cmd

	if res.DirectoryUpdated {
		current := m.directory.Snapshot()
		m.listing.UpdateApps(current.Apps)
		if m.gs.Mode == gesture.ModeAllApps {
			m.syncListing()
		}
		if !reflect.DeepEqual(previous, current) {
			cmd = m.saveCacheCmd(current)
		}
	}
	if res.ConfigUpdated && !m.gs.Active() && m.gs.Mode == gesture.ModePie {
		m.gs.LayerID = m.config.Registry().Base()
	}

	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
	return cmd
}

func (m *Model) saveCacheCmd(snap directory.Snapshot) tea.Cmd {
	if m.store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()
		return cacheSavedMsg{err: m.store.SaveAppListCache(ctx, snap)}
	}
}

func (m *Model) handleCacheSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(cacheSavedMsg)
	if !ok || saved.err == nil {
		return nil
	}
	events.Backend.Error(saved.err)
	m.backendLastErr = saved.err.Error()
	return nil
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
