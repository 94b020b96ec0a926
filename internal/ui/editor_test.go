package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

const mainLayerJSON = `[{"id":1,"name":"Main","color":"#123456","isBaseLayer":true,"items":["pkg.a"]}]`

func TestBorderTapOpensEditor(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(press(20, 0))
	f.h.Send(release(20, 0))
	m := f.h.Model()
	if m.editor == nil {
		t.Fatalf("expected the editor to open after a border tap")
	}
	if m.gs.Mode != gesture.ModeCustomizing {
		t.Fatalf("expected customizing mode, got %v", m.gs.Mode)
	}
	view := f.h.View()
	if !strings.Contains(view, "Edit layers") {
		t.Fatalf("expected editor title in view:\n%s", view)
	}
	if !strings.Contains(view, "pkg.b") {
		t.Fatalf("expected installed ids in the side panel:\n%s", view)
	}
}

func TestEditorSaveReplacesLayers(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("e"))
	m := f.h.Model()
	if m.editor == nil {
		t.Fatalf("expected the editor to open")
	}
	if !strings.Contains(m.editor.area.Value(), `"Home"`) {
		t.Fatalf("expected current layers in the editor, got %q", m.editor.area.Value())
	}
	m.editor.area.SetValue(mainLayerJSON)
	f.h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	f.store.mu.Lock()
	saved := f.store.layers
	f.store.mu.Unlock()
	if len(saved) != 1 || len(saved[0]) != 1 || saved[0][0].Name != "Main" {
		t.Fatalf("expected one save of the Main layer, got %+v", saved)
	}
	if m.editor != nil {
		t.Fatalf("expected the editor to close after saving")
	}
	if got := m.config.Registry().Layers(); len(got) != 1 || got[0].Color != "#123456" {
		t.Fatalf("expected registry updated, got %+v", got)
	}
	if m.infoMsg != "Layers saved" {
		t.Fatalf("expected save notice, got %q", m.infoMsg)
	}
	if m.gs.Mode != gesture.ModePie {
		t.Fatalf("expected pie mode after saving, got %v", m.gs.Mode)
	}
}

func TestEditorRejectsInvalidLayers(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("e"))
	m := f.h.Model()
	m.editor.area.SetValue("[]")
	f.h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.editor == nil || m.editor.err == "" {
		t.Fatalf("expected a validation error in the editor")
	}
	if !strings.Contains(f.h.View(), "at least one layer") {
		t.Fatalf("expected the error in the view:\n%s", f.h.View())
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if len(f.store.layers) != 0 {
		t.Fatalf("expected nothing saved, got %d", len(f.store.layers))
	}
}

func TestEditorSaveFailureKeepsEditorOpen(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.store.err = errors.New("disk full")
	f.h.Send(runes("e"))
	m := f.h.Model()
	m.editor.area.SetValue(mainLayerJSON)
	f.h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.editor == nil || m.editor.err != "disk full" || m.editor.saving {
		t.Fatalf("expected the editor to stay open with the write error, got %+v", m.editor)
	}
	if got := m.config.Registry().Layers(); got[0].Name != "Home" {
		t.Fatalf("expected registry unchanged, got %+v", got)
	}
}

func TestEditorEscapeCancels(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("e"))
	f.h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	m := f.h.Model()
	if m.editor != nil {
		t.Fatalf("expected the editor to close")
	}
	if m.gs.Mode != gesture.ModePie {
		t.Fatalf("expected pie mode, got %v", m.gs.Mode)
	}
	if f.h.Quit() {
		t.Fatalf("closing the editor must not quit")
	}
}

func TestEditorSwallowsMouse(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("e"))
	f.h.Send(press(19, 19))
	if f.h.Model().gs.Active() {
		t.Fatalf("expected pointer input to be ignored while editing")
	}
}
