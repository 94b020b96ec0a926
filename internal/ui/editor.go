package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atomicstack/pie-launcher/internal/format/table"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/atomicstack/pie-launcher/internal/menu"
	"github.com/atomicstack/pie-launcher/internal/store"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	layerWriteTimeout = 2 * time.Second
	panelMinWidth     = 24
)

// editor edits the layer configuration as JSON next to a list of the
// installed desktop ids.
type editor struct {
	area   textarea.Model
	err    string
	saving bool
	width  int
	height int
}

type layersSavedMsg struct {
	layers []menu.Layer
	err    error
}

func newEditor(text string, width, height int) *editor {
	area := textarea.New()
	area.CharLimit = 0
	area.MaxHeight = 0
	area.ShowLineNumbers = true
	area.Placeholder = "[]"
	area.SetValue(text)
	e := &editor{area: area}
	e.resize(width, height)
	return e
}

func (e *editor) resize(width, height int) {
	e.width, e.height = width, height
	e.area.SetWidth(max(width-e.panelWidth()-2, 20))
	e.area.SetHeight(max(height-4, 3))
}

func (e *editor) panelWidth() int {
	return max(e.width/3, panelMinWidth)
}

// openEditor shows the current layers in the editor.
func (m *Model) openEditor() tea.Cmd {
	layers := m.config.Registry().Layers()
	text, err := menu.FormatLayers(layers)
	if err != nil {
		m.errMsg = err.Error()
		return m.step(gesture.Dismiss{})
	}
	m.editor = newEditor(text, m.width, m.height)
	events.Editor.Open(len(layers))
	return m.editor.area.Focus()
}

// updateEditor routes msg to the open editor. Messages the editor does not
// own fall through to the regular handlers.
func (m *Model) updateEditor(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			return true, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.closeEditor()
			events.Editor.Cancel()
			return true, m.step(gesture.Dismiss{})
		case key.Matches(msg, m.keys.Save):
			return true, m.saveEditor()
		}
		var cmd tea.Cmd
		m.editor.area, cmd = m.editor.area.Update(msg)
		m.editor.err = ""
		return true, cmd
	case tea.MouseMsg:
		return true, nil
	case tea.WindowSizeMsg, layersSavedMsg, backendEventMsg, backendDoneMsg, cacheSavedMsg,
		flashDoneMsg, launchResultMsg, timerMsg, shortcutsLoadedMsg:
		return false, nil
	}
	var cmd tea.Cmd
	m.editor.area, cmd = m.editor.area.Update(msg)
	return true, cmd
}

func (m *Model) saveEditor() tea.Cmd {
	if m.editor.saving {
		return nil
	}
	layers, err := menu.ParseLayers([]byte(m.editor.area.Value()))
	if err != nil {
		m.editor.err = err.Error()
		events.Config.Reject(store.KeyLayers, err)
		return nil
	}
	m.editor.saving = true
	persister := m.store
	return func() tea.Msg {
		if persister == nil {
			return layersSavedMsg{layers: layers}
		}
		ctx, cancel := context.WithTimeout(context.Background(), layerWriteTimeout)
		defer cancel()
		return layersSavedMsg{layers: layers, err: persister.SaveLayers(ctx, layers)}
	}
}

func (m *Model) handleLayersSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(layersSavedMsg)
	if !ok {
		return nil
	}
	if saved.err != nil {
		if m.editor != nil {
			m.editor.saving = false
			m.editor.err = saved.err.Error()
		}
		events.Config.Reject(store.KeyLayers, saved.err)
		return nil
	}
	m.config.SetLayers(saved.layers)
	events.Config.Save(store.KeyLayers)
	events.Editor.Save(len(saved.layers))
	m.closeEditor()
	m.setInfo("Layers saved")
	return m.step(gesture.Dismiss{})
}

func (m *Model) closeEditor() {
	if m.editor == nil {
		return
	}
	m.editor.area.Blur()
	m.editor = nil
}

func (m *Model) editorView() string {
	e := m.editor
	title := "Edit layers"
	if styles.EditorTitle != nil {
		title = styles.EditorTitle.Render(title)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, e.area.View(), m.appPanel(e.panelWidth(), e.height-4))
	lines := []string{title, body}
	if e.err != "" {
		msg := wordwrap.String(e.err, max(e.width-2, 10))
		if styles.Error != nil {
			msg = styles.Error.Render(msg)
		}
		lines = append(lines, msg)
	}
	lines = append(lines, m.help.ShortHelpView(m.shortHelp()))
	return strings.Join(lines, "\n")
}

// appPanel lists installed desktop ids so they can be typed into layers.
func (m *Model) appPanel(width, height int) string {
	apps := m.directory.Snapshot().Apps
	rows := make([][]string, 0, len(apps)+1)
	rows = append(rows, []string{"ID", "Label"})
	for _, app := range apps {
		rows = append(rows, []string{app.Package, app.Label})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = table.Truncate(line, width-2)
	}
	text := strings.Join(lines, "\n")
	if styles.EditorPanel != nil {
		text = styles.EditorPanel.Render(text)
	}
	return text
}
