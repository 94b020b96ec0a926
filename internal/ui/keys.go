package ui

import (
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit     key.Binding
	AllApps  key.Binding
	Edit     key.Binding
	Launch   key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Save     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		AllApps:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all apps")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit layers")),
		Launch:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "launch")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "row up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "row down")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	}
}

// shortHelp lists the bindings that apply in the current mode.
func (m *Model) shortHelp() []key.Binding {
	switch {
	case m.editor != nil:
		return []key.Binding{m.keys.Save, m.keys.Back}
	case m.gs.Mode == gesture.ModeAllApps:
		return []key.Binding{m.keys.Launch, m.keys.Next, m.keys.Down, m.keys.Back}
	default:
		return []key.Binding{m.keys.AllApps, m.keys.Edit, m.keys.Quit}
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.gs.Mode == gesture.ModeAllApps {
		return m.handleListingKey(keyMsg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		if m.gs.Active() {
			env := m.env()
			env.Options.AllAppsOnFail = false
			return m.stepWith(env, gesture.Fail{P: m.pixel(m.width/2, m.height/2)})
		}
		if m.errMsg != "" || m.infoMsg != "" {
			m.clearMessages()
			return nil
		}
		return tea.Quit
	case key.Matches(keyMsg, m.keys.AllApps):
		return m.openAllApps()
	case key.Matches(keyMsg, m.keys.Edit):
		return m.openConfigurator()
	}
	return nil
}
