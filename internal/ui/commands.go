package ui

import (
	"fmt"

	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/atomicstack/pie-launcher/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// launchResultMsg reports the outcome of a launch request.
type launchResultMsg struct {
	Err  error
	Info string
}

func (m *Model) launchCmd(kind, pkg, target string, run func() error) tea.Cmd {
	events.Action.Launch(kind, pkg, target)
	label := pkg
	if app, ok := m.directory.Snapshot().Lookup(pkg); ok && app.Label != "" {
		label = app.Label
	}
	if target != "" {
		label = fmt.Sprintf("%s (%s)", label, target)
	}
	if m.launcher == nil {
		return func() tea.Msg {
			return launchResultMsg{Err: fmt.Errorf("no launcher configured for %s", label)}
		}
	}
	return m.bus.Execute(command.Request{
		ID:    "launch:" + kind,
		Label: label,
		Run: func() tea.Msg {
			if err := run(); err != nil {
				return launchResultMsg{Err: err}
			}
			return launchResultMsg{Info: "Launched " + label}
		},
	})
}

func (m *Model) handleLaunchResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(launchResultMsg)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.infoMsg = ""
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	m.setInfo(result.Info)
	events.Action.Success(result.Info)
	return tea.Quit
}
