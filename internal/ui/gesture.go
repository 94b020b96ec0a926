package ui

import (
	"fmt"

	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/atomicstack/pie-launcher/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// flashDuration keeps the haptic flash visible for a few frames.
const flashDuration = 12 * gesture.HapticPulse

type timerMsg struct {
	kind  gesture.TimerKind
	token uint64
}

type flashDoneMsg struct{ seq int }

type shortcutsLoadedMsg struct {
	pkg       string
	shortcuts []directory.Shortcut
}

// step feeds ev to the gesture machine and turns its effects into commands.
func (m *Model) step(ev gesture.Event) tea.Cmd {
	return m.stepWith(m.env(), ev)
}

func (m *Model) stepWith(env gesture.Env, ev gesture.Event) tea.Cmd {
	prev := m.gs
	next, effects := gesture.Step(env, prev, ev)
	m.gs = next
	m.traceTransition(prev, next)
	return m.runEffects(effects)
}

func (m *Model) traceTransition(prev, next gesture.State) {
	if !prev.Active() && next.Active() {
		m.session = uuid.NewString()
		events.Gesture.Start(m.session, next.Center.X, next.Center.Y, next.LayerID)
	}
	if next.Active() {
		if next.Hovered != nil && !menu.SameItem(prev.Hovered, next.Hovered) {
			events.Gesture.Hover(m.session, next.Hovered.ItemID())
		}
		if prev.Active() && prev.LayerID != next.LayerID {
			events.Gesture.Navigate(m.session, prev.LayerID, next.LayerID)
		}
	}
	switch {
	case prev.Popover == nil && next.Popover != nil:
		events.Popover.Open(m.session, len(next.Popover.Items))
	case prev.Popover != nil && next.Popover == nil:
		events.Popover.Dismiss(m.session)
	case next.Popover != nil:
		before, _ := prev.Popover.SelectedItem()
		after, ok := next.Popover.SelectedItem()
		if ok && (before == nil || before.PopoverID() != after.PopoverID()) {
			events.Popover.Select(m.session, after.PopoverID())
		}
	}
	if prev.Active() && !next.Active() {
		events.Gesture.End(m.session, next.Mode.String())
	}
	if prev.Mode != next.Mode {
		events.Gesture.Mode(next.Mode.String())
		if next.Mode == gesture.ModeAllApps {
			m.listing.SetFilter("", 0)
			m.listing.Cursor = 0
			m.listing.ViewportOffset = 0
		}
	}
}

func (m *Model) runEffects(effects []gesture.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, fx := range effects {
		switch e := fx.(type) {
		case gesture.Haptic:
			cmds = append(cmds, m.pulse())
		case gesture.ArmTimer:
			events.Gesture.Timer(m.session, e.Kind.String(), e.Token)
			cmds = append(cmds, m.after(e.Delay, timerMsg{kind: e.Kind, token: e.Token}))
		case gesture.CancelTimers:
			// a tick that still fires carries a stale token and is ignored
		case gesture.RequestShortcuts:
			cmds = append(cmds, m.loadShortcutsCmd(e.Package))
		case gesture.LaunchApp:
			pkg := e.Package
			cmds = append(cmds, m.launchCmd("app", pkg, "", func() error {
				return m.launcher.LaunchApp(pkg)
			}))
		case gesture.LaunchURL:
			pkg, url := e.Package, e.URL
			cmds = append(cmds, m.launchCmd("url", pkg, url, func() error {
				return m.launcher.LaunchURL(pkg, url)
			}))
		case gesture.LaunchShortcut:
			pkg, id := e.Package, e.ShortcutID
			cmds = append(cmds, m.launchCmd("shortcut", pkg, id, func() error {
				return m.launcher.LaunchShortcut(pkg, id)
			}))
		case gesture.OpenConfigurator:
			cmds = append(cmds, m.openEditor())
		default:
			panic(fmt.Sprintf("ui: unknown effect %T", fx))
		}
	}
	return tea.Batch(cmds...)
}

// pulse shows the haptic flash until the matching flashDoneMsg arrives.
func (m *Model) pulse() tea.Cmd {
	m.flash = true
	m.flashSeq++
	return m.after(flashDuration, flashDoneMsg{seq: m.flashSeq})
}

func (m *Model) handleFlashDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(flashDoneMsg)
	if !ok {
		return nil
	}
	if done.seq == m.flashSeq {
		m.flash = false
	}
	return nil
}

func (m *Model) handleTimerMsg(msg tea.Msg) tea.Cmd {
	t, ok := msg.(timerMsg)
	if !ok {
		return nil
	}
	return m.step(gesture.TimerFired{Kind: t.kind, Token: t.token})
}

func (m *Model) loadShortcutsCmd(pkg string) tea.Cmd {
	return func() tea.Msg {
		app, _ := m.directory.Snapshot().Lookup(pkg)
		return shortcutsLoadedMsg{pkg: pkg, shortcuts: app.Shortcuts()}
	}
}

func (m *Model) handleShortcutsLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(shortcutsLoadedMsg)
	if !ok {
		return nil
	}
	m.directory.SetShortcuts(loaded.pkg, loaded.shortcuts)
	events.Backend.Shortcuts(loaded.pkg, len(loaded.shortcuts))
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	p := m.pixel(mouse.X, mouse.Y)
	switch {
	case mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonWheelUp:
		return m.scrollListing(-1)
	case mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonWheelDown:
		return m.scrollListing(1)
	case mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft:
		m.pointer = pointer{down: true, col: mouse.X, row: mouse.Y}
		return m.step(gesture.Start{P: p})
	case mouse.Action == tea.MouseActionMotion && m.pointer.down:
		if mouse.X == m.pointer.col && mouse.Y == m.pointer.row {
			return nil
		}
		m.pointer.col, m.pointer.row = mouse.X, mouse.Y
		m.pointer.moved = true
		return m.step(gesture.Move{P: p})
	case mouse.Action == tea.MouseActionRelease && m.pointer.down:
		var cmds []tea.Cmd
		if mouse.X != m.pointer.col || mouse.Y != m.pointer.row {
			m.pointer.moved = true
			cmds = append(cmds, m.step(gesture.Move{P: p}))
		}
		moved := m.pointer.moved
		m.pointer = pointer{}
		if moved {
			cmds = append(cmds, m.step(gesture.End{}))
		} else {
			cmds = append(cmds, m.step(gesture.Fail{P: p}))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// openAllApps shows the listing as if a gesture had failed mid-screen.
func (m *Model) openAllApps() tea.Cmd {
	env := m.env()
	env.Options.AllAppsOnFail = true
	return m.stepWith(env, gesture.Fail{P: m.pixel(m.width/2, m.height/2)})
}

// openConfigurator fails a gesture on the top border band.
func (m *Model) openConfigurator() tea.Cmd {
	return m.step(gesture.Fail{P: m.pixel(m.width/2, 0)})
}
