// Package gesture implements the pie launcher's interaction model as a pure
// state machine. Frontends translate raw pointer input into Events, feed them
// to Step together with an immutable Env snapshot, execute the returned
// Effects (haptics, timers, launches) and draw the View produced by Render.
//
// Timers are never run by this package. ArmTimer effects carry a generation
// token; the frontend delivers TimerFired with that token once the delay has
// elapsed, and Step ignores any token that is no longer pending. Every reset
// and hover change invalidates the pending token, so a timer that fires after
// the session moved on is always a no-op.
package gesture

import (
	"time"

	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/menu"
)

const (
	// HapticPulse is the vibration length requested by Haptic effects.
	HapticPulse = 10 * time.Millisecond
	// FadeDuration is the fade in/out time of the ring.
	FadeDuration = 188 * time.Millisecond

	MenuWidth     = 188.0
	MenuRowHeight = 48.0
	// MenuSlackX and MenuSlackY widen the popover hit area before it dismisses.
	MenuSlackX = 50.0
	MenuSlackY = 80.0
	// MenuOffset separates the popover from the item it belongs to.
	MenuOffset = 40.0
)

// TimerKind identifies what a long hold does when it completes.
type TimerKind int

const (
	TimerNone TimerKind = iota
	TimerNavigate
	TimerPopover
)

func (k TimerKind) String() string {
	switch k {
	case TimerNone:
		return "none"
	case TimerNavigate:
		return "navigate"
	case TimerPopover:
		return "popover"
	default:
		return "unknown"
	}
}

// Timing holds the long-hold delays.
type Timing struct {
	Navigate time.Duration
	Popover  time.Duration
}

// DefaultTiming returns the stock long-hold delays.
func DefaultTiming() Timing {
	return Timing{Navigate: 300 * time.Millisecond, Popover: 650 * time.Millisecond}
}

// Mode is the top-level surface the launcher is showing.
type Mode int

const (
	ModePie Mode = iota
	ModeAllApps
	ModeCustomizing
)

func (m Mode) String() string {
	switch m {
	case ModePie:
		return "pie"
	case ModeAllApps:
		return "all-apps"
	case ModeCustomizing:
		return "customizing"
	default:
		return "unknown"
	}
}

// Options toggles behaviour variants.
type Options struct {
	// LinkPopover opens a popover of the linked layer's apps on a long hold
	// instead of navigating into it.
	LinkPopover bool
	// BrowserPopover opens the browser actions as a popover on a long hold of
	// the default browser instead of navigating to the browser layer.
	BrowserPopover bool
	// AllAppsOnFail shows the flat app listing when a gesture fails away from
	// the border band.
	AllAppsOnFail bool
}

// Env is the read-only world a single Step is evaluated against.
type Env struct {
	Registry       *menu.Registry
	Directory      directory.Snapshot
	BrowserActions []menu.BrowserAction
	// Shortcuts caches shortcut lookups by package. A missing key means the
	// lookup has not completed yet.
	Shortcuts map[string][]directory.Shortcut
	// Listing is the (possibly filtered) flat app list shown in ModeAllApps.
	Listing []directory.App
	Screen  geometry.Screen
	Metrics geometry.Metrics
	Timing  Timing
	Options Options
}

// Timer is the single pending long-hold timer.
type Timer struct {
	Kind   TimerKind
	Token  uint64
	ItemID string
}

// Popover is the open long-press menu.
type Popover struct {
	Anchor   geometry.Point
	Items    []menu.PopoverItem
	Selected int
}

// Bounds returns the exact rectangle covered by the popover rows.
func (p *Popover) Bounds() geometry.Rect {
	return geometry.Rect{X: p.Anchor.X, Y: p.Anchor.Y, Width: MenuWidth, Height: MenuRowHeight * float64(len(p.Items))}
}

// SelectedItem returns the highlighted row, if any.
func (p *Popover) SelectedItem() (menu.PopoverItem, bool) {
	if p == nil || p.Selected < 0 || p.Selected >= len(p.Items) {
		return nil, false
	}
	return p.Items[p.Selected], true
}

// State is the session state of one gesture. The zero value is not usable;
// start from NewState.
type State struct {
	Mode    Mode
	Center  *geometry.Point
	Touch   *geometry.Point
	LayerID int
	Hovered menu.Item
	Popover *Popover
	Pending Timer
	// Token is the generation counter handed out to armed timers.
	Token uint64
}

// NewState returns an idle session on the base layer.
func NewState(env Env) State {
	return State{Mode: ModePie, LayerID: env.Registry.Base()}
}

// Active reports whether a ring is showing.
func (s State) Active() bool {
	return s.Mode == ModePie && s.Center != nil
}

// Event is an input to Step.
type Event interface{ isEvent() }

// Start begins a gesture at P.
type Start struct{ P geometry.Point }

// Move reports the contact's new position.
type Move struct{ P geometry.Point }

// End releases the contact.
type End struct{}

// Fail aborts the gesture at P without a regular release.
type Fail struct{ P geometry.Point }

// TimerFired delivers an armed timer back to the machine.
type TimerFired struct {
	Kind  TimerKind
	Token uint64
}

// Dismiss leaves the all-apps listing or the configurator.
type Dismiss struct{}

func (Start) isEvent()      {}
func (Move) isEvent()       {}
func (End) isEvent()        {}
func (Fail) isEvent()       {}
func (TimerFired) isEvent() {}
func (Dismiss) isEvent()    {}

// Effect is a side effect requested by Step.
type Effect interface{ isEffect() }

// Haptic requests a short vibration pulse.
type Haptic struct{}

// ArmTimer asks the frontend to deliver TimerFired{Kind, Token} after Delay.
// It replaces any previously armed timer.
type ArmTimer struct {
	Kind  TimerKind
	Delay time.Duration
	Token uint64
}

// CancelTimers drops any armed timer.
type CancelTimers struct{}

// RequestShortcuts asks for the shortcuts of Package to be looked up and
// cached in Env.Shortcuts.
type RequestShortcuts struct{ Package string }

// LaunchApp starts an application.
type LaunchApp struct{ Package string }

// LaunchURL opens URL with the browser identified by Package.
type LaunchURL struct {
	Package string
	URL     string
}

// LaunchShortcut runs a shortcut of an application.
type LaunchShortcut struct {
	Package    string
	ShortcutID string
}

// OpenConfigurator shows the layer editor.
type OpenConfigurator struct{}

func (Haptic) isEffect()           {}
func (ArmTimer) isEffect()         {}
func (CancelTimers) isEffect()     {}
func (RequestShortcuts) isEffect() {}
func (LaunchApp) isEffect()        {}
func (LaunchURL) isEffect()        {}
func (LaunchShortcut) isEffect()   {}
func (OpenConfigurator) isEffect() {}
