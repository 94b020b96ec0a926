package touch

import (
	"fmt"
	"slices"
	"time"

	"github.com/atomicstack/pie-launcher/internal/backend"
	"github.com/atomicstack/pie-launcher/internal/data/dispatcher"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/logging"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/atomicstack/pie-launcher/internal/state"
	"github.com/google/uuid"
)

// Launcher starts applications on behalf of the pie.
type Launcher interface {
	LaunchApp(pkg string) error
	LaunchURL(pkg, url string) error
	LaunchShortcut(pkg, id string) error
}

// Options configures a Controller.
type Options struct {
	Screen    geometry.Screen
	Metrics   geometry.Metrics
	Timing    gesture.Timing
	Behaviour gesture.Options
	Directory state.DirectoryStore
	Config    state.ConfigStore
	Launcher  Launcher
	// OnHaptic is called for every Haptic effect.
	OnHaptic func()
}

// deadline is an armed long-hold timer.
type deadline struct {
	kind  gesture.TimerKind
	token uint64
	due   time.Time
}

// Controller feeds sampled pointer state to the gesture machine and runs its
// effects. Timers are deadlines checked on every Tick.
type Controller struct {
	opts       Options
	dispatcher *dispatcher.Dispatcher
	gs         gesture.State
	session    string
	timers     []deadline

	down  bool
	moved bool
	last  geometry.Point

	status string
}

// NewController returns an idle controller on the base layer.
func NewController(opts Options) *Controller {
	if opts.Directory == nil {
		opts.Directory = state.NewDirectoryStore()
	}
	if opts.Metrics == (geometry.Metrics{}) {
		opts.Metrics = geometry.DefaultMetrics()
	}
	if opts.Timing == (gesture.Timing{}) {
		opts.Timing = gesture.DefaultTiming()
	}
	c := &Controller{
		opts:       opts,
		dispatcher: dispatcher.New(opts.Directory, opts.Config),
	}
	c.gs = gesture.NewState(c.env())
	return c
}

func (c *Controller) env() gesture.Env {
	snap := c.opts.Directory.Snapshot()
	return gesture.Env{
		Registry:       c.opts.Config.Registry(),
		Directory:      snap,
		BrowserActions: c.opts.Config.BrowserActions(),
		Shortcuts:      c.opts.Directory.Shortcuts(),
		Listing:        snap.Apps,
		Screen:         c.opts.Screen,
		Metrics:        c.opts.Metrics,
		Timing:         c.opts.Timing,
		Options:        c.opts.Behaviour,
	}
}

// Resize updates the screen the ring is kept inside.
func (c *Controller) Resize(screen geometry.Screen) {
	c.opts.Screen = screen
}

// Pointer reports the sampled contact. A release without any movement is a
// tap and fails the gesture at the contact point.
func (c *Controller) Pointer(down bool, p geometry.Point, now time.Time) {
	switch {
	case down && !c.down:
		c.down, c.moved, c.last = true, false, p
		c.step(gesture.Start{P: p}, now)
	case down && p != c.last:
		c.moved, c.last = true, p
		c.step(gesture.Move{P: p}, now)
	case !down && c.down:
		c.down = false
		if c.moved {
			c.step(gesture.End{}, now)
		} else {
			c.step(gesture.Fail{P: c.last}, now)
		}
	}
}

// Tick delivers every timer that is due at now.
func (c *Controller) Tick(now time.Time) {
	for len(c.timers) > 0 {
		idx := -1
		for i, t := range c.timers {
			if !t.due.After(now) && (idx < 0 || t.due.Before(c.timers[idx].due)) {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		t := c.timers[idx]
		c.timers = slices.Delete(c.timers, idx, idx+1)
		c.step(gesture.TimerFired{Kind: t.kind, Token: t.token}, now)
	}
}

// Dismiss returns to the idle pie.
func (c *Controller) Dismiss(now time.Time) {
	c.down = false
	c.step(gesture.Dismiss{}, now)
}

// Apply hands a backend event to the stores.
func (c *Controller) Apply(evt backend.Event) {
	res := c.dispatcher.Handle(evt)
	if res.ConfigUpdated && !c.gs.Active() && c.gs.Mode == gesture.ModePie {
		c.gs.LayerID = c.opts.Config.Registry().Base()
	}
}

// View renders the current state.
func (c *Controller) View() gesture.View {
	return gesture.Render(c.env(), c.gs)
}

// State returns the gesture state.
func (c *Controller) State() gesture.State {
	return c.gs
}

// Status is the last launch result or hint.
func (c *Controller) Status() string {
	return c.status
}

func (c *Controller) step(ev gesture.Event, now time.Time) {
	prev := c.gs
	next, effects := gesture.Step(c.env(), prev, ev)
	c.gs = next
	if !prev.Active() && next.Active() {
		c.session = uuid.NewString()
		events.Gesture.Start(c.session, next.Center.X, next.Center.Y, next.LayerID)
	}
	if prev.Active() && !next.Active() {
		events.Gesture.End(c.session, next.Mode.String())
	}
	c.run(effects, now)
}

func (c *Controller) run(effects []gesture.Effect, now time.Time) {
	for _, fx := range effects {
		switch e := fx.(type) {
		case gesture.Haptic:
			if c.opts.OnHaptic != nil {
				c.opts.OnHaptic()
			}
		case gesture.ArmTimer:
			events.Gesture.Timer(c.session, e.Kind.String(), e.Token)
			c.timers = append(c.timers, deadline{kind: e.Kind, token: e.Token, due: now.Add(e.Delay)})
		case gesture.CancelTimers:
			c.timers = c.timers[:0]
		case gesture.RequestShortcuts:
			app, _ := c.opts.Directory.Snapshot().Lookup(e.Package)
			shortcuts := app.Shortcuts()
			c.opts.Directory.SetShortcuts(e.Package, shortcuts)
			events.Backend.Shortcuts(e.Package, len(shortcuts))
		case gesture.LaunchApp:
			c.launch("app", e.Package, "", func(l Launcher) error { return l.LaunchApp(e.Package) })
		case gesture.LaunchURL:
			c.launch("url", e.Package, e.URL, func(l Launcher) error { return l.LaunchURL(e.Package, e.URL) })
		case gesture.LaunchShortcut:
			c.launch("shortcut", e.Package, e.ShortcutID, func(l Launcher) error { return l.LaunchShortcut(e.Package, e.ShortcutID) })
		case gesture.OpenConfigurator:
			c.status = "layers are edited in the terminal launcher (pie-launcher, key e)"
			c.gs, _ = gesture.Step(c.env(), c.gs, gesture.Dismiss{})
		default:
			panic(fmt.Sprintf("touch: unknown effect %T", fx))
		}
	}
}

func (c *Controller) launch(kind, pkg, target string, run func(Launcher) error) {
	events.Action.Launch(kind, pkg, target)
	if c.opts.Launcher == nil {
		c.status = "no launcher configured"
		return
	}
	if err := run(c.opts.Launcher); err != nil {
		logging.Error(err)
		events.Action.Error(err)
		c.status = err.Error()
		return
	}
	label := pkg
	if app, ok := c.opts.Directory.Snapshot().Lookup(pkg); ok && app.Label != "" {
		label = app.Label
	}
	c.status = "Launched " + label
	events.Action.Success(c.status)
}
