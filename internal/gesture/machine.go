package gesture

import (
	"fmt"

	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/menu"
)

// step accumulates the next state and its effects for one event.
type step struct {
	env Env
	s   State
	fx  []Effect
}

func (st *step) emit(fx ...Effect) {
	st.fx = append(st.fx, fx...)
}

// Step applies ev to s and returns the next state together with the side
// effects the frontend must perform, in order.
func Step(env Env, s State, ev Event) (State, []Effect) {
	st := &step{env: env, s: s}
	switch e := ev.(type) {
	case Start:
		st.start(e.P)
	case Move:
		st.move(e.P)
	case End:
		st.end()
	case Fail:
		st.fail(e.P)
	case TimerFired:
		st.timerFired(e)
	case Dismiss:
		st.reset()
		st.s.Mode = ModePie
	default:
		panic(fmt.Sprintf("gesture: unknown event %T", ev))
	}
	return st.s, st.fx
}

func (st *step) start(p geometry.Point) {
	switch st.s.Mode {
	case ModeAllApps:
		st.s.Touch = &p
		return
	case ModeCustomizing:
		return
	}
	if st.env.Metrics.InBorderBand(st.env.Screen, p) {
		return
	}
	st.cancelTimer()
	st.s.Hovered = nil
	st.s.Popover = nil
	st.s.Touch = nil
	center := st.env.Metrics.SafePosition(st.env.Screen, p)
	st.s.Center = &center
	st.emit(Haptic{})
}

func (st *step) move(p geometry.Point) {
	switch st.s.Mode {
	case ModeAllApps:
		st.s.Touch = &p
		return
	case ModeCustomizing:
		return
	}
	if st.s.Center == nil {
		return
	}
	if st.s.Popover != nil {
		st.popoverMove(p)
		return
	}
	st.s.Touch = &p
	closest, dist, ok := geometry.FindClosest(p, placeItems(st.env, st.s))
	if !ok {
		st.clearHover()
		return
	}
	insidePie := geometry.Distance(p, *st.s.Center) <= st.env.Metrics.Radius
	shouldHover := !insidePie || dist <= st.env.Metrics.HoverThreshold
	switch {
	case shouldHover && !menu.SameItem(closest, st.s.Hovered):
		st.s.Hovered = closest
		st.emit(Haptic{})
		st.armFor(closest)
	case !shouldHover:
		st.clearHover()
	}
}

func (st *step) clearHover() {
	st.s.Hovered = nil
	st.cancelTimer()
}

// armFor arms the long-hold timer appropriate for a newly hovered item.
func (st *step) armFor(item menu.Item) {
	switch it := item.(type) {
	case menu.LayerSwitchItem:
		if st.env.Options.LinkPopover {
			st.arm(TimerPopover, it.ItemID())
		} else {
			st.arm(TimerNavigate, it.ItemID())
		}
	case menu.AppItem:
		if st.isBrowserEntry(it) {
			if st.env.Options.BrowserPopover {
				st.arm(TimerPopover, it.ItemID())
			} else {
				st.arm(TimerNavigate, it.ItemID())
			}
			return
		}
		if _, cached := st.env.Shortcuts[it.Package]; !cached {
			st.emit(RequestShortcuts{Package: it.Package})
		}
		st.arm(TimerPopover, it.ItemID())
	case menu.BrowserActionItem:
		st.cancelTimer()
	default:
		panic(fmt.Sprintf("gesture: unknown item type %T", item))
	}
}

// isBrowserEntry reports whether hovering app leads into the browser actions.
func (st *step) isBrowserEntry(app menu.AppItem) bool {
	browser := st.env.Directory.DefaultBrowser
	return browser != "" && app.Package == browser && st.s.LayerID != menu.BrowserActionsLayerID
}

func (st *step) arm(kind TimerKind, itemID string) {
	st.s.Token++
	st.s.Pending = Timer{Kind: kind, Token: st.s.Token, ItemID: itemID}
	delay := st.env.Timing.Navigate
	if kind == TimerPopover {
		delay = st.env.Timing.Popover
	}
	st.emit(ArmTimer{Kind: kind, Delay: delay, Token: st.s.Token})
}

func (st *step) cancelTimer() {
	if st.s.Pending.Kind == TimerNone {
		return
	}
	st.s.Token++
	st.s.Pending = Timer{}
	st.emit(CancelTimers{})
}

func (st *step) timerFired(e TimerFired) {
	pending := st.s.Pending
	if pending.Kind == TimerNone || e.Token != pending.Token || e.Kind != pending.Kind {
		return
	}
	st.s.Pending = Timer{}
	if !st.s.Active() || st.s.Hovered == nil || st.s.Hovered.ItemID() != pending.ItemID {
		return
	}
	switch it := st.s.Hovered.(type) {
	case menu.LayerSwitchItem:
		if pending.Kind == TimerPopover {
			items := menu.LayerAppPopoverItems(st.env.Registry, st.env.Directory, it.Target)
			if len(items) > 0 {
				st.openPopover(it.Position(), items)
				return
			}
		}
		st.navigate(it.Target, it.Position())
	case menu.AppItem:
		if st.isBrowserEntry(it) {
			if pending.Kind == TimerNavigate {
				st.navigate(menu.BrowserActionsLayerID, it.Position())
				return
			}
			if items := menu.BrowserPopoverItems(st.env.BrowserActions); len(items) > 0 {
				st.openPopover(it.Position(), items)
			}
			return
		}
		if shortcuts := st.env.Shortcuts[it.Package]; len(shortcuts) > 0 {
			st.openPopover(it.Position(), menu.ShortcutPopoverItems(it.Package, shortcuts))
		}
	case menu.BrowserActionItem:
		// no long-hold action
	default:
		panic(fmt.Sprintf("gesture: unknown item type %T", st.s.Hovered))
	}
}

// navigate switches to layer id and re-centres the ring on the held item.
func (st *step) navigate(id int, at geometry.Point) {
	st.s.LayerID = id
	center := st.env.Metrics.SafePosition(st.env.Screen, at)
	st.s.Center = &center
	st.s.Hovered = nil
}

func (st *step) end() {
	switch st.s.Mode {
	case ModeAllApps:
		st.tapListing()
		return
	case ModeCustomizing:
		return
	}
	if st.s.Center == nil {
		return
	}
	if st.s.Popover != nil {
		if item, ok := st.s.Popover.SelectedItem(); ok {
			st.commitPopover(item)
		}
		st.reset()
		return
	}
	if st.s.Touch != nil && st.s.Hovered != nil {
		closest, _, ok := geometry.FindClosest(*st.s.Touch, placeItems(st.env, st.s))
		if ok && menu.SameItem(closest, st.s.Hovered) {
			st.commit(closest)
		}
	}
	st.reset()
}

func (st *step) commit(item menu.Item) {
	switch it := item.(type) {
	case menu.AppItem:
		if it.Package == "" {
			panic("gesture: commit of app item without package")
		}
		st.emit(LaunchApp{Package: it.Package})
	case menu.BrowserActionItem:
		st.emit(LaunchURL{Package: st.env.Directory.DefaultBrowser, URL: it.URL})
	case menu.LayerSwitchItem:
		// links only navigate
	default:
		panic(fmt.Sprintf("gesture: unknown item type %T", item))
	}
}

func (st *step) commitPopover(item menu.PopoverItem) {
	switch it := item.(type) {
	case menu.ShortcutPopoverItem:
		if it.Package == "" {
			panic("gesture: commit of shortcut without package")
		}
		st.emit(LaunchShortcut{Package: it.Package, ShortcutID: it.ID})
	case menu.AppPopoverItem:
		if it.Package == "" {
			panic("gesture: commit of app without package")
		}
		st.emit(LaunchApp{Package: it.Package})
	case menu.URLPopoverItem:
		st.emit(LaunchURL{Package: st.env.Directory.DefaultBrowser, URL: it.URL})
	default:
		panic(fmt.Sprintf("gesture: unknown popover item type %T", item))
	}
}

func (st *step) fail(p geometry.Point) {
	switch st.s.Mode {
	case ModeAllApps:
		st.s.Touch = &p
		st.tapListing()
		return
	case ModeCustomizing:
		return
	}
	st.reset()
	switch {
	case st.env.Metrics.InBorderBand(st.env.Screen, p):
		st.s.Mode = ModeCustomizing
		st.emit(OpenConfigurator{})
	case st.env.Options.AllAppsOnFail:
		st.s.Mode = ModeAllApps
	}
}

// tapListing launches the listed app under the last touch, or leaves the
// listing when the tap missed every app.
func (st *step) tapListing() {
	touch := st.s.Touch
	st.s.Touch = nil
	if touch != nil {
		cells := listingCells(st.env)
		if cell, dist, ok := geometry.FindClosest(*touch, cells); ok && dist <= st.env.Metrics.HoverThreshold {
			st.emit(LaunchApp{Package: cell.App.Package})
		}
	}
	st.reset()
	st.s.Mode = ModePie
}

// reset returns to an idle session on the base layer.
func (st *step) reset() {
	st.cancelTimer()
	st.s.Center = nil
	st.s.Touch = nil
	st.s.Hovered = nil
	st.s.Popover = nil
	st.s.LayerID = st.env.Registry.Base()
}
