package touch

import (
	"testing"
	"time"

	"github.com/atomicstack/pie-launcher/internal/backend"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/menu"
	"github.com/atomicstack/pie-launcher/internal/state"
	"github.com/atomicstack/pie-launcher/internal/testutil"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type rig struct {
	ctrl     *Controller
	launcher *testutil.RecordingLauncher
	haptics  int
}

func newRig(behaviour gesture.Options, entries ...menu.Entry) *rig {
	r := &rig{launcher: &testutil.RecordingLauncher{}}
	dirs := state.NewDirectoryStore()
	dirs.SetSnapshot(testutil.Apps())
	r.ctrl = NewController(Options{
		Screen:    geometry.Screen{Width: 400, Height: 800},
		Behaviour: behaviour,
		Directory: dirs,
		Config:    state.NewConfigStore(testutil.Layers(entries...), menu.DefaultBrowserActions()),
		Launcher:  r.launcher,
		OnHaptic:  func() { r.haptics++ },
	})
	return r
}

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func TestDragLaunchesHoveredApp(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"), menu.AppRef("pkg.b"))
	r.ctrl.Pointer(true, pt(200, 400), t0)
	if !r.ctrl.State().Active() {
		t.Fatalf("expected the ring to open")
	}
	r.ctrl.Pointer(true, pt(200, 285), t0)
	if h := r.ctrl.View().HoveredID; h != menu.AppItemID("pkg.a") {
		t.Fatalf("expected pkg.a hovered, got %q", h)
	}
	r.ctrl.Pointer(false, pt(200, 285), t0)

	got := r.launcher.Launches()
	if len(got) != 1 || got[0] != (testutil.Launch{Kind: "app", Package: "pkg.a"}) {
		t.Fatalf("expected a launch of pkg.a, got %+v", got)
	}
	if r.ctrl.Status() != "Launched Alpha" {
		t.Fatalf("expected launch status, got %q", r.ctrl.Status())
	}
	if r.haptics != 2 {
		t.Fatalf("expected haptics on open and hover, got %d", r.haptics)
	}
	if r.ctrl.State().Active() {
		t.Fatalf("expected the ring to close")
	}
}

func TestTapOpensListingAndLaunches(t *testing.T) {
	r := newRig(gesture.Options{AllAppsOnFail: true}, menu.AppRef("pkg.a"))
	r.ctrl.Pointer(true, pt(200, 400), t0)
	r.ctrl.Pointer(false, pt(200, 400), t0)
	if mode := r.ctrl.State().Mode; mode != gesture.ModeAllApps {
		t.Fatalf("expected all-apps mode after a tap, got %v", mode)
	}
	if n := len(r.ctrl.View().Listing); n != 3 {
		t.Fatalf("expected three listed apps, got %d", n)
	}

	r.ctrl.Pointer(true, pt(132, 84), t0)
	r.ctrl.Pointer(false, pt(132, 84), t0)
	got := r.launcher.Launches()
	if len(got) != 1 || got[0].Package != "pkg.b" {
		t.Fatalf("expected a launch of pkg.b, got %+v", got)
	}
	if mode := r.ctrl.State().Mode; mode != gesture.ModePie {
		t.Fatalf("expected pie mode, got %v", mode)
	}
}

func TestTapWithoutListingStaysIdle(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"))
	r.ctrl.Pointer(true, pt(200, 400), t0)
	r.ctrl.Pointer(false, pt(200, 400), t0)
	s := r.ctrl.State()
	if s.Active() || s.Mode != gesture.ModePie {
		t.Fatalf("expected an idle pie, got %+v", s)
	}
}

func TestTickFiresLongHold(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"), menu.LayerLink(2))
	r.ctrl.Pointer(true, pt(200, 400), t0)
	r.ctrl.Pointer(true, pt(200, 515), t0)

	r.ctrl.Tick(t0.Add(gesture.DefaultTiming().Navigate - time.Millisecond))
	if id := r.ctrl.State().LayerID; id != 1 {
		t.Fatalf("expected layer 1 before the deadline, got %d", id)
	}
	r.ctrl.Tick(t0.Add(gesture.DefaultTiming().Navigate))
	if id := r.ctrl.State().LayerID; id != 2 {
		t.Fatalf("expected layer 2 after the deadline, got %d", id)
	}
	if name := r.ctrl.View().LayerName; name != "Work" {
		t.Fatalf("expected layer Work, got %q", name)
	}
}

func TestLeavingItemCancelsDeadline(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"), menu.LayerLink(2))
	r.ctrl.Pointer(true, pt(200, 400), t0)
	r.ctrl.Pointer(true, pt(200, 515), t0)
	r.ctrl.Pointer(true, pt(200, 410), t0)
	if len(r.ctrl.timers) != 0 {
		t.Fatalf("expected no pending deadlines, got %d", len(r.ctrl.timers))
	}
	r.ctrl.Tick(t0.Add(time.Second))
	if id := r.ctrl.State().LayerID; id != 1 {
		t.Fatalf("expected to stay on layer 1, got %d", id)
	}
}

func TestShortcutPopoverFromTick(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.b"))
	r.ctrl.Pointer(true, pt(200, 400), t0)
	r.ctrl.Pointer(true, pt(200, 282), t0)
	r.ctrl.Tick(t0.Add(gesture.DefaultTiming().Popover))
	pv := r.ctrl.View().Popover
	if pv == nil || len(pv.Items) != 2 {
		t.Fatalf("expected a two-row popover, got %+v", pv)
	}
	// rows start 40px below the item
	r.ctrl.Pointer(true, pt(200, pv.Bounds.Y+gesture.MenuRowHeight*1.5), t0)
	r.ctrl.Pointer(false, pt(200, pv.Bounds.Y+gesture.MenuRowHeight*1.5), t0)
	got := r.launcher.Launches()
	if len(got) != 1 || got[0] != (testutil.Launch{Kind: "shortcut", Package: "pkg.b", Target: "private"}) {
		t.Fatalf("expected the private shortcut, got %+v", got)
	}
}

func TestBorderTapShowsConfiguratorHint(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"))
	r.ctrl.Pointer(true, pt(200, 10), t0)
	r.ctrl.Pointer(false, pt(200, 10), t0)
	if r.ctrl.Status() == "" {
		t.Fatalf("expected a configurator hint")
	}
	if mode := r.ctrl.State().Mode; mode != gesture.ModePie {
		t.Fatalf("expected to stay in pie mode, got %v", mode)
	}
}

func TestLaunchErrorBecomesStatus(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"))
	r.launcher.Err = testutil.ErrLaunch
	r.ctrl.Pointer(true, pt(200, 400), t0)
	r.ctrl.Pointer(true, pt(200, 285), t0)
	r.ctrl.Pointer(false, pt(200, 285), t0)
	if r.ctrl.Status() != testutil.ErrLaunch.Error() {
		t.Fatalf("expected error status, got %q", r.ctrl.Status())
	}
}

func TestDismissClosesRing(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"))
	r.ctrl.Pointer(true, pt(200, 400), t0)
	r.ctrl.Dismiss(t0)
	if r.ctrl.State().Active() || r.ctrl.View().Visible {
		t.Fatalf("expected the ring to close")
	}
}

func TestApplyConfigEventResetsBaseLayer(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"))
	layers := []menu.Layer{{ID: 7, Name: "Seven", Color: "#777", IsBaseLayer: true}}
	r.ctrl.Apply(backend.Event{Kind: backend.KindConfig, Data: backend.Config{Layers: layers}})
	if id := r.ctrl.State().LayerID; id != 7 {
		t.Fatalf("expected base layer 7, got %d", id)
	}
	r.ctrl.Apply(backend.Event{Kind: backend.KindConfig, Err: testutil.ErrLaunch})
	if id := r.ctrl.State().LayerID; id != 7 {
		t.Fatalf("expected a failed poll to keep layer 7, got %d", id)
	}
}

func TestLayoutResizesTheRingBounds(t *testing.T) {
	r := newRig(gesture.Options{}, menu.AppRef("pkg.a"), menu.AppRef("pkg.b"))
	g, err := NewGame(r.ctrl, nil, "")
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	defer g.Close()

	if w, h := g.Layout(300, 500); w != 300 || h != 500 {
		t.Fatalf("expected a 300x500 layout, got %dx%d", w, h)
	}
	size := geometry.Screen{Width: 300, Height: 500}
	if r.ctrl.opts.Screen != size {
		t.Fatalf("expected the controller to follow the window, got %+v", r.ctrl.opts.Screen)
	}
	if b := g.renderer.Image().Bounds(); b.Dx() != 300 || b.Dy() != 500 {
		t.Fatalf("expected the renderer to follow the window, got %v", b)
	}

	press := pt(290, 380)
	r.ctrl.Pointer(true, press, t0)
	want := r.ctrl.opts.Metrics.SafePosition(size, press)
	if got := r.ctrl.View().Center; got != want {
		t.Fatalf("expected the ring clamped to %+v, got %+v", want, got)
	}
	if want.X >= 290 {
		t.Fatalf("expected the ring pulled in from the right edge, got %+v", want)
	}

	if w, h := g.Layout(0, 0); w != 300 || h != 500 {
		t.Fatalf("expected an empty size to keep 300x500, got %dx%d", w, h)
	}
}
