package ui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/pie-launcher/internal/backend"
	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/menu"
	"github.com/atomicstack/pie-launcher/internal/state"
	"github.com/atomicstack/pie-launcher/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

// The test screen is 40x40 cells of 10x20 pixels. A press on cell (19,19)
// centres the ring on (195,390); with the default radius the first item sits
// on cell (19,13) and the opposite one on cell (19,25).

type fakePersister struct {
	mu     sync.Mutex
	layers [][]menu.Layer
	caches []directory.Snapshot
	err    error
}

func (p *fakePersister) SaveLayers(_ context.Context, layers []menu.Layer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.layers = append(p.layers, layers)
	return nil
}

func (p *fakePersister) SaveAppListCache(_ context.Context, snap directory.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.caches = append(p.caches, snap)
	return p.err
}

type fixture struct {
	h        *Harness
	launcher *testutil.RecordingLauncher
	store    *fakePersister
}

func newFixture(t *testing.T, entries ...menu.Entry) fixture {
	t.Helper()
	dirs := state.NewDirectoryStore()
	dirs.SetSnapshot(testutil.Apps())
	launcher := &testutil.RecordingLauncher{}
	store := &fakePersister{}
	m := NewModel(Options{
		Width:     40,
		Height:    40,
		Directory: dirs,
		Config:    state.NewConfigStore(testutil.Layers(entries...), menu.DefaultBrowserActions()),
		Launcher:  launcher,
		Store:     store,
	})
	return fixture{h: NewHarness(m), launcher: launcher, store: store}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(h *Harness, s string) {
	for _, r := range s {
		h.Send(runes(string(r)))
	}
}

func expectLaunches(t *testing.T, l *testutil.RecordingLauncher, want ...testutil.Launch) {
	t.Helper()
	got := l.Launches()
	if len(got) != len(want) {
		t.Fatalf("expected launches %+v, got %+v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected launch %d to be %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestIdleViewShowsHint(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	view := f.h.View()
	if !strings.Contains(view, idleHint) {
		t.Fatalf("expected idle hint in view:\n%s", view)
	}
	if !strings.Contains(view, "all apps") {
		t.Fatalf("expected help line in view:\n%s", view)
	}
}

func TestDragReleaseLaunchesHoveredApp(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"), menu.AppRef("pkg.b"))
	f.h.Send(press(19, 19))
	m := f.h.Model()
	if !m.gs.Active() {
		t.Fatalf("expected the ring to open on press")
	}
	if !m.flash {
		t.Fatalf("expected a haptic flash on press")
	}
	view := f.h.View()
	if !strings.Contains(view, "Home") || !strings.Contains(view, "Alpha") || !strings.Contains(view, "Bravo") {
		t.Fatalf("expected layer and items in view:\n%s", view)
	}

	f.h.Send(motion(19, 13))
	if m.gs.Hovered == nil || m.gs.Hovered.ItemID() != menu.AppItemID("pkg.a") {
		t.Fatalf("expected pkg.a hovered, got %v", m.gs.Hovered)
	}
	f.h.Send(release(19, 13))

	expectLaunches(t, f.launcher, testutil.Launch{Kind: "app", Package: "pkg.a"})
	if !f.h.Quit() {
		t.Fatalf("expected the program to quit after a launch")
	}
	if m.gs.Active() {
		t.Fatalf("expected the ring to close")
	}
	if m.infoMsg != "Launched Alpha" {
		t.Fatalf("expected launch info, got %q", m.infoMsg)
	}
}

func TestReleaseAwayFromItemsLaunchesNothing(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"), menu.AppRef("pkg.b"))
	f.h.Send(press(19, 19))
	f.h.Send(motion(21, 19))
	f.h.Send(release(21, 19))
	expectLaunches(t, f.launcher)
	if f.h.Quit() {
		t.Fatalf("expected the program to keep running")
	}
}

func TestFlashClearsAfterPulse(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(press(19, 19))
	if !f.h.Model().flash {
		t.Fatalf("expected flash after press")
	}
	f.h.Advance()
	if f.h.Model().flash {
		t.Fatalf("expected flash to clear once the pulse elapsed")
	}
}

func TestLongHoldOnLinkNavigates(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"), menu.LayerLink(2))
	f.h.Send(press(19, 19))
	f.h.Send(motion(19, 25))
	m := f.h.Model()
	if m.gs.Hovered == nil || m.gs.Hovered.ItemID() != menu.LinkItemID(2) {
		t.Fatalf("expected the link hovered, got %v", m.gs.Hovered)
	}
	if len(f.h.Pending()) == 0 {
		t.Fatalf("expected a scheduled long-hold timer")
	}
	f.h.Advance()
	if m.gs.LayerID != 2 {
		t.Fatalf("expected layer 2 after the long hold, got %d", m.gs.LayerID)
	}
	if view := f.h.View(); !strings.Contains(view, "Work") {
		t.Fatalf("expected layer name in view:\n%s", view)
	}

	// layer 2 re-centres on the link, so its single item sits on cell (19,19)
	f.h.Send(motion(19, 19))
	f.h.Send(release(19, 19))
	expectLaunches(t, f.launcher, testutil.Launch{Kind: "app", Package: "pkg.b"})
}

func TestStaleTimerIsIgnored(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"), menu.LayerLink(2))
	f.h.Send(press(19, 19))
	f.h.Send(motion(19, 25))
	f.h.Send(motion(19, 20))
	if f.h.Model().gs.Hovered != nil {
		t.Fatalf("expected hover to clear near the centre")
	}
	f.h.Advance()
	if got := f.h.Model().gs.LayerID; got != 1 {
		t.Fatalf("expected to stay on layer 1, got %d", got)
	}
}

func TestLongHoldOpensShortcutPopover(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.b"))
	f.h.Send(press(19, 19))
	f.h.Send(motion(19, 13))
	m := f.h.Model()
	if _, ok := m.directory.Shortcuts()["pkg.b"]; !ok {
		t.Fatalf("expected shortcuts for pkg.b to be loaded")
	}
	f.h.Advance()
	if m.gs.Popover == nil || len(m.gs.Popover.Items) != 2 {
		t.Fatalf("expected a popover with two shortcuts, got %+v", m.gs.Popover)
	}
	if view := f.h.View(); !strings.Contains(view, "New Window") {
		t.Fatalf("expected shortcut rows in view:\n%s", view)
	}

	// rows start at y=310; cell row 18 is y=370, the second row
	f.h.Send(motion(19, 18))
	f.h.Send(release(19, 18))
	expectLaunches(t, f.launcher, testutil.Launch{Kind: "shortcut", Package: "pkg.b", Target: "private"})
}

func TestEscapeCancelsActiveRing(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(press(19, 19))
	f.h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	m := f.h.Model()
	if m.gs.Active() || m.gs.Mode != gesture.ModePie {
		t.Fatalf("expected idle pie mode, got %+v", m.gs)
	}
	if f.h.Quit() {
		t.Fatalf("escape with an open ring must not quit")
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if !f.h.Quit() {
		t.Fatalf("expected escape on the idle pie to quit")
	}
}

func TestLaunchErrorStaysOpen(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.launcher.Err = testutil.ErrLaunch
	f.h.Send(press(19, 19))
	f.h.Send(motion(19, 13))
	f.h.Send(release(19, 13))
	if f.h.Quit() {
		t.Fatalf("expected the program to keep running after a failed launch")
	}
	if got := f.h.Model().errMsg; got != testutil.ErrLaunch.Error() {
		t.Fatalf("expected error message, got %q", got)
	}
	if view := f.h.View(); !strings.Contains(view, testutil.ErrLaunch.Error()) {
		t.Fatalf("expected error in footer:\n%s", view)
	}
}

func TestAllAppsFilterAndLaunch(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("a"))
	m := f.h.Model()
	if m.gs.Mode != gesture.ModeAllApps {
		t.Fatalf("expected all-apps mode, got %v", m.gs.Mode)
	}
	view := f.h.View()
	for _, label := range []string{"Alpha", "Bravo", "Firefox"} {
		if !strings.Contains(view, label) {
			t.Fatalf("expected %s in listing:\n%s", label, view)
		}
	}

	typeText(f.h, "fire")
	if m.listing.Filter != "fire" {
		t.Fatalf("expected filter %q, got %q", "fire", m.listing.Filter)
	}
	if len(m.listing.Items) != 1 || m.listing.Items[0].Package != "org.mozilla.firefox" {
		t.Fatalf("expected only firefox, got %+v", m.listing.Items)
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	expectLaunches(t, f.launcher, testutil.Launch{Kind: "app", Package: "org.mozilla.firefox"})
	if m.gs.Mode != gesture.ModePie {
		t.Fatalf("expected to return to the pie, got %v", m.gs.Mode)
	}
}

func TestAllAppsTapLaunchesCell(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("a"))
	// the second grid cell is centred on (130,80)
	f.h.Send(press(13, 4))
	f.h.Send(release(13, 4))
	expectLaunches(t, f.launcher, testutil.Launch{Kind: "app", Package: "pkg.b"})
}

func TestAllAppsTapOnEmptySpaceLeaves(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("a"))
	f.h.Send(press(35, 30))
	f.h.Send(release(35, 30))
	expectLaunches(t, f.launcher)
	if got := f.h.Model().gs.Mode; got != gesture.ModePie {
		t.Fatalf("expected pie mode after a missed tap, got %v", got)
	}
}

func TestAllAppsEscapeClearsFilterFirst(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("a"))
	typeText(f.h, "zz")
	m := f.h.Model()
	if view := f.h.View(); !strings.Contains(view, "no matching apps") {
		t.Fatalf("expected empty listing notice:\n%s", view)
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if m.listing.Filter != "" || m.gs.Mode != gesture.ModeAllApps {
		t.Fatalf("expected cleared filter in all-apps mode, got %q %v", m.listing.Filter, m.gs.Mode)
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if m.gs.Mode != gesture.ModePie {
		t.Fatalf("expected pie mode, got %v", m.gs.Mode)
	}
}

func TestAllAppsCursorKeys(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(runes("a"))
	m := f.h.Model()
	f.h.Send(tea.KeyMsg{Type: tea.KeyTab})
	if m.listing.Cursor != 1 {
		t.Fatalf("expected cursor 1 after tab, got %d", m.listing.Cursor)
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyEnd})
	if m.listing.Cursor != 2 {
		t.Fatalf("expected cursor on the last app, got %d", m.listing.Cursor)
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	expectLaunches(t, f.launcher, testutil.Launch{Kind: "app", Package: "org.mozilla.firefox"})
}

func TestBackendDirectoryEventRefreshesListingAndCache(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	snap := testutil.Apps()
	snap.Apps = append(snap.Apps, directory.App{Package: "pkg.z", Label: "Zulu", Exec: "zulu"})
	evt := backendEventMsg{event: backend.Event{Kind: backend.KindDirectory, Data: snap}}

	f.h.Send(evt)
	m := f.h.Model()
	if m.listing.IndexOf("pkg.z") < 0 {
		t.Fatalf("expected the new app in the listing")
	}
	f.h.Send(evt)
	f.store.mu.Lock()
	saved := len(f.store.caches)
	f.store.mu.Unlock()
	if saved != 1 {
		t.Fatalf("expected the cache to be written once, got %d", saved)
	}
}

func TestBackendConfigEventSwapsLayers(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	layers := []menu.Layer{{ID: 5, Name: "Only", Color: "#112233", IsBaseLayer: true, Items: []menu.Entry{menu.AppRef("pkg.b")}}}
	f.h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindConfig, Data: backend.Config{Layers: layers}}})
	m := f.h.Model()
	if m.gs.LayerID != 5 {
		t.Fatalf("expected base layer 5, got %d", m.gs.LayerID)
	}
	f.h.Send(press(19, 19))
	if view := f.h.View(); !strings.Contains(view, "Only") || !strings.Contains(view, "Bravo") {
		t.Fatalf("expected the new layer in view:\n%s", view)
	}
}

func TestBackendErrorShowsInFooter(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	f.h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindDirectory, Err: testutil.ErrLaunch}})
	if view := f.h.View(); !strings.Contains(view, "backend: "+testutil.ErrLaunch.Error()) {
		t.Fatalf("expected backend error in footer:\n%s", view)
	}
}

func TestBackendPartialScanStillRefreshesListing(t *testing.T) {
	f := newFixture(t, menu.AppRef("pkg.a"))
	snap := testutil.Apps()
	snap.Apps = append(snap.Apps, directory.App{Package: "pkg.z", Label: "Zulu", Exec: "zulu"})
	f.h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindDirectory, Data: snap, Err: testutil.ErrLaunch}})
	if f.h.Model().listing.IndexOf("pkg.z") < 0 {
		t.Fatalf("expected the scanned apps despite the error")
	}
	if view := f.h.View(); !strings.Contains(view, "backend: "+testutil.ErrLaunch.Error()) {
		t.Fatalf("expected backend error in footer:\n%s", view)
	}
}

func TestWindowSizeFollowsTerminalUnlessFixed(t *testing.T) {
	m := NewModel(Options{})
	h := NewHarness(m)
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 100 || m.height != 30 {
		t.Fatalf("expected 100x30, got %dx%d", m.width, m.height)
	}
	if got := m.screen(); got.Width != 1000 || got.Height != 600 {
		t.Fatalf("expected a 1000x600 screen, got %+v", got)
	}

	f := newFixture(t)
	f.h.Send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if w, hgt := f.h.Model().width, f.h.Model().height; w != 40 || hgt != 40 {
		t.Fatalf("expected fixed 40x40, got %dx%d", w, hgt)
	}
}

func TestPixelCellRoundTrip(t *testing.T) {
	m := NewModel(Options{Width: 40, Height: 40})
	p := m.pixel(19, 13)
	if p.X != 195 || p.Y != 270 {
		t.Fatalf("expected (195,270), got %+v", p)
	}
	if col, row := m.cell(p); col != 19 || row != 13 {
		t.Fatalf("expected cell (19,13), got (%d,%d)", col, row)
	}
}
