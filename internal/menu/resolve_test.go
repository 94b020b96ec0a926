package menu

import (
	"testing"

	"github.com/atomicstack/pie-launcher/internal/directory"
)

func testDirectory() directory.Snapshot {
	return directory.Snapshot{
		Apps: []directory.App{
			{Package: "org.gnome.Nautilus", Label: "Files", Accent: "#112233"},
			{Package: "org.mozilla.firefox", Label: "Firefox", Accent: "#FF7139"},
			{Package: "io.freetubeapp.FreeTube", Label: "FreeTube"},
		},
		DefaultBrowser: "org.mozilla.firefox",
	}
}

func itemIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ItemID()
	}
	return ids
}

func equalIDs(t *testing.T, got []Item, want ...string) {
	t.Helper()
	ids := itemIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestResolveDropsUnknownApps(t *testing.T) {
	reg := NewRegistry(DefaultLayers())
	items := Resolve(Input{LayerID: 1, Registry: reg, Directory: testDirectory()})
	equalIDs(t, items, "pie-app-org.gnome.Nautilus", "pie-app-org.mozilla.firefox", "pie-link-2")

	app, ok := items[0].(AppItem)
	if !ok {
		t.Fatalf("expected AppItem, got %T", items[0])
	}
	if app.Package != "org.gnome.Nautilus" || app.Accent != "#112233" || app.Scale() != 1 {
		t.Fatalf("unexpected app item %+v", app)
	}
	link, ok := items[2].(LayerSwitchItem)
	if !ok {
		t.Fatalf("expected LayerSwitchItem, got %T", items[2])
	}
	if link.Target != 2 || link.Accent != "#EAEAEA" || link.Label != "Second level" {
		t.Fatalf("unexpected link item %+v", link)
	}
}

func TestResolveUnknownLinkTarget(t *testing.T) {
	reg := NewRegistry([]Layer{{ID: 1, Name: "x", Color: "#000", Items: []Entry{LayerLink(42)}}})
	items := Resolve(Input{LayerID: 1, Registry: reg})
	link := items[0].(LayerSwitchItem)
	if link.Accent != DefaultLinkAccent {
		t.Fatalf("expected fallback accent, got %q", link.Accent)
	}
}

func TestResolveUnknownLayer(t *testing.T) {
	items := Resolve(Input{LayerID: 7, Registry: NewRegistry(DefaultLayers())})
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty items, got %#v", items)
	}
}

func TestResolveBrowserLayer(t *testing.T) {
	in := Input{
		LayerID:        BrowserActionsLayerID,
		Registry:       NewRegistry(DefaultLayers()),
		Directory:      testDirectory(),
		BrowserActions: DefaultBrowserActions()[:2],
	}
	items := Resolve(in)
	equalIDs(t, items,
		"pie-browser-action-https://google.com",
		"pie-browser-action-https://www.duden.de/suchen/dudenonline",
		"pie-app-org.mozilla.firefox",
	)
	action := items[0].(BrowserActionItem)
	if action.URL != "https://google.com" || action.Accent != "#FF7139" {
		t.Fatalf("unexpected browser action %+v", action)
	}

	in.Directory.DefaultBrowser = ""
	if got := Resolve(in); len(got) != 0 {
		t.Fatalf("expected empty browser layer without default browser, got %v", itemIDs(got))
	}
}

func TestResolveIsPure(t *testing.T) {
	layers := DefaultLayers()
	reg := NewRegistry(layers)
	dir := testDirectory()
	first := Resolve(Input{LayerID: 1, Registry: reg, Directory: dir})
	second := Resolve(Input{LayerID: 1, Registry: reg, Directory: dir})
	equalIDs(t, second, itemIDs(first)...)
	if len(layers[0].Items) != 11 || len(dir.Apps) != 3 {
		t.Fatalf("inputs mutated")
	}
}

func TestPlaceKeepsVariant(t *testing.T) {
	items := Resolve(Input{LayerID: 1, Registry: NewRegistry(DefaultLayers()), Directory: testDirectory()})
	placed := Place(items[2], items[2].Position(), 1.2)
	if _, ok := placed.(LayerSwitchItem); !ok {
		t.Fatalf("expected LayerSwitchItem, got %T", placed)
	}
	if placed.Scale() != 1.2 || items[2].Scale() != 1 {
		t.Fatalf("place must copy: got %v / %v", placed.Scale(), items[2].Scale())
	}
	if !SameItem(placed, items[2]) || SameItem(nil, placed) {
		t.Fatalf("SameItem must compare ids")
	}
}

func TestPopoverItems(t *testing.T) {
	reg := NewRegistry(DefaultLayers())
	apps := LayerAppPopoverItems(reg, testDirectory(), 2)
	if len(apps) != 2 {
		t.Fatalf("expected 2 app popover items, got %d", len(apps))
	}
	if p := apps[0].(AppPopoverItem); p.Package != "io.freetubeapp.FreeTube" {
		t.Fatalf("unexpected first popover app %+v", p)
	}

	shortcuts := make([]directory.Shortcut, 8)
	for i := range shortcuts {
		shortcuts[i] = directory.Shortcut{ID: string(rune('a' + i)), Label: "s"}
	}
	items := ShortcutPopoverItems("pkg", shortcuts)
	if len(items) != directory.MaxShortcuts {
		t.Fatalf("expected shortcut cap, got %d", len(items))
	}
	if sc := items[0].(ShortcutPopoverItem); sc.Package != "pkg" || sc.PopoverID() != "a" {
		t.Fatalf("unexpected shortcut item %+v", sc)
	}

	urls := BrowserPopoverItems(DefaultBrowserActions())
	if u := urls[3].(URLPopoverItem); u.URL != "https://www.deepl.com/de/translate#de" || u.PopoverLabel() != "DeepL Translate" {
		t.Fatalf("unexpected url item %+v", u)
	}
}

func TestParseBrowserActions(t *testing.T) {
	actions, err := ParseBrowserActions([]byte("- url: https://example.org/a\n  label: A\n"))
	if err != nil || len(actions) != 1 || actions[0].Label != "A" {
		t.Fatalf("unexpected actions %+v (%v)", actions, err)
	}
	if _, err := ParseBrowserActions([]byte("- url: https://example.org\n")); err == nil {
		t.Fatalf("expected a missing label to be rejected")
	}
	if _, err := ParseBrowserActions([]byte("url: [")); err == nil {
		t.Fatalf("expected a decode error")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(DefaultLayers())
	if reg.Base() != 1 {
		t.Fatalf("expected base 1, got %d", reg.Base())
	}
	if more, ok := reg.Find(2); !ok || more.Color != "#EAEAEA" {
		t.Fatalf("unexpected layer 2 %+v ok=%v", more, ok)
	}
	layer, _ := reg.Find(1)
	layer.Items[0] = AppRef("mutated")
	again, _ := reg.Find(1)
	if again.Items[0].Package == "mutated" {
		t.Fatalf("registry leaked internal slice")
	}
	var nilReg *Registry
	if _, ok := nilReg.Find(1); ok || nilReg.Base() != 1 {
		t.Fatalf("nil registry must behave as empty")
	}
}
