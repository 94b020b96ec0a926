package menu

import (
	"github.com/atomicstack/pie-launcher/internal/directory"
)

// Input is everything resolution depends on. Resolve never mutates it.
type Input struct {
	LayerID        int
	Registry       *Registry
	Directory      directory.Snapshot
	BrowserActions []BrowserAction
}

// Resolve turns the entries of the requested layer into pie items. App
// references missing from the directory are dropped. The reserved browser
// actions layer is synthesized from the browser actions followed by the
// default browser itself, and is empty when no default browser is known.
// Items are returned unplaced with a scale of 1.
func Resolve(in Input) []Item {
	if in.LayerID == BrowserActionsLayerID {
		return resolveBrowserLayer(in)
	}
	layer, ok := in.Registry.Find(in.LayerID)
	if !ok {
		return []Item{}
	}
	items := make([]Item, 0, len(layer.Items))
	for _, entry := range layer.Items {
		switch entry.Kind {
		case EntryApp:
			app, ok := in.Directory.Lookup(entry.Package)
			if !ok {
				continue
			}
			items = append(items, appItem(app))
		case EntryLink:
			items = append(items, linkItem(in.Registry, entry.Layer))
		}
	}
	return items
}

func resolveBrowserLayer(in Input) []Item {
	browser, ok := in.Directory.Lookup(in.Directory.DefaultBrowser)
	if in.Directory.DefaultBrowser == "" || !ok {
		return []Item{}
	}
	accent := browser.Accent
	if accent == "" {
		accent = DefaultLinkAccent
	}
	items := make([]Item, 0, len(in.BrowserActions)+1)
	for _, action := range in.BrowserActions {
		items = append(items, BrowserActionItem{
			Placement: Placement{ID: BrowserActionItemID(action.URL), ScaleFactor: 1},
			URL:       action.URL,
			Label:     action.Label,
			Icon:      action.Image,
			Accent:    accent,
		})
	}
	return append(items, appItem(browser))
}

func appItem(app directory.App) AppItem {
	return AppItem{
		Placement:  Placement{ID: AppItemID(app.Package), ScaleFactor: 1},
		Package:    app.Package,
		Label:      app.Label,
		Icon:       app.Icon,
		Accent:     app.Accent,
		Background: app.Background,
		Monochrome: app.Monochrome,
	}
}

func linkItem(reg *Registry, target int) LayerSwitchItem {
	item := LayerSwitchItem{
		Placement: Placement{ID: LinkItemID(target), ScaleFactor: 1},
		Target:    target,
		Accent:    DefaultLinkAccent,
	}
	if layer, ok := reg.Find(target); ok {
		item.Accent = layer.Color
		item.Label = layer.Name
	}
	return item
}

// LayerAppPopoverItems lists the resolvable apps of layer id as popover items.
func LayerAppPopoverItems(reg *Registry, dir directory.Snapshot, id int) []PopoverItem {
	layer, ok := reg.Find(id)
	if !ok {
		return nil
	}
	var out []PopoverItem
	for _, entry := range layer.Items {
		if entry.Kind != EntryApp {
			continue
		}
		app, ok := dir.Lookup(entry.Package)
		if !ok {
			continue
		}
		out = append(out, AppPopoverItem{ID: AppItemID(app.Package), Label: app.Label, Icon: app.Icon, Package: app.Package})
	}
	return out
}

// ShortcutPopoverItems wraps an app's shortcuts as popover items.
func ShortcutPopoverItems(pkg string, shortcuts []directory.Shortcut) []PopoverItem {
	out := make([]PopoverItem, 0, len(shortcuts))
	for i, sc := range shortcuts {
		if i == directory.MaxShortcuts {
			break
		}
		out = append(out, ShortcutPopoverItem{ID: sc.ID, Label: sc.Label, Icon: sc.Icon, Package: pkg})
	}
	return out
}

// BrowserPopoverItems wraps browser actions as popover items.
func BrowserPopoverItems(actions []BrowserAction) []PopoverItem {
	out := make([]PopoverItem, 0, len(actions))
	for _, action := range actions {
		out = append(out, URLPopoverItem{ID: BrowserActionItemID(action.URL), Label: action.Label, Icon: action.Image, URL: action.URL})
	}
	return out
}
