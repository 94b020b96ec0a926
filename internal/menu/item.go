package menu

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/pie-launcher/internal/geometry"
)

const (
	appItemPrefix           = "pie-app-"
	linkItemPrefix          = "pie-link-"
	browserActionItemPrefix = "pie-browser-action-"

	// DefaultLinkAccent is used for links whose target layer is unknown.
	DefaultLinkAccent = "#FFFFFF"
	// DefaultAppAccent is used for apps that declare no accent colour.
	DefaultAppAccent = "#000000"
)

// AppItemID returns the stable id of the app item for pkg.
func AppItemID(pkg string) string { return appItemPrefix + pkg }

// LinkItemID returns the stable id of the link item to layer id.
func LinkItemID(id int) string { return linkItemPrefix + strconv.Itoa(id) }

// BrowserActionItemID returns the stable id of the browser action for url.
func BrowserActionItemID(url string) string { return browserActionItemPrefix + url }

// Item is a resolved, positioned pie entry. The concrete types are AppItem,
// LayerSwitchItem and BrowserActionItem.
type Item interface {
	ItemID() string
	Position() geometry.Point
	Scale() float64
	isItem()
}

// Placement carries the identity and layout shared by all item variants.
type Placement struct {
	ID          string
	At          geometry.Point
	ScaleFactor float64
}

func (p Placement) ItemID() string           { return p.ID }
func (p Placement) Position() geometry.Point { return p.At }
func (p Placement) Scale() float64           { return p.ScaleFactor }

// AppItem launches an installed application.
type AppItem struct {
	Placement
	Package    string
	Label      string
	Icon       string
	Accent     string
	Background string
	Monochrome bool
}

// LayerSwitchItem navigates to another layer when held.
type LayerSwitchItem struct {
	Placement
	Target int
	Label  string
	Accent string
}

// BrowserActionItem opens a URL with the default browser.
type BrowserActionItem struct {
	Placement
	URL    string
	Label  string
	Icon   string
	Accent string
}

func (AppItem) isItem()           {}
func (LayerSwitchItem) isItem()   {}
func (BrowserActionItem) isItem() {}

// Place returns a copy of item moved to at with the given scale.
func Place(item Item, at geometry.Point, scale float64) Item {
	switch it := item.(type) {
	case AppItem:
		it.At, it.ScaleFactor = at, scale
		return it
	case LayerSwitchItem:
		it.At, it.ScaleFactor = at, scale
		return it
	case BrowserActionItem:
		it.At, it.ScaleFactor = at, scale
		return it
	default:
		panic(fmt.Sprintf("menu: unknown item type %T", item))
	}
}

// Label returns the display label of any item variant.
func Label(item Item) string {
	switch it := item.(type) {
	case AppItem:
		return it.Label
	case LayerSwitchItem:
		return it.Label
	case BrowserActionItem:
		return it.Label
	default:
		panic(fmt.Sprintf("menu: unknown item type %T", item))
	}
}

// Accent returns the accent colour of any item variant.
func Accent(item Item) string {
	switch it := item.(type) {
	case AppItem:
		if it.Accent == "" {
			return DefaultAppAccent
		}
		return it.Accent
	case LayerSwitchItem:
		return it.Accent
	case BrowserActionItem:
		return it.Accent
	default:
		panic(fmt.Sprintf("menu: unknown item type %T", item))
	}
}

// SameItem compares items by id; a nil item never matches.
func SameItem(a, b Item) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ItemID() == b.ItemID()
}

// PopoverItem is an entry of the long-press popover. The concrete types are
// AppPopoverItem, ShortcutPopoverItem and URLPopoverItem.
type PopoverItem interface {
	PopoverID() string
	PopoverLabel() string
	isPopoverItem()
}

// AppPopoverItem launches an app, used for the apps of a linked layer.
type AppPopoverItem struct {
	ID      string
	Label   string
	Icon    string
	Package string
}

// ShortcutPopoverItem launches one of an app's shortcuts.
type ShortcutPopoverItem struct {
	ID      string
	Label   string
	Icon    string
	Package string
}

// URLPopoverItem opens a URL with the default browser.
type URLPopoverItem struct {
	ID    string
	Label string
	Icon  string
	URL   string
}

func (p AppPopoverItem) PopoverID() string         { return p.ID }
func (p AppPopoverItem) PopoverLabel() string      { return p.Label }
func (p ShortcutPopoverItem) PopoverID() string    { return p.ID }
func (p ShortcutPopoverItem) PopoverLabel() string { return p.Label }
func (p URLPopoverItem) PopoverID() string         { return p.ID }
func (p URLPopoverItem) PopoverLabel() string      { return p.Label }

func (AppPopoverItem) isPopoverItem()      {}
func (ShortcutPopoverItem) isPopoverItem() {}
func (URLPopoverItem) isPopoverItem()      {}
