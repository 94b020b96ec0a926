package gesture

import (
	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/menu"
)

// Cell is one app of the flat listing and its grid position.
type Cell struct {
	App directory.App
	At  geometry.Point
}

func (c Cell) Position() geometry.Point { return c.At }

// PopoverView is the drawable state of an open popover.
type PopoverView struct {
	Bounds     geometry.Rect
	Items      []menu.PopoverItem
	SelectedID string
}

// View is the derived render model of a session.
type View struct {
	Mode       Mode
	Visible    bool
	Center     geometry.Point
	Touch      geometry.Point
	LayerID    int
	LayerName  string
	LayerColor string
	Items      []menu.Item
	HoveredID  string
	Popover    *PopoverView
	Listing    []Cell
}

// Render derives the view of s. It is recomputed after every Step.
func Render(env Env, s State) View {
	v := View{Mode: s.Mode, LayerID: s.LayerID}
	switch s.Mode {
	case ModeAllApps:
		v.Listing = listingCells(env)
		return v
	case ModeCustomizing:
		return v
	}
	if s.Center == nil {
		return v
	}
	v.Visible = true
	v.Center = *s.Center
	v.Touch = *s.Center
	if s.Touch != nil {
		v.Touch = *s.Touch
	}
	if s.LayerID == menu.BrowserActionsLayerID {
		v.LayerName = "Browser"
		v.LayerColor = menu.DefaultLinkAccent
	} else if layer, ok := env.Registry.Find(s.LayerID); ok {
		v.LayerName = layer.Name
		v.LayerColor = layer.Color
	}
	v.Items = placeItems(env, s)
	if s.Hovered != nil {
		v.HoveredID = s.Hovered.ItemID()
	}
	if s.Popover != nil {
		pv := &PopoverView{Bounds: s.Popover.Bounds(), Items: s.Popover.Items}
		if item, ok := s.Popover.SelectedItem(); ok {
			pv.SelectedID = item.PopoverID()
		}
		v.Popover = pv
	}
	return v
}

// placeItems resolves the current layer and lays it out around the centre,
// scaled by the finger's proximity.
func placeItems(env Env, s State) []menu.Item {
	if s.Center == nil {
		return nil
	}
	items := menu.Resolve(menu.Input{
		LayerID:        s.LayerID,
		Registry:       env.Registry,
		Directory:      env.Directory,
		BrowserActions: env.BrowserActions,
	})
	center := *s.Center
	touch := center
	if s.Touch != nil {
		touch = *s.Touch
	}
	positions := env.Metrics.ItemPositions(center, len(items), geometry.AlignCircle)
	scales := env.Metrics.ScaleItems(touch, center, positions)
	for i := range items {
		items[i] = menu.Place(items[i], positions[i], scales[i])
	}
	return items
}

func listingCells(env Env) []Cell {
	positions := env.Metrics.ItemPositions(geometry.Point{}, len(env.Listing), geometry.AlignGrid)
	cells := make([]Cell, len(env.Listing))
	for i, app := range env.Listing {
		cells[i] = Cell{App: app, At: positions[i]}
	}
	return cells
}
