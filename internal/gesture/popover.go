package gesture

import (
	"math"

	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/menu"
)

// PopoverAnchor places a popover of rows next to the item at p. The menu opens
// below items in the top half of the screen and above the rest, centred on the
// item and clamped to the screen.
func PopoverAnchor(screen geometry.Screen, p geometry.Point, rows int) geometry.Point {
	height := MenuRowHeight * float64(rows)
	x := p.X - MenuWidth/2
	x = math.Max(0, math.Min(x, screen.Width-MenuWidth))
	var y float64
	if p.Y < screen.Height/2 {
		y = p.Y + MenuOffset
	} else {
		y = p.Y - MenuOffset - height
	}
	y = math.Max(0, math.Min(y, screen.Height-height))
	return geometry.Point{X: x, Y: y}
}

func (st *step) openPopover(at geometry.Point, items []menu.PopoverItem) {
	st.s.Popover = &Popover{
		Anchor:   PopoverAnchor(st.env.Screen, at, len(items)),
		Items:    items,
		Selected: -1,
	}
	st.emit(Haptic{})
}

// popoverMove hit-tests p against the open popover. Leaving the slack area
// dismisses it; the slack band itself selects nothing.
func (st *step) popoverMove(p geometry.Point) {
	st.s.Touch = &p
	pop := *st.s.Popover
	bounds := pop.Bounds()
	switch {
	case !bounds.Expand(MenuSlackX, MenuSlackY).Contains(p):
		st.s.Popover = nil
		st.s.Hovered = nil
		return
	case !bounds.Contains(p):
		pop.Selected = -1
	default:
		idx := int((p.Y - bounds.Y) / MenuRowHeight)
		if idx >= len(pop.Items) {
			idx = len(pop.Items) - 1
		}
		if idx != pop.Selected {
			st.emit(Haptic{})
		}
		pop.Selected = idx
	}
	st.s.Popover = &pop
}
