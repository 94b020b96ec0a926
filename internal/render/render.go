// Package render draws a gesture.View into an image with gogpu/gg. It backs
// the PNG snapshot mode and the frames shown by the touch frontend.
package render

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/menu"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

const (
	background   = "#101014"
	ringColor    = "#2A2A33"
	hoverColor   = "#FFFFFF"
	popoverColor = "#1E1E26"
	selectColor  = "#3A3A4A"
	labelColor   = "#EEEEEE"
	touchColor   = "#FF8800"

	// itemRadius is the unscaled radius of an item disc.
	itemRadius = 24.0
	fontSize   = 13.0
)

// fontCandidates are TTF fonts commonly installed on Linux desktops.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// FindFont returns the first installed font from a list of common ones, or
// "" when none is present.
func FindFont() string {
	for _, path := range fontCandidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Renderer owns a drawing context the size of the screen.
type Renderer struct {
	dc     *gg.Context
	source *text.FontSource
}

// New creates a renderer. Labels are only drawn when fontPath names a
// loadable TTF font.
func New(screen geometry.Screen, fontPath string) (*Renderer, error) {
	w, h := int(screen.Width), int(screen.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid screen %vx%v", screen.Width, screen.Height)
	}
	r := &Renderer{dc: gg.NewContext(w, h)}
	if fontPath != "" {
		source, err := text.NewFontSourceFromFile(fontPath)
		if err != nil {
			r.dc.Close()
			return nil, fmt.Errorf("render: load font: %w", err)
		}
		r.source = source
		r.dc.SetFont(source.Face(fontSize))
	}
	return r, nil
}

// Close releases the font and the drawing context.
func (r *Renderer) Close() error {
	if r.source != nil {
		_ = r.source.Close()
	}
	return r.dc.Close()
}

// Image returns the last drawn frame.
func (r *Renderer) Image() image.Image {
	return r.dc.Image()
}

func (r *Renderer) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Draw paints view over a cleared frame.
func (r *Renderer) Draw(view gesture.View, metrics geometry.Metrics) {
	dc := r.dc
	dc.ClearWithColor(gg.Hex(background))
	switch {
	case view.Mode == gesture.ModeAllApps:
		r.drawListing(view)
	case view.Visible:
		r.drawRing(view, metrics)
	}
}

func (r *Renderer) drawRing(view gesture.View, metrics geometry.Metrics) {
	dc := r.dc
	accent := view.LayerColor
	if accent == "" {
		accent = menu.DefaultLinkAccent
	}
	dc.SetHexColor(ringColor)
	dc.SetLineWidth(2)
	dc.DrawCircle(view.Center.X, view.Center.Y, metrics.Radius)
	_ = dc.Stroke()

	dc.SetHexColor(accent)
	dc.DrawCircle(view.Center.X, view.Center.Y, 6)
	_ = dc.Fill()

	for _, item := range view.Items {
		at := item.Position()
		radius := itemRadius * item.Scale()
		color := menu.Accent(item)
		if color == "" {
			color = accent
		}
		dc.SetHexColor(color)
		dc.DrawCircle(at.X, at.Y, radius)
		_ = dc.Fill()
		if item.ItemID() == view.HoveredID {
			dc.SetHexColor(hoverColor)
			dc.SetLineWidth(3)
			dc.DrawCircle(at.X, at.Y, radius+3)
			_ = dc.Stroke()
		}
		r.label(menu.Label(item), at.X, at.Y+radius+fontSize)
	}

	if view.Touch != view.Center {
		dc.SetHexColor(touchColor)
		dc.DrawCircle(view.Touch.X, view.Touch.Y, 5)
		_ = dc.Fill()
	}
	if view.Popover != nil {
		r.drawPopover(view.Popover)
	}
}

func (r *Renderer) drawPopover(pv *gesture.PopoverView) {
	dc := r.dc
	b := pv.Bounds
	dc.SetHexColor(popoverColor)
	dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, 8)
	_ = dc.Fill()
	for i, item := range pv.Items {
		y := b.Y + gesture.MenuRowHeight*float64(i)
		if item.PopoverID() == pv.SelectedID {
			dc.SetHexColor(selectColor)
			dc.DrawRectangle(b.X, y, b.Width, gesture.MenuRowHeight)
			_ = dc.Fill()
		}
		r.labelLeft(item.PopoverLabel(), b.X+12, y+gesture.MenuRowHeight/2)
	}
}

func (r *Renderer) drawListing(view gesture.View) {
	dc := r.dc
	for _, cell := range view.Listing {
		color := cell.App.Accent
		if color == "" {
			color = menu.DefaultLinkAccent
		}
		dc.SetHexColor(color)
		dc.DrawCircle(cell.At.X, cell.At.Y, itemRadius)
		_ = dc.Fill()
		r.label(cell.App.Label, cell.At.X, cell.At.Y+itemRadius+fontSize)
	}
}

func (r *Renderer) label(s string, x, y float64) {
	if r.source == nil || s == "" {
		return
	}
	r.dc.SetHexColor(labelColor)
	r.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

func (r *Renderer) labelLeft(s string, x, y float64) {
	if r.source == nil || s == "" {
		return
	}
	r.dc.SetHexColor(labelColor)
	r.dc.DrawStringAnchored(s, x, y, 0, 0.5)
}

// Preview returns the frame shown after pressing at press and moving the
// finger to touch. A nil touch leaves the finger on the press point.
func Preview(env gesture.Env, press geometry.Point, touch *geometry.Point) gesture.View {
	s := gesture.NewState(env)
	s, _ = gesture.Step(env, s, gesture.Start{P: press})
	if touch != nil {
		s, _ = gesture.Step(env, s, gesture.Move{P: *touch})
	}
	return gesture.Render(env, s)
}
