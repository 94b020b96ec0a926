package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/menu"
	"github.com/atomicstack/pie-launcher/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

// labelCells is the label width of an item at scale 1.
const labelCells = 10

const idleHint = "press and drag to open the pie"

// View renders the current frame.
func (m *Model) View() string {
	if m.editor != nil {
		return m.editorView()
	}
	c := newCanvas(m.width, max(m.height-1, 1))
	view := gesture.Render(m.env(), m.gs)
	var header string
	switch {
	case view.Mode == gesture.ModeAllApps:
		header = m.drawListing(c, view)
	case view.Visible:
		header = m.drawRing(c, view)
	default:
		m.drawIdle(c)
	}
	lines := c.lines()
	if header != "" {
		lines[0] = header
	}
	return strings.Join(append(lines, m.footerView()), "\n")
}

func (m *Model) drawIdle(c *canvas) {
	style := styles.Info
	if m.flash {
		style = styles.Flash
	}
	c.putCentered(c.width/2, c.height/2, idleHint, style)
}

func (m *Model) drawRing(c *canvas, view gesture.View) string {
	cx, cy := m.cell(view.Center)
	marker := styles.Center
	if m.flash {
		marker = styles.Flash
	}
	c.put(cx, cy, "+", marker)

	for _, item := range view.Items {
		col, row := m.cell(item.Position())
		width := max(int(float64(labelCells)*item.Scale()), 3)
		label := truncate.StringWithTail(itemLabel(item), uint(width), "…")
		style := styles.HoveredItem
		if item.ItemID() != view.HoveredID {
			accent := theme.Accent(styles.Item, menu.Accent(item))
			style = &accent
		}
		c.putCentered(col, row, label, style)
	}

	if view.Touch != view.Center {
		tx, ty := m.cell(view.Touch)
		c.put(tx, ty, "•", styles.Touch)
	}
	if view.Popover != nil {
		m.drawPopover(c, view.Popover)
	}

	header := view.LayerName
	if header == "" {
		header = fmt.Sprintf("layer %d", view.LayerID)
	}
	style := theme.Accent(styles.Header, view.LayerColor)
	return style.Render(header)
}

func itemLabel(item menu.Item) string {
	switch item.(type) {
	case menu.LayerSwitchItem:
		return "› " + menu.Label(item)
	case menu.BrowserActionItem:
		return "↗ " + menu.Label(item)
	default:
		return menu.Label(item)
	}
}

func (m *Model) drawPopover(c *canvas, pv *gesture.PopoverView) {
	x0, _ := m.cell(geometry.Point{X: pv.Bounds.X, Y: pv.Bounds.Y})
	width := max(int(pv.Bounds.Width/m.cellWidth), 4)
	for i, item := range pv.Items {
		_, row := m.cell(geometry.Point{
			X: pv.Bounds.X,
			Y: pv.Bounds.Y + gesture.MenuRowHeight*float64(i) + gesture.MenuRowHeight/2,
		})
		style := styles.PopoverRow
		if item.PopoverID() == pv.SelectedID {
			style = styles.PopoverSelected
		}
		c.fill(x0, row, width, 1, style)
		c.put(x0+1, row, truncate.StringWithTail(item.PopoverLabel(), uint(width-2), "…"), style)
	}
}

func (m *Model) drawListing(c *canvas, view gesture.View) string {
	selected, _ := m.listing.Selected()
	width := max(int(m.metrics.ColumnPitch/m.cellWidth)-1, 3)
	for _, cell := range view.Listing {
		col, row := m.cell(cell.At)
		style := styles.ListingItem
		if cell.App.Package == selected.Package {
			style = styles.ListingSelected
		}
		c.putCentered(col, row, truncate.StringWithTail(cell.App.Label, uint(width), "…"), style)
	}
	if len(view.Listing) == 0 {
		c.putCentered(c.width/2, c.height/2, "no matching apps", styles.Info)
	}
	return m.filterPrompt()
}

// filterPrompt renders the listing filter with its caret.
func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := render(styles.FilterPrompt, "» ")
	text := m.listing.Filter
	if text == "" {
		return prompt + render(styles.Cursor, "(") + render(styles.FilterPlaceholder, "type to search)")
	}
	runes := []rune(text)
	pos := min(max(m.listing.FilterCursorPos(), 0), len(runes))
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + render(styles.Cursor, caret) + render(styles.Filter, after)
}

func (m *Model) footerView() string {
	var text string
	var style *lipgloss.Style
	switch {
	case m.errMsg != "":
		text, style = m.errMsg, styles.Error
	case m.backendLastErr != "":
		text, style = "backend: "+m.backendLastErr, styles.Error
	case m.infoMsg != "":
		text, style = m.infoMsg, styles.Info
	default:
		return m.help.ShortHelpView(m.shortHelp())
	}
	text = ansi.Truncate(text, max(m.width, 1), "…")
	if style != nil {
		return style.Render(text)
	}
	return text
}
