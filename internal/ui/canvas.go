package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// canvas is a fixed grid of terminal cells that labels are stamped onto
// before the frame is rendered line by line.
type canvas struct {
	width  int
	height int
	runes  [][]rune
	styles [][]*lipgloss.Style
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: max(width, 0), height: max(height, 0)}
	c.runes = make([][]rune, c.height)
	c.styles = make([][]*lipgloss.Style, c.height)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", c.width))
		c.styles[y] = make([]*lipgloss.Style, c.width)
	}
	return c
}

// put writes text starting at column x of row y. Wide runes take two cells;
// anything past the right edge is dropped.
func (c *canvas) put(x, y int, text string, style *lipgloss.Style) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range text {
		w := max(ansi.StringWidth(string(r)), 1)
		if x >= 0 && x+w <= c.width {
			c.runes[y][x] = r
			c.styles[y][x] = style
			for i := 1; i < w; i++ {
				c.runes[y][x+i] = 0
				c.styles[y][x+i] = style
			}
		}
		x += w
	}
}

// putCentered centres text horizontally on column cx.
func (c *canvas) putCentered(cx, y int, text string, style *lipgloss.Style) {
	c.put(cx-ansi.StringWidth(text)/2, y, text, style)
}

// fill paints a rectangle of spaces in style.
func (c *canvas) fill(x, y, w, h int, style *lipgloss.Style) {
	for row := y; row < y+h; row++ {
		c.put(x, row, strings.Repeat(" ", max(w, 0)), style)
	}
}

func (c *canvas) lines() []string {
	out := make([]string, c.height)
	for y := range c.runes {
		var b strings.Builder
		var run strings.Builder
		var current *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current != nil {
				b.WriteString(current.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for x, r := range c.runes[y] {
			if r == 0 {
				continue
			}
			if style := c.styles[y][x]; style != current {
				flush()
				current = style
			}
			run.WriteRune(r)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

func (c *canvas) String() string {
	return strings.Join(c.lines(), "\n")
}
