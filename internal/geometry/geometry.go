package geometry

import "math"

// Point is a position in logical screen pixels.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies within the rectangle, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Expand grows the rectangle by dx on the left and right and dy on the top
// and bottom. Negative values shrink it.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Screen describes the display bounds the menu must fit into.
type Screen struct {
	Width  float64
	Height float64
}

// Alignment selects how item positions are laid out.
type Alignment int

const (
	AlignCircle Alignment = iota
	AlignGrid
)

func (a Alignment) String() string {
	switch a {
	case AlignCircle:
		return "circle"
	case AlignGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// Metrics holds the tunable constants of the ring and its interaction model.
type Metrics struct {
	Radius         float64
	HoverThreshold float64
	EdgeMargin     float64
	BorderBand     float64
	MinScale       float64
	MaxScale       float64
	GridColumns    int
	ColumnPitch    float64
	RowPitch       float64
	GridOrigin     Point
}

// DefaultMetrics returns the stock ring geometry.
func DefaultMetrics() Metrics {
	return Metrics{
		Radius:         120,
		HoverThreshold: 30,
		EdgeMargin:     30,
		BorderBand:     100,
		MinScale:       0.85,
		MaxScale:       1.3,
		GridColumns:    5,
		ColumnPitch:    80,
		RowPitch:       77,
		GridOrigin:     Point{X: 50, Y: 80},
	}
}

// ItemPositions lays out count items around center (circle) or on a fixed
// grid that ignores center. Circle coordinates are rounded to whole pixels and
// item 0 sits at 12 o'clock, proceeding clockwise.
func (m Metrics) ItemPositions(center Point, count int, alignment Alignment) []Point {
	if count <= 0 {
		return []Point{}
	}
	out := make([]Point, count)
	switch alignment {
	case AlignGrid:
		cols := m.GridColumns
		if cols <= 0 {
			cols = 1
		}
		for i := range out {
			col := i % cols
			row := i / cols
			out[i] = Point{
				X: float64(col)*m.ColumnPitch + m.GridOrigin.X,
				Y: float64(row)*m.RowPitch + m.GridOrigin.Y,
			}
		}
	default:
		for i := range out {
			angle := (float64(i)/float64(count))*2*math.Pi - math.Pi/2
			out[i] = Point{
				X: roundHalfUp(center.X + m.Radius*math.Cos(angle)),
				Y: roundHalfUp(center.Y + m.Radius*math.Sin(angle)),
			}
		}
	}
	return out
}

// CalculateItemPositions lays out items using DefaultMetrics.
func CalculateItemPositions(center Point, count int, alignment Alignment) []Point {
	return DefaultMetrics().ItemPositions(center, count, alignment)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Locatable is anything with a screen position.
type Locatable interface {
	Position() Point
}

// FindClosest returns the item nearest to p and its distance. The first item
// wins ties. ok is false when items is empty.
func FindClosest[T Locatable](p Point, items []T) (closest T, distance float64, ok bool) {
	distance = math.Inf(1)
	for _, item := range items {
		d := Distance(p, item.Position())
		if d < distance {
			closest = item
			distance = d
			ok = true
		}
	}
	if !ok {
		distance = 0
	}
	return closest, distance, ok
}

// SafePosition moves p so the ring plus the edge margin stays on screen. Each
// axis is clamped independently; a point that already fits is returned as is.
func (m Metrics) SafePosition(screen Screen, p Point) Point {
	out := p
	reach := m.Radius + m.EdgeMargin
	if out.X+m.Radius > screen.Width {
		out.X = screen.Width - reach
	} else if out.X-m.Radius < 0 {
		out.X = reach
	}
	if out.Y+m.Radius > screen.Height {
		out.Y = screen.Height - reach
	} else if out.Y-m.Radius < 0 {
		out.Y = reach
	}
	return out
}

// InBorderBand reports whether p is within the reserved band along the top or
// bottom screen edge.
func (m Metrics) InBorderBand(screen Screen, p Point) bool {
	return p.Y <= m.BorderBand || p.Y >= screen.Height-m.BorderBand
}

// SessionFactor ramps from 0 at the press point to 1 once the finger has
// travelled three quarters of the radius.
func (m Metrics) SessionFactor(touch, initial Point) float64 {
	quarter := m.Radius / 4
	span := m.Radius - quarter
	if span <= 0 {
		return 1
	}
	return clamp((Distance(touch, initial)-quarter)/span, 0, 1)
}

// ScaleItems returns one scale factor per position. The item closest to touch
// grows the most; all items stay at MinScale until the finger has moved away
// from initial.
func (m Metrics) ScaleItems(touch, initial Point, positions []Point) []float64 {
	scales := make([]float64, len(positions))
	if len(positions) == 0 {
		return scales
	}
	session := m.SessionFactor(touch, initial)
	distances := make([]float64, len(positions))
	minD, maxD := math.Inf(1), math.Inf(-1)
	for i, pos := range positions {
		d := Distance(pos, touch)
		distances[i] = d
		minD = math.Min(minD, d)
		maxD = math.Max(maxD, d)
	}
	for i, d := range distances {
		normalized := 1.0
		if maxD != minD {
			normalized = (maxD - d) / (maxD - minD)
		}
		scales[i] = m.MinScale + (m.MaxScale-m.MinScale)*normalized*session
	}
	return scales
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
