// Package touch is the touch frontend: an Ebitengine game that samples the
// first touch (or the left mouse button) every tick, feeds it to the gesture
// machine and draws the rendered ring with fades tweened by gween.
package touch

import (
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/atomicstack/pie-launcher/internal/backend"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/logging"
	"github.com/atomicstack/pie-launcher/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game implements ebiten.Game.
type Game struct {
	ctrl     *Controller
	watcher  *backend.Watcher
	renderer *render.Renderer
	fontPath string
	metrics  geometry.Metrics
	screen   geometry.Screen
	now      func() time.Time

	fx      fader
	visible bool
	shown   gesture.View

	frame  *ebiten.Image
	pixels *image.RGBA
}

// NewGame wires ctrl to a renderer of the controller's screen size. watcher
// may be nil.
func NewGame(ctrl *Controller, watcher *backend.Watcher, fontPath string) (*Game, error) {
	r, err := render.New(ctrl.opts.Screen, fontPath)
	if err != nil {
		return nil, err
	}
	g := &Game{
		ctrl:     ctrl,
		watcher:  watcher,
		renderer: r,
		fontPath: fontPath,
		metrics:  ctrl.opts.Metrics,
		screen:   ctrl.opts.Screen,
		now:      time.Now,
	}
	prev := ctrl.opts.OnHaptic
	ctrl.opts.OnHaptic = func() {
		g.fx.kick()
		if prev != nil {
			prev()
		}
	}
	return g, nil
}

// Close releases the renderer.
func (g *Game) Close() error {
	return g.renderer.Close()
}

func (g *Game) Update() error {
	now := g.now()
	g.drainBackend()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.ctrl.Dismiss(now)
	}
	down, p := samplePointer()
	g.ctrl.Pointer(down, p, now)
	g.ctrl.Tick(now)

	view := g.ctrl.View()
	visible := view.Visible || view.Mode == gesture.ModeAllApps
	if visible != g.visible {
		g.visible = visible
		g.fx.show(visible)
	}
	if visible {
		g.shown = view
	}
	g.fx.update(1 / float32(ebiten.TPS()))
	return nil
}

func (g *Game) drainBackend() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case evt, ok := <-g.watcher.Events():
			if !ok {
				g.watcher = nil
				return
			}
			g.ctrl.Apply(evt)
		default:
			return
		}
	}
}

// samplePointer reads the first active touch, falling back to the mouse.
func samplePointer() (bool, geometry.Point) {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return true, geometry.Point{X: float64(x), Y: float64(y)}
	}
	x, y := ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), geometry.Point{X: float64(x), Y: float64(y)}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.fx.idle() {
		g.renderer.Draw(g.shown, g.metrics)
		if g.pixels == nil {
			g.pixels = image.NewRGBA(image.Rect(0, 0, int(g.screen.Width), int(g.screen.Height)))
			g.frame = ebiten.NewImage(int(g.screen.Width), int(g.screen.Height))
		}
		draw.Draw(g.pixels, g.pixels.Bounds(), g.renderer.Image(), image.Point{}, draw.Src)
		g.frame.WritePixels(g.pixels.Pix)

		op := &ebiten.DrawImageOptions{}
		boost := 1 + 0.25*g.fx.flash
		op.ColorScale.Scale(boost, boost, boost, 1)
		op.ColorScale.ScaleAlpha(g.fx.alpha)
		screen.DrawImage(g.frame, op)
	}
	if status := g.ctrl.Status(); status != "" {
		ebitenutil.DebugPrintAt(screen, status, 8, int(g.screen.Height)-20)
	}
}

// Layout follows the window size so the ring stays clamped to what is
// visible.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		size := geometry.Screen{Width: float64(outsideWidth), Height: float64(outsideHeight)}
		if size != g.screen {
			g.resize(size)
		}
	}
	return int(g.screen.Width), int(g.screen.Height)
}

func (g *Game) resize(size geometry.Screen) {
	r, err := render.New(size, g.fontPath)
	if err != nil {
		logging.Error(fmt.Errorf("resize renderer: %w", err))
		return
	}
	_ = g.renderer.Close()
	g.renderer = r
	g.screen = size
	if g.frame != nil {
		g.frame.Deallocate()
	}
	g.frame, g.pixels = nil, nil
	g.ctrl.Resize(size)
}
