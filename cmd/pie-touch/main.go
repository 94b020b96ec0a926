// Command pie-touch runs the pie launcher in an Ebitengine window driven by
// touch input or the left mouse button.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/pie-launcher/internal/app"
	"github.com/atomicstack/pie-launcher/internal/config"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/logging"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/atomicstack/pie-launcher/internal/render"
	"github.com/atomicstack/pie-launcher/internal/touch"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultWidth  = 480
	defaultHeight = 960
	openTimeout   = 5 * time.Second
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(map[string]interface{}{"argv": cfg.Args, "flags": cfg.Flags, "frontend": "touch"})

	if err := run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// windowScreen reads -width/-height as pixels for the window.
func windowScreen(cfg app.Config) geometry.Screen {
	screen := geometry.Screen{Width: defaultWidth, Height: defaultHeight}
	if cfg.Width > 0 {
		screen.Width = float64(cfg.Width)
	}
	if cfg.Height > 0 {
		screen.Height = float64(cfg.Height)
	}
	return screen
}

func run(cfg app.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	rt, err := app.Open(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer rt.Close()

	screen := windowScreen(cfg)
	ctrl := touch.NewController(touch.Options{
		Screen:    screen,
		Metrics:   cfg.Metrics(),
		Behaviour: cfg.Options,
		Directory: rt.Directory,
		Config:    rt.Config,
		Launcher:  rt.Launcher,
	})
	game, err := touch.NewGame(ctrl, rt.Watcher, render.FindFont())
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(int(screen.Width), int(screen.Height))
	ebiten.SetWindowTitle("pie-touch")
	err = ebiten.RunGame(game)
	events.App.Stop("exit")
	return err
}
