package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/pie-launcher/internal/app"
	"github.com/atomicstack/pie-launcher/internal/geometry"
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/atomicstack/pie-launcher/internal/store"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Snapshot Snapshot
	ListApps bool
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// Snapshot configures the PNG preview mode. An empty Path disables it.
type Snapshot struct {
	Path   string
	Screen geometry.Screen
	Press  geometry.Point
	Touch  *geometry.Point
}

const (
	envSocketPath     = "PIE_LAUNCHER_SOCKET"
	envDBPath         = "PIE_LAUNCHER_DB"
	envDesktopDirs    = "PIE_LAUNCHER_DESKTOP_DIRS"
	envLayers         = "PIE_LAUNCHER_LAYERS"
	envActions        = "PIE_LAUNCHER_BROWSER_ACTIONS"
	envWidth          = "PIE_LAUNCHER_WIDTH"
	envHeight         = "PIE_LAUNCHER_HEIGHT"
	envCellWidth      = "PIE_LAUNCHER_CELL_WIDTH"
	envCellHeight     = "PIE_LAUNCHER_CELL_HEIGHT"
	envRadius         = "PIE_LAUNCHER_RADIUS"
	envHoverThreshold = "PIE_LAUNCHER_HOVER_THRESHOLD"
	envLinkPopover    = "PIE_LAUNCHER_LINK_POPOVER"
	envBrowserPopover = "PIE_LAUNCHER_BROWSER_POPOVER"
	envAllApps        = "PIE_LAUNCHER_ALL_APPS"
	envPoll           = "PIE_LAUNCHER_POLL"
	envTrace          = "PIE_LAUNCHER_TRACE"
	envLogFile        = "PIE_LAUNCHER_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	metrics := geometry.DefaultMetrics()

	fs := flag.NewFlagSet("pie-launcher", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket used for terminal apps")
	dbPath := fs.String("db", envOrDefault(env, envDBPath, store.DefaultPath()), "path to the configuration database")
	desktopDirs := fs.String("desktop-dirs", envOrDefault(env, envDesktopDirs, ""), "colon separated application directories (default: XDG data dirs)")
	layers := fs.String("layers", envOrDefault(env, envLayers, ""), "YAML or JSON layer file imported on startup when newer than the stored layers")
	actions := fs.String("browser-actions", envOrDefault(env, envActions, ""), "YAML or JSON browser action file imported on startup when newer than the stored actions")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "viewport width in cells, or window width in pixels for pie-touch (0 uses the terminal)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "viewport height in rows, or window height in pixels for pie-touch (0 uses the terminal)")
	cellWidth := fs.Float64("cell-width", envOrFloat(env, envCellWidth, 10), "pixels per terminal column")
	cellHeight := fs.Float64("cell-height", envOrFloat(env, envCellHeight, 20), "pixels per terminal row")
	radius := fs.Float64("radius", envOrFloat(env, envRadius, metrics.Radius), "ring radius in pixels")
	hover := fs.Float64("hover-threshold", envOrFloat(env, envHoverThreshold, metrics.HoverThreshold), "hover distance inside the ring in pixels")
	linkPopover := fs.Bool("link-popover", envOrBool(env, envLinkPopover, false), "long hold on a layer link opens a popover of its apps")
	browserPopover := fs.Bool("browser-popover", envOrBool(env, envBrowserPopover, false), "long hold on the default browser opens its actions as a popover")
	allApps := fs.Bool("all-apps", envOrBool(env, envAllApps, false), "show all apps when a gesture fails")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, 5*time.Second), "directory and configuration poll interval")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	snapshot := fs.String("snapshot", "", "render the base layer to this PNG file and exit")
	snapshotSize := fs.String("snapshot-size", "480x960", "snapshot screen size as WIDTHxHEIGHT")
	snapshotPress := fs.String("snapshot-press", "", "snapshot press point as X,Y (default: screen centre)")
	snapshotTouch := fs.String("snapshot-touch", "", "snapshot finger position as X,Y (default: press point)")
	listApps := fs.Bool("list-apps", false, "print the installed applications and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	snap := Snapshot{Path: *snapshot}
	if snap.Path != "" {
		screen, err := parseSize(*snapshotSize)
		if err != nil {
			return Config{}, fmt.Errorf("snapshot-size: %w", err)
		}
		snap.Screen = screen
		snap.Press = geometry.Point{X: screen.Width / 2, Y: screen.Height / 2}
		if *snapshotPress != "" {
			if snap.Press, err = parsePoint(*snapshotPress); err != nil {
				return Config{}, fmt.Errorf("snapshot-press: %w", err)
			}
		}
		if *snapshotTouch != "" {
			touch, err := parsePoint(*snapshotTouch)
			if err != nil {
				return Config{}, fmt.Errorf("snapshot-touch: %w", err)
			}
			snap.Touch = &touch
		}
	}

	cfg := Config{
		App: app.Config{
			SocketPath:     *socket,
			DBPath:         *dbPath,
			DesktopDirs:    splitDirs(*desktopDirs),
			LayersFile:     *layers,
			ActionsFile:    *actions,
			Width:          *width,
			Height:         *height,
			CellWidth:      *cellWidth,
			CellHeight:     *cellHeight,
			Radius:         *radius,
			HoverThreshold: *hover,
			Options: gesture.Options{
				LinkPopover:    *linkPopover,
				BrowserPopover: *browserPopover,
				AllAppsOnFail:  *allApps,
			},
			Poll: *poll,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Snapshot: snap,
		ListApps: *listApps,
		Flags: map[string]string{
			"socket":         *socket,
			"db":             *dbPath,
			"desktopDirs":    *desktopDirs,
			"layers":         *layers,
			"browserActions": *actions,
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"cellWidth":      formatFloat(*cellWidth),
			"cellHeight":     formatFloat(*cellHeight),
			"radius":         formatFloat(*radius),
			"hoverThreshold": formatFloat(*hover),
			"linkPopover":    strconv.FormatBool(*linkPopover),
			"browserPopover": strconv.FormatBool(*browserPopover),
			"allApps":        strconv.FormatBool(*allApps),
			"poll":           poll.String(),
			"trace":          strconv.FormatBool(*trace),
			"logFile":        *logFile,
			"snapshot":       *snapshot,
			"listApps":       strconv.FormatBool(*listApps),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func splitDirs(value string) []string {
	var dirs []string
	for _, dir := range filepath.SplitList(value) {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func parsePoint(value string) (geometry.Point, error) {
	xs, ys, ok := strings.Cut(value, ",")
	if !ok {
		return geometry.Point{}, fmt.Errorf("expected X,Y (got %q)", value)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err := errors.Join(errX, errY); err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: x, Y: y}, nil
}

func parseSize(value string) (geometry.Screen, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(value), "x")
	if !ok {
		return geometry.Screen{}, fmt.Errorf("expected WIDTHxHEIGHT (got %q)", value)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(ws))
	h, errH := strconv.Atoi(strings.TrimSpace(hs))
	if err := errors.Join(errW, errH); err != nil {
		return geometry.Screen{}, err
	}
	if w <= 0 || h <= 0 {
		return geometry.Screen{}, fmt.Errorf("size must be positive (got %q)", value)
	}
	return geometry.Screen{Width: float64(w), Height: float64(h)}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks the ring metrics and poll interval.
func Validate(cfg Config) error {
	var errs []error
	a := cfg.App
	if a.Radius <= 0 {
		errs = append(errs, fmt.Errorf("radius must be > 0 (got %v)", a.Radius))
	}
	if a.HoverThreshold <= 0 || a.HoverThreshold >= a.Radius {
		errs = append(errs, fmt.Errorf("hover-threshold must be between 0 and the radius (got %v)", a.HoverThreshold))
	}
	if a.CellWidth <= 0 || a.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive (got %vx%v)", a.CellWidth, a.CellHeight))
	}
	if a.Poll < 100*time.Millisecond {
		errs = append(errs, fmt.Errorf("poll must be at least 100ms (got %v)", a.Poll))
	}
	if strings.TrimSpace(a.DBPath) == "" {
		errs = append(errs, errors.New("db path must not be empty"))
	}
	return errors.Join(errs...)
}
