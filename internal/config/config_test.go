package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/pie-launcher/internal/geometry"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := cfg.App
	if a.Radius != 120 || a.HoverThreshold != 30 || a.CellWidth != 10 || a.CellHeight != 20 {
		t.Fatalf("unexpected metric defaults %+v", a)
	}
	if a.Poll != 5*time.Second || a.DBPath == "" || a.DesktopDirs != nil {
		t.Fatalf("unexpected defaults %+v", a)
	}
	if cfg.Snapshot.Path != "" || cfg.ListApps {
		t.Fatalf("expected interactive mode by default")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadArgsEnvAndFlags(t *testing.T) {
	env := []string{
		"PIE_LAUNCHER_DB=/tmp/env.db",
		"PIE_LAUNCHER_DESKTOP_DIRS=/a: /b ::",
		"PIE_LAUNCHER_RADIUS=150",
		"PIE_LAUNCHER_LINK_POPOVER=true",
		"PIE_LAUNCHER_POLL=2s",
		"PIE_LAUNCHER_CELL_WIDTH=bogus",
		"PIE_LAUNCHER_BROWSER_ACTIONS=/tmp/actions.yaml",
	}
	cfg, err := LoadArgs([]string{"-db", "/tmp/flag.db", "-all-apps", "-hover-threshold", "25"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := cfg.App
	if a.DBPath != "/tmp/flag.db" {
		t.Fatalf("flag must win over env, got %q", a.DBPath)
	}
	if !reflect.DeepEqual(a.DesktopDirs, []string{"/a", "/b"}) {
		t.Fatalf("unexpected desktop dirs %q", a.DesktopDirs)
	}
	if a.Radius != 150 || a.HoverThreshold != 25 || a.CellWidth != 10 {
		t.Fatalf("unexpected metrics %+v", a)
	}
	if !a.Options.LinkPopover || !a.Options.AllAppsOnFail || a.Options.BrowserPopover {
		t.Fatalf("unexpected options %+v", a.Options)
	}
	if a.Poll != 2*time.Second || cfg.Flags["poll"] != "2s" {
		t.Fatalf("unexpected poll %v / %q", a.Poll, cfg.Flags["poll"])
	}
	if a.ActionsFile != "/tmp/actions.yaml" || cfg.Flags["browserActions"] != "/tmp/actions.yaml" {
		t.Fatalf("unexpected browser actions file %q", a.ActionsFile)
	}
}

func TestLoadArgsSnapshot(t *testing.T) {
	cfg, err := LoadArgs([]string{"-snapshot", "out.png", "-snapshot-size", "400x800", "-snapshot-touch", "200, 300"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := cfg.Snapshot
	if s.Screen != (geometry.Screen{Width: 400, Height: 800}) || s.Press != (geometry.Point{X: 200, Y: 400}) {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if s.Touch == nil || *s.Touch != (geometry.Point{X: 200, Y: 300}) {
		t.Fatalf("unexpected touch %v", s.Touch)
	}

	for _, args := range [][]string{
		{"-snapshot", "x.png", "-snapshot-size", "0x10"},
		{"-snapshot", "x.png", "-snapshot-press", "12"},
		{"-width", "-1"},
		{"-unknown"},
	} {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-radius", "20", "-hover-threshold", "30", "-poll", "10ms"}, nil)
	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"hover-threshold", "poll"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}
