package directory

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var runXDGSettings = func(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "xdg-settings", args...).Output()
}

// DefaultBrowser asks xdg-settings for the default web browser and returns its
// package identifier, or "" when none is configured.
func DefaultBrowser(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	out, err := runXDGSettings(ctx, "get", "default-web-browser")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) || errors.Is(err, exec.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("query default browser: %w", err)
	}
	return strings.TrimSuffix(strings.TrimSpace(string(out)), desktopSuffix), nil
}

// Load scans dirs and resolves the default browser into one snapshot. The
// browser is dropped when it is not among the scanned apps.
func Load(ctx context.Context, dirs []string) (Snapshot, error) {
	apps, scanErr := Scan(dirs)
	snap := Snapshot{Apps: apps}
	browser, err := DefaultBrowser(ctx)
	if err != nil {
		return snap, errors.Join(scanErr, err)
	}
	if _, ok := snap.Lookup(browser); ok {
		snap.DefaultBrowser = browser
	}
	return snap, scanErr
}
