package directory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	desktopEntrySection  = "Desktop Entry"
	desktopActionSection = "Desktop Action "
	desktopSuffix        = ".desktop"
)

// DefaultDirs returns the freedesktop application directories in precedence
// order: the user's data home first, then each entry of XDG_DATA_DIRS.
func DefaultDirs() []string {
	home := strings.TrimSpace(os.Getenv("XDG_DATA_HOME"))
	if home == "" {
		if userHome, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(userHome, ".local", "share")
		}
	}
	dataDirs := strings.TrimSpace(os.Getenv("XDG_DATA_DIRS"))
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	dirs := make([]string, 0, 4)
	if home != "" {
		dirs = append(dirs, filepath.Join(home, "applications"))
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, filepath.Join(dir, "applications"))
		}
	}
	return dirs
}

// Scan walks dirs for desktop entries. A desktop file id found in an earlier
// directory shadows the same id in later ones. Missing directories are skipped;
// unreadable or malformed files are reported in the joined error while the
// remaining apps are still returned.
func Scan(dirs []string) ([]App, error) {
	seen := make(map[string]struct{})
	apps := make([]App, 0, 64)
	var errs []error
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				errs = append(errs, err)
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(path, desktopSuffix) {
				return nil
			}
			id := desktopFileID(dir, path)
			if _, ok := seen[id]; ok {
				return nil
			}
			seen[id] = struct{}{}
			app, ok, perr := parseDesktopFile(path)
			if perr != nil {
				errs = append(errs, perr)
				return nil
			}
			if !ok {
				return nil
			}
			app.Package = id
			app.Path = path
			apps = append(apps, app)
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	sortApps(apps)
	return apps, errors.Join(errs...)
}

func desktopFileID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(filepath.ToSlash(rel), desktopSuffix)
	return strings.ReplaceAll(rel, "/", "-")
}

func parseDesktopFile(path string) (App, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return App{}, false, fmt.Errorf("open desktop entry: %w", err)
	}
	defer f.Close()
	app, ok, err := ParseDesktopEntry(f)
	if err != nil {
		return App{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return app, ok, nil
}

// ParseDesktopEntry reads a desktop entry. ok is false for entries that should
// not be listed: non-applications, hidden entries and entries without Exec.
func ParseDesktopEntry(r io.Reader) (App, bool, error) {
	sections := map[string]map[string]string{}
	var current map[string]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']' {
			name := line[1 : len(line)-1]
			current = map[string]string{}
			sections[name] = current
			continue
		}
		if current == nil {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		// Localised keys such as Name[de] are ignored.
		if strings.ContainsRune(key, '[') {
			continue
		}
		if _, dup := current[key]; !dup {
			current[key] = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return App{}, false, err
	}

	entry, ok := sections[desktopEntrySection]
	if !ok {
		return App{}, false, errors.New("missing [Desktop Entry] section")
	}
	if t := entry["Type"]; t != "" && t != "Application" {
		return App{}, false, nil
	}
	if boolKey(entry, "NoDisplay") || boolKey(entry, "Hidden") {
		return App{}, false, nil
	}
	app := App{
		Label:      entry["Name"],
		Icon:       entry["Icon"],
		Exec:       entry["Exec"],
		Terminal:   boolKey(entry, "Terminal"),
		WorkDir:    entry["Path"],
		Accent:     entry["X-Pie-Accent"],
		Background: entry["X-Pie-Background"],
		Monochrome: boolKey(entry, "X-Pie-Monochrome"),
	}
	if app.Exec == "" || app.Label == "" {
		return App{}, false, nil
	}
	for _, id := range splitList(entry["Actions"]) {
		section, ok := sections[desktopActionSection+id]
		if !ok || section["Exec"] == "" || section["Name"] == "" {
			continue
		}
		app.Actions = append(app.Actions, Action{
			ID:    id,
			Label: section["Name"],
			Icon:  section["Icon"],
			Exec:  section["Exec"],
		})
	}
	return app, true, nil
}

func boolKey(section map[string]string, key string) bool {
	v, ok := section[key]
	if !ok {
		return false
	}
	parsed, err := strconv.ParseBool(v)
	return err == nil && parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ";")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
