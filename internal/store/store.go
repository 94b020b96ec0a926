// Package store persists the launcher configuration in a SQLite database.
//
// Every document is stored as JSON under a fixed key of a single key/value
// table. Writes go through validation first, so a rejected document never
// replaces the last valid one.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/menu"

	_ "modernc.org/sqlite"
)

const (
	KeyLayers         = "layers"
	KeyBrowserActions = "browser-actions"
	KeyAppListCache   = "applist-cache"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key     TEXT PRIMARY KEY,
    value   TEXT NOT NULL,
    updated INTEGER NOT NULL
);
`

// Store is the configuration database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns the database location under the user's config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = filepath.Join(os.TempDir(), "pie-launcher")
		return filepath.Join(dir, "config.db")
	}
	return filepath.Join(dir, "pie-launcher", "config.db")
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// get decodes the document at key into v. found is false when the key has
// never been written.
func (s *Store) get(ctx context.Context, key string, v any) (found bool, err error) {
	var raw string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`,
		key, string(raw), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Updated returns when key was last written, or the zero time.
func (s *Store) Updated(ctx context.Context, key string) (time.Time, error) {
	var nanos int64
	err := s.db.QueryRowContext(ctx, `SELECT updated FROM kv WHERE key = ?`, key).Scan(&nanos)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read %s: %w", key, err)
	}
	return time.Unix(0, nanos), nil
}

// Layers returns the stored layer configuration, or the defaults when none
// has been saved yet.
func (s *Store) Layers(ctx context.Context) ([]menu.Layer, error) {
	var layers []menu.Layer
	found, err := s.get(ctx, KeyLayers, &layers)
	if err != nil {
		return nil, err
	}
	if !found {
		return menu.DefaultLayers(), nil
	}
	if err := menu.Validate(layers); err != nil {
		return nil, fmt.Errorf("stored layers: %w", err)
	}
	return layers, nil
}

// SaveLayers validates and stores layers. Invalid input is rejected and the
// previous value stays in place.
func (s *Store) SaveLayers(ctx context.Context, layers []menu.Layer) error {
	if err := menu.Validate(layers); err != nil {
		return err
	}
	return s.put(ctx, KeyLayers, layers)
}

// ImportLayers reads a YAML or JSON layer file and saves it.
func (s *Store) ImportLayers(ctx context.Context, path string) ([]menu.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import layers: %w", err)
	}
	layers, err := menu.ParseLayers(data)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	if err := s.SaveLayers(ctx, layers); err != nil {
		return nil, err
	}
	return layers, nil
}

// BrowserActions returns the stored browser actions, or the defaults.
func (s *Store) BrowserActions(ctx context.Context) ([]menu.BrowserAction, error) {
	var actions []menu.BrowserAction
	found, err := s.get(ctx, KeyBrowserActions, &actions)
	if err != nil {
		return nil, err
	}
	if !found {
		return menu.DefaultBrowserActions(), nil
	}
	return actions, nil
}

func (s *Store) SaveBrowserActions(ctx context.Context, actions []menu.BrowserAction) error {
	if err := menu.ValidateBrowserActions(actions); err != nil {
		return err
	}
	return s.put(ctx, KeyBrowserActions, actions)
}

// ImportBrowserActions reads a YAML or JSON action file and saves it.
func (s *Store) ImportBrowserActions(ctx context.Context, path string) ([]menu.BrowserAction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import browser actions: %w", err)
	}
	actions, err := menu.ParseBrowserActions(data)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	if err := s.SaveBrowserActions(ctx, actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// AppListCache returns the last directory snapshot written by SaveAppListCache.
// It lets a frontend draw the ring before the first scan completes.
func (s *Store) AppListCache(ctx context.Context) (directory.Snapshot, bool, error) {
	var snap directory.Snapshot
	found, err := s.get(ctx, KeyAppListCache, &snap)
	if err != nil || !found {
		return directory.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *Store) SaveAppListCache(ctx context.Context, snap directory.Snapshot) error {
	return s.put(ctx, KeyAppListCache, snap)
}
