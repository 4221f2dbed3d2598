package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/taskhub/internal/db"
	"github.com/alexanderramin/taskhub/internal/domain"
)

// Schema is the preference database schema, applied by db.Open.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// Well-known preference keys. These mirror the names the web client used
// in browser storage so an export/import stays recognizable.
const (
	KeyTheme         = "themePreset"
	KeyDensity       = "density"
	KeyDarkMode      = "darkMode"
	KeyManualOrder   = "manualTaskOrder"
	KeyFilterPresets = "savedTaskFilters"
	KeyAuthToken     = "token"
)

// Store persists durable user-local settings as JSON values keyed by
// string. Malformed stored values degrade to the zero value, never to an
// error: a corrupt preference must not take the app down.
type Store struct {
	db db.DBTX
}

// NewStore creates a Store over an open preference database.
func NewStore(conn db.DBTX) *Store {
	return &Store{db: conn}
}

// Open opens (or creates) the preference database at path and returns a
// Store over it. The caller owns closing the returned *sql.DB.
func Open(path string) (*Store, *sql.DB, error) {
	conn, err := db.Open(path, Schema)
	if err != nil {
		return nil, nil, fmt.Errorf("opening preferences: %w", err)
	}
	return NewStore(conn), conn, nil
}

// Get unmarshals the JSON value stored under key into dest. A missing key
// or undecodable value leaves dest untouched.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading preference %q: %w", key, err)
	}
	// Tolerate malformed stored JSON: treat it as unset.
	_ = json.Unmarshal([]byte(raw), dest)
	return nil
}

// Set marshals value to JSON and upserts it under key.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding preference %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("writing preference %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key, if any.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting preference %q: %w", key, err)
	}
	return nil
}

// ── typed accessors ─────────────────────────────────────────────────────────

func (s *Store) Theme(ctx context.Context) string {
	var v string
	_ = s.Get(ctx, KeyTheme, &v)
	if v == "" {
		return "ocean"
	}
	return v
}

func (s *Store) SetTheme(ctx context.Context, theme string) error {
	return s.Set(ctx, KeyTheme, theme)
}

func (s *Store) Density(ctx context.Context) string {
	var v string
	_ = s.Get(ctx, KeyDensity, &v)
	if v == "" {
		return "cozy"
	}
	return v
}

func (s *Store) SetDensity(ctx context.Context, density string) error {
	return s.Set(ctx, KeyDensity, density)
}

func (s *Store) DarkMode(ctx context.Context) bool {
	v := true
	_ = s.Get(ctx, KeyDarkMode, &v)
	return v
}

func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	return s.Set(ctx, KeyDarkMode, on)
}

func (s *Store) ManualOrder(ctx context.Context) []string {
	var ids []string
	_ = s.Get(ctx, KeyManualOrder, &ids)
	return ids
}

func (s *Store) SetManualOrder(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.Set(ctx, KeyManualOrder, ids)
}

func (s *Store) FilterPresets(ctx context.Context) []domain.FilterPreset {
	var presets []domain.FilterPreset
	_ = s.Get(ctx, KeyFilterPresets, &presets)
	return presets
}

func (s *Store) SetFilterPresets(ctx context.Context, presets []domain.FilterPreset) error {
	if presets == nil {
		presets = []domain.FilterPreset{}
	}
	return s.Set(ctx, KeyFilterPresets, presets)
}

func (s *Store) AuthToken(ctx context.Context) string {
	var v string
	_ = s.Get(ctx, KeyAuthToken, &v)
	return v
}

func (s *Store) SetAuthToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Delete(ctx, KeyAuthToken)
	}
	return s.Set(ctx, KeyAuthToken, token)
}
