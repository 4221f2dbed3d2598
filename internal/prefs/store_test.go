package prefs

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/taskhub/internal/db"
	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(":memory:", Schema)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(newTestDB(t))
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "custom", map[string]int{"a": 1}))

	var got map[string]int
	require.NoError(t, s.Get(ctx, "custom", &got))
	assert.Equal(t, 1, got["a"])
}

func TestStore_MissingKeyLeavesDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	v := "fallback"
	require.NoError(t, s.Get(ctx, "nope", &v))
	assert.Equal(t, "fallback", v)
}

func TestStore_MalformedValueDegradesToDefault(t *testing.T) {
	conn := newTestDB(t)
	s := NewStore(conn)
	ctx := context.Background()

	_, err := conn.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, '2026-01-01T00:00:00Z')`,
		KeyManualOrder, "{not json")
	require.NoError(t, err)

	assert.Empty(t, s.ManualOrder(ctx), "corrupt value reads as empty")
	assert.Equal(t, "ocean", s.Theme(ctx))
}

func TestStore_OverwriteKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetTheme(ctx, "forest"))
	require.NoError(t, s.SetTheme(ctx, "sunset"))
	assert.Equal(t, "sunset", s.Theme(ctx))
}

func TestStore_TypedDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, "ocean", s.Theme(ctx))
	assert.Equal(t, "cozy", s.Density(ctx))
	assert.True(t, s.DarkMode(ctx))

	require.NoError(t, s.SetDarkMode(ctx, false))
	assert.False(t, s.DarkMode(ctx))
	assert.Empty(t, s.ManualOrder(ctx))
	assert.Empty(t, s.FilterPresets(ctx))
	assert.Empty(t, s.AuthToken(ctx))
}

func TestStore_FilterPresets_OrderedNeverDeduplicated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := domain.FilterPreset{
		Name:       "Filter 1",
		SearchTerm: "report",
		Status:     domain.StatusPending,
		Category:   "Work",
		Sort:       domain.SortDueAsc,
	}
	require.NoError(t, s.SetFilterPresets(ctx, []domain.FilterPreset{p, p}))

	got := s.FilterPresets(ctx)
	require.Len(t, got, 2, "duplicates are preserved")
	assert.Equal(t, p, got[0])
	assert.Equal(t, p, got[1])
}

func TestStore_AuthToken_EmptyClears(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetAuthToken(ctx, "tok-123"))
	assert.Equal(t, "tok-123", s.AuthToken(ctx))

	require.NoError(t, s.SetAuthToken(ctx, ""))
	assert.Empty(t, s.AuthToken(ctx))
}
