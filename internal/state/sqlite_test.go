package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	// A file-backed store in a temp dir; ":memory:" would lose the
	// schema if database/sql opens a second connection.
	path := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, store.Open(path))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RecordAndList(t *testing.T) {
	store := newTestStore(t)

	first, err := store.RecordCalculation("5+3", "8")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "5+3", first.Expression)
	assert.Equal(t, "8", first.Result)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = store.RecordCalculation("1/3", "0.333333333")
	require.NoError(t, err)

	calcs, err := store.ListCalculations(0)
	require.NoError(t, err)
	require.Len(t, calcs, 2)
}

func TestSQLiteStore_ListLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.RecordCalculation("2*2", "4")
		require.NoError(t, err)
	}

	calcs, err := store.ListCalculations(3)
	require.NoError(t, err)
	assert.Len(t, calcs, 3)
}

func TestSQLiteStore_ClearHistory(t *testing.T) {
	store := newTestStore(t)

	_, err := store.RecordCalculation("5+3", "8")
	require.NoError(t, err)
	require.NoError(t, store.ClearHistory())

	calcs, err := store.ListCalculations(0)
	require.NoError(t, err)
	assert.Empty(t, calcs)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore()
	_, err := store.RecordCalculation("5+3", "8")
	assert.Error(t, err)
	_, err = store.ListCalculations(0)
	assert.Error(t, err)
	assert.Error(t, store.ClearHistory())
	assert.Error(t, store.Migrate())
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate())
}
