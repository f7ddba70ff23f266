package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitter/internal/kv"
)

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	t.Run("Get on missing key returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, kv.KeyExpenses)
		require.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("Set then Get round-trips bytes", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, kv.KeySavedFriends, []byte(`{"friend1":"Alice","friend2":""}`)))
		got, err := store.Get(ctx, kv.KeySavedFriends)
		require.NoError(t, err)
		assert.JSONEq(t, `{"friend1":"Alice","friend2":""}`, string(got))
	})

	t.Run("Set overwrites existing value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, kv.KeyExpenses, []byte(`[1]`)))
		require.NoError(t, store.Set(ctx, kv.KeyExpenses, []byte(`[]`)))
		got, err := store.Get(ctx, kv.KeyExpenses)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
	})
}

func TestSQLiteStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, kv.KeyExpenses, []byte(`[{"id":1}]`)))
	require.NoError(t, store.Close())

	// Migrations must be idempotent on an existing database.
	store, err = New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, kv.KeyExpenses)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))
}
