package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitter/internal/config"
	"splitter/internal/kv"
	"splitter/internal/log"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{DataBackend: "memory", StorageQuotaBytes: 128, MemorySeedDir: "seed"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: MemoryBackend, QuotaBytes: 128, SeedDir: "seed"}, cfg)
}

func TestCreateMemoryBackend(t *testing.T) {
	ctx := context.Background()
	res, err := NewFactory(log.Discard()).CreateBackend(ctx, Config{Type: MemoryBackend, QuotaBytes: 16})
	require.NoError(t, err)
	defer res.Cleanup()

	assert.ErrorIs(t, res.Store.Set(ctx, kv.KeyExpenses, make([]byte, 64)), kv.ErrQuotaExceeded)
}

func TestCreateMemoryBackendSeeded(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "savedFriends.json"), []byte(`{"friend1":"Alice","friend2":"Bob"}`), 0o644))

	res, err := NewFactory(log.Discard()).CreateBackend(ctx, Config{Type: MemoryBackend, SeedDir: dir})
	require.NoError(t, err)

	raw, err := res.Store.Get(ctx, kv.KeySavedFriends)
	require.NoError(t, err)
	assert.JSONEq(t, `{"friend1":"Alice","friend2":"Bob"}`, string(raw))
}

func TestCreateMemoryBackendSeedOverQuota(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "expenses.json"), make([]byte, 64), 0o644))

	_, err := NewFactory(log.Discard()).CreateBackend(context.Background(), Config{Type: MemoryBackend, SeedDir: dir, QuotaBytes: 16})
	assert.ErrorIs(t, err, kv.ErrQuotaExceeded)
}

func TestCreateSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "splitter.db")

	res, err := NewFactory(log.Discard()).CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	require.NoError(t, res.Store.Set(ctx, kv.KeyExpenses, []byte("[]")))
	require.NoError(t, res.Cleanup())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend})
	assert.Error(t, err)
}
