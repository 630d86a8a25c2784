package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tchybbi/Smatico/internal/config"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok, "missing key is not an error")

	require.NoError(t, kv.Put(ctx, "appData", []byte(`{"users":[]}`)))
	raw, ok, err := kv.Get(ctx, "appData")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"users":[]}`, string(raw))

	// Overwrite
	require.NoError(t, kv.Put(ctx, "appData", []byte(`{"users":[{}]}`)))
	raw, _, err = kv.Get(ctx, "appData")
	require.NoError(t, err)
	assert.Equal(t, `{"users":[{}]}`, string(raw))

	require.NoError(t, kv.Delete(ctx, "appData"))
	_, ok, err = kv.Get(ctx, "appData")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is fine.
	require.NoError(t, kv.Delete(ctx, "appData"))

	require.NoError(t, kv.Ping(ctx))
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemory()
	defer kv.Close()
	testKV(t, kv)
}

func TestMemoryKVCopies(t *testing.T) {
	kv := NewMemory()
	defer kv.Close()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, kv.Put(ctx, "k", value))
	value[0] = 'X'

	got, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	got[0] = 'Y'
	again, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smatico.db")
	kv, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer kv.Close()
	testKV(t, kv)
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "smatico.db")

	kv, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "appData", []byte("persisted")))
	require.NoError(t, kv.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	raw, ok, err := reopened.Get(ctx, "appData")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", string(raw))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StorageDriver: "cassandra"})
	assert.Error(t, err)
}
