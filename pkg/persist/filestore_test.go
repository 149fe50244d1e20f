package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshcoord.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyMapConfig, []byte(`{"style":"satellite"}`)))
	require.NoError(t, store.Save(ctx))
	require.NoError(t, store.Close())

	// A fresh store over the same file sees the saved value.
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)

	value, found, err := reloaded.Get(ctx, KeyMapConfig)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"style":"satellite"}`, string(value))
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "meshcoord.json"))
	require.NoError(t, err)

	_, found, err := store.Get(context.Background(), "never_written")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreUnsavedValuesAreVisibleInMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshcoord.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyGeneralConfig, []byte(`{"colorMode":"dark"}`)))

	_, found, err := store.Get(ctx, KeyGeneralConfig)
	require.NoError(t, err)
	assert.True(t, found)

	// Nothing reached disk yet.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStoreCloseFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshcoord.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyLastTCPConnection, []byte(`{"address":"192.168.1.20:4403"}`)))
	require.NoError(t, store.Close())

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestGetJSONAndSetJSON(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	require.NoError(t, SetJSON(ctx, store, "k", payload{Name: "mesh"}))

	var out payload

	found, err := GetJSON(ctx, store, "k", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "mesh", out.Name)

	found, err = GetJSON(ctx, store, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "bad", []byte("{")))

	_, err = GetJSON(ctx, store, "bad", &out)
	require.Error(t, err)
}
