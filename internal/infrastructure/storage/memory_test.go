package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStoragePutAndExists(t *testing.T) {
	store := NewMemoryObjectStorage()
	ctx := context.Background()

	exists, err := store.Exists(ctx, "prod-1_cover.png")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, "prod-1_cover.png", "image/png", strings.NewReader("png-bytes")))

	exists, err = store.Exists(ctx, "prod-1_cover.png")
	require.NoError(t, err)
	assert.True(t, exists)

	data, ok := store.Get("prod-1_cover.png")
	require.True(t, ok)
	assert.Equal(t, "png-bytes", string(data))
}

func TestMemoryObjectStorageOverwrite(t *testing.T) {
	store := NewMemoryObjectStorage()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", "image/png", strings.NewReader("first")))
	require.NoError(t, store.Put(ctx, "key", "image/png", strings.NewReader("second")))

	data, _ := store.Get("key")
	assert.Equal(t, "second", string(data))
}

func TestMemoryObjectStorageDelete(t *testing.T) {
	store := NewMemoryObjectStorage()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", "image/png", strings.NewReader("data")))
	require.NoError(t, store.Delete(ctx, "key"))

	exists, err := store.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error.
	require.NoError(t, store.Delete(ctx, "key"))
}

func TestMemoryObjectStorageRejectsEmptyKey(t *testing.T) {
	store := NewMemoryObjectStorage()
	ctx := context.Background()

	assert.Error(t, store.Put(ctx, "", "image/png", strings.NewReader("data")))
	_, err := store.Exists(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}
