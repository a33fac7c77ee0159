package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "tdm-sw0-st0.json", []byte("one")))
	require.NoError(t, store.Put(ctx, "tdm-sw1-st0.json", []byte("two")))
	require.NoError(t, store.Put(ctx, "other.bin", []byte("three")))

	data, err := store.Get(ctx, "tdm-sw0-st0.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)

	// Overwrite.
	require.NoError(t, store.Put(ctx, "tdm-sw0-st0.json", []byte("uno")))
	data, err = store.Get(ctx, "tdm-sw0-st0.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("uno"), data)

	names, err := store.List(ctx, "tdm-")
	require.NoError(t, err)
	assert.Equal(t, []string{"tdm-sw0-st0.json", "tdm-sw1-st0.json"}, names)

	require.NoError(t, store.Delete(ctx, "tdm-sw0-st0.json"))
	_, err = store.Get(ctx, "tdm-sw0-st0.json")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing artifact is not an error.
	assert.NoError(t, store.Delete(ctx, "tdm-sw0-st0.json"))
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestLocal(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestMemory_CopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	payload := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", payload))
	payload[0] = 'z'

	data, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	data[1] = 'z'
	again, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
