package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, time.Minute)

	_, ok, err := store.Get(ctx, "GET /api/posts")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "GET /api/posts", &Entry{Status: 200, Body: []byte("hello")}))

	entry, ok, err := store.Get(ctx, "GET /api/posts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", string(entry.Body))
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, time.Minute)
	require.NoError(t, store.Set(ctx, "a", &Entry{Status: 200}))
	require.NoError(t, store.Set(ctx, "b", &Entry{Status: 200}))

	require.NoError(t, store.Clear(ctx))

	_, ok, _ := store.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "b")
	assert.False(t, ok)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, 20*time.Millisecond)
	require.NoError(t, store.Set(ctx, "a", &Entry{Status: 200}))

	assert.Eventually(t, func() bool {
		_, ok, _ := store.Get(ctx, "a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStoreEvictsOldest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2, time.Minute)
	require.NoError(t, store.Set(ctx, "a", &Entry{Status: 200}))
	require.NoError(t, store.Set(ctx, "b", &Entry{Status: 200}))
	require.NoError(t, store.Set(ctx, "c", &Entry{Status: 200}))

	_, ok, _ := store.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "c")
	assert.True(t, ok)
}
