package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalil/prepdash/internal/storage"
)

func TestMemorySetGet(t *testing.T) {
	kv := storage.NewMemory()

	require.NoError(t, kv.Set(context.Background(), "k", []byte("v1")))

	value, ok, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), value)

	// The returned slice is a copy; mutating it must not leak back.
	value[0] = 'X'
	value2, _, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value2)
}

func TestMemoryMissingKey(t *testing.T) {
	kv := storage.NewMemory()

	_, ok, err := kv.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryDelete(t *testing.T) {
	kv := storage.NewMemory()

	require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, kv.Delete(context.Background(), "k"))

	_, ok, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	require.NoError(t, kv.Delete(context.Background(), "k"))
}

func TestMemoryKeysPrefix(t *testing.T) {
	kv := storage.NewMemory()

	require.NoError(t, kv.Set(context.Background(), "app:a", []byte("1")))
	require.NoError(t, kv.Set(context.Background(), "app:b", []byte("2")))
	require.NoError(t, kv.Set(context.Background(), "other", []byte("3")))

	keys, err := kv.Keys(context.Background(), "app:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"app:a", "app:b"}, keys)
}

func TestNotifierFanOut(t *testing.T) {
	kv := storage.NewMemory()

	var first, second []string
	cancelFirst := kv.Subscribe(func(key string) { first = append(first, key) })
	kv.Subscribe(func(key string) { second = append(second, key) })

	kv.NotifyExternal("user-storage")
	assert.Equal(t, []string{"user-storage"}, first)
	assert.Equal(t, []string{"user-storage"}, second)

	cancelFirst()
	kv.NotifyExternal("course-storage")
	assert.Equal(t, []string{"user-storage"}, first, "cancelled subscriber must not be notified")
	assert.Equal(t, []string{"user-storage", "course-storage"}, second)
}

func TestLocalWritesDoNotNotify(t *testing.T) {
	kv := storage.NewMemory()

	var seen []string
	kv.Subscribe(func(key string) { seen = append(seen, key) })

	require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, kv.Delete(context.Background(), "k"))
	assert.Empty(t, seen, "only external changes fan out to subscribers")
}
