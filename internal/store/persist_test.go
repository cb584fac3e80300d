package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalil/prepdash/internal/storage"
)

type snapshotState struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	spec := persistSpec{name: "test-storage", version: 1}

	persist(ctx, kv, spec, snapshotState{Name: "verbal reasoning", Count: 3})

	var out snapshotState
	assert.True(t, rehydrate(ctx, kv, spec, &out))
	assert.Equal(t, snapshotState{Name: "verbal reasoning", Count: 3}, out)
}

func TestRehydrateMissingSnapshot(t *testing.T) {
	var out snapshotState
	assert.False(t, rehydrate(context.Background(), storage.NewMemory(), persistSpec{name: "test-storage", version: 1}, &out))
}

func TestRehydrateDiscardsVersionMismatch(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	persist(ctx, kv, persistSpec{name: "test-storage", version: 1}, snapshotState{Name: "old"})

	var out snapshotState
	assert.False(t, rehydrate(ctx, kv, persistSpec{name: "test-storage", version: 2}, &out))
	assert.Empty(t, out.Name)
}

func TestRehydrateDiscardsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	spec := persistSpec{name: "test-storage", version: 1}

	require.NoError(t, kv.Set(ctx, spec.name, []byte("not json")))

	var out snapshotState
	assert.False(t, rehydrate(ctx, kv, spec, &out))
}

func TestClearSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	spec := persistSpec{name: "test-storage", version: 1}

	persist(ctx, kv, spec, snapshotState{Name: "x"})
	clearSnapshot(ctx, kv, spec)

	var out snapshotState
	assert.False(t, rehydrate(ctx, kv, spec, &out))
}
