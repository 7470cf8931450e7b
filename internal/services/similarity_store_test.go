package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitVector(axis int, scale float32) []float32 {
	v := make([]float32, EmbeddingDimension)
	v[axis] = scale
	return v
}

func TestMemoryStoreEmptySearch(t *testing.T) {
	store := NewMemoryStore()

	hits, err := store.Search(context.Background(), unitVector(0, 1), 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, "", RetrieveContext(context.Background(), store, unitVector(0, 1), 3))

	hits, err = store.Search(context.Background(), []float32{1, 2, 3}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = store.Search(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMemoryStoreAddAssignsMonotonicIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for want := 0; want < 3; want++ {
		id, err := store.Add(ctx, unitVector(0, 1), "same text")
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	assert.Equal(t, 3, store.Count())
}

func TestMemoryStoreSearchOrdersByDistance(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Add(ctx, unitVector(0, 10), "far")
	require.NoError(t, err)
	_, err = store.Add(ctx, unitVector(0, 1), "near")
	require.NoError(t, err)
	_, err = store.Add(ctx, unitVector(0, 4), "middle")
	require.NoError(t, err)

	hits, err := store.Search(ctx, unitVector(0, 0), 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, 1, hits[0].ID)
	assert.InDelta(t, 1.0, hits[0].Distance, 1e-6)
	assert.Equal(t, 2, hits[1].ID)
	assert.InDelta(t, 4.0, hits[1].Distance, 1e-6)

	assert.Equal(t, "near\nmiddle", RetrieveContext(ctx, store, unitVector(0, 0), 2))
}

func TestMemoryStoreReturnsAtMostStored(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Add(ctx, unitVector(1, 1), "only")
	require.NoError(t, err)

	hits, err := store.Search(ctx, unitVector(1, 1), 5)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Zero(t, hits[0].Distance)
}

func TestMemoryStoreRejectsWrongDimension(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Add(ctx, []float32{1, 2, 3}, "short")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Zero(t, store.Count())

	_, err = store.Add(ctx, unitVector(0, 1), "stored")
	require.NoError(t, err)

	_, err = store.Search(ctx, []float32{1, 2, 3}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	assert.Equal(t, "", RetrieveContext(ctx, store, []float32{1}, 1))
	assert.Equal(t, 1, store.Count())
}

func TestMemoryStoreCopiesVectors(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	v := unitVector(0, 1)
	_, err := store.Add(ctx, v, "a")
	require.NoError(t, err)
	v[0] = 100

	hits, err := store.Search(ctx, unitVector(0, 1), 1)
	require.NoError(t, err)
	assert.Zero(t, hits[0].Distance)
}

func TestMemoryStoreConcurrentAdds(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]int, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := store.Add(ctx, unitVector(i%EmbeddingDimension, 1), "r")
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
	}
	assert.Equal(t, 50, store.Count())
}
