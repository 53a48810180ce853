package models

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/compiler-craft/internal/crypto"
)

func TestMemoryAnalysisStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAnalysisStore(0)
	result := &AnalysisResult{IsValidCode: true, Phases: []PhaseRecord{}}

	created, err := store.Create(ctx, "int x;", result)
	require.NoError(t, err)
	assert.Equal(t, crypto.SourceDigest("int x;"), created.Digest)

	byID, err := store.ByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Same(t, created, byID)

	byDigest, err := store.ByDigest(ctx, created.Digest)
	require.NoError(t, err)
	assert.Same(t, created, byDigest)

	again, err := store.Create(ctx, "int x;", &AnalysisResult{Phases: []PhaseRecord{}})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID, "identical source reuses the stored analysis")

	_, err = store.ByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrAnalysisNotFound))
	_, err = store.ByDigest(ctx, "nope")
	assert.True(t, errors.Is(err, ErrAnalysisNotFound))
}

func TestMemoryAnalysisStoreConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAnalysisStore(0)

	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := store.Create(ctx, "same source", &AnalysisResult{Phases: []PhaseRecord{}})
			if err == nil {
				ids[i] = a.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestMemoryAnalysisStoreReplacesInvalidVerdict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAnalysisStore(0)

	invalid, err := store.Create(ctx, "x = ", &AnalysisResult{Phases: []PhaseRecord{}})
	require.NoError(t, err)

	valid, err := store.Create(ctx, "x = ", &AnalysisResult{IsValidCode: true, Phases: []PhaseRecord{}})
	require.NoError(t, err)
	assert.NotEqual(t, invalid.ID, valid.ID)
	assert.True(t, valid.Result.IsValidCode)

	byDigest, err := store.ByDigest(ctx, valid.Digest)
	require.NoError(t, err)
	assert.Same(t, valid, byDigest)

	_, err = store.ByID(ctx, invalid.ID)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryAnalysisStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAnalysisStore(2)
	valid := func() *AnalysisResult { return &AnalysisResult{IsValidCode: true, Phases: []PhaseRecord{}} }

	a, err := store.Create(ctx, "a", valid())
	require.NoError(t, err)
	b, err := store.Create(ctx, "b", valid())
	require.NoError(t, err)

	// touch a so that b is the oldest
	_, err = store.ByID(ctx, a.ID)
	require.NoError(t, err)

	c, err := store.Create(ctx, "c", valid())
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
	_, err = store.ByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
	_, err = store.ByDigest(ctx, b.Digest)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)

	for _, kept := range []*StoredAnalysis{a, c} {
		got, err := store.ByID(ctx, kept.ID)
		require.NoError(t, err)
		assert.Same(t, kept, got)
	}
}
