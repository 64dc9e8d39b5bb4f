package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vecalign/internal/embedding"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float64{1, 0}, []float64{2, 0}), 1e-12)
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 3}), 1e-12)
	assert.InDelta(t, -1.0, Cosine([]float64{1, 0}, []float64{-1, 0}), 1e-12)
	assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 1}))
}

func TestNeighbors_RanksBySimilarity(t *testing.T) {
	space := embedding.NewSpace(2)
	require.NoError(t, space.Insert("east", []float64{1, 0}))
	require.NoError(t, space.Insert("north", []float64{0, 1}))
	require.NoError(t, space.Insert("northeast", []float64{1, 1}))

	idx := NewIndex(space)
	got := idx.Neighbors([]float64{1, 0.1}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "east", got[0].Word)
	assert.Equal(t, "northeast", got[1].Word)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestNeighbors_TopKClamped(t *testing.T) {
	space := embedding.NewSpace(2)
	require.NoError(t, space.Insert("only", []float64{1, 0}))
	idx := NewIndex(space)
	assert.Len(t, idx.Neighbors([]float64{1, 0}, 10), 1)
	assert.Len(t, idx.Neighbors([]float64{1, 0}, 0), 1)
}
