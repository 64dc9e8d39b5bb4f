package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vecalign/internal/domain"
)

func TestSpace_Accessors(t *testing.T) {
	s := NewSpace(2)
	require.NoError(t, s.Insert("chat", []float64{1, 0}))
	require.NoError(t, s.Insert("chien", []float64{0, 1}))

	assert.True(t, s.Has("chat"))
	assert.False(t, s.Has("cat"))
	assert.Equal(t, 2, s.Dimension())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"chat", "chien"}, s.Words())

	v, err := s.Vector("chat")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, v)

	_, err = s.Vector("cat")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpace_VectorsAreOwned(t *testing.T) {
	s := NewSpace(2)
	in := []float64{1, 2}
	require.NoError(t, s.Insert("w", in))
	in[0] = 99

	v, err := s.Vector("w")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, v)

	v[1] = 99
	again, err := s.Vector("w")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, again)
}

func TestSpace_InsertRejects(t *testing.T) {
	s := NewSpace(2)
	require.NoError(t, s.Insert("w", []float64{1, 0}))
	assert.Error(t, s.Insert("w", []float64{0, 1}), "duplicate word")
	assert.Error(t, s.Insert("x", []float64{1, 0, 0}), "wrong dimension")
	assert.Equal(t, 1, s.Len())
}

func TestSpace_ApplyTransform(t *testing.T) {
	s := NewSpace(2)
	require.NoError(t, s.Insert("chat", []float64{1, 0}))
	require.NoError(t, s.Insert("chien", []float64{0, 1}))

	swap := [][]float64{{0, 1}, {1, 0}}
	require.NoError(t, s.ApplyTransform(swap))

	assert.Equal(t, []string{"chat", "chien"}, s.Words())
	assert.Equal(t, 2, s.Dimension())
	v, err := s.Vector("chat")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, v)
}

func TestSpace_ApplyTransform_Composes(t *testing.T) {
	a := [][]float64{{0, 1}, {1, 0}}
	b := [][]float64{{2, 0}, {0, 3}}
	// composed = a·b
	composed := [][]float64{{0, 3}, {2, 0}}

	twice := NewSpace(2)
	require.NoError(t, twice.Insert("w", []float64{1.5, -0.5}))
	require.NoError(t, twice.ApplyTransform(a))
	require.NoError(t, twice.ApplyTransform(b))

	once := NewSpace(2)
	require.NoError(t, once.Insert("w", []float64{1.5, -0.5}))
	require.NoError(t, once.ApplyTransform(composed))

	v1, err := twice.Vector("w")
	require.NoError(t, err)
	v2, err := once.Vector("w")
	require.NoError(t, err)
	for i := range v1 {
		assert.InDelta(t, v2[i], v1[i], 1e-12)
	}
}

func TestSpace_ApplyTransform_RejectsBadShape(t *testing.T) {
	s := NewSpace(2)
	require.NoError(t, s.Insert("w", []float64{1, 0}))
	assert.Error(t, s.ApplyTransform([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))
	assert.Error(t, s.ApplyTransform([][]float64{{1, 0}, {0}}))
}
