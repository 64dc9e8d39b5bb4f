package vecio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vecalign/internal/embedding"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.vec")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "2 3\nchat 1 0 -0.5\nchien 0 1 2.25\n")
	space, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, space.Len())
	assert.Equal(t, 3, space.Dimension())

	v, err := space.Vector("chien")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2.25}, v)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"bad header", "two 3\n"},
		{"missing field", "1 3\nchat 1 0\n"},
		{"extra field", "1 2\nchat 1 0 0\n"},
		{"bad value", "1 2\nchat 1 x\n"},
		{"count mismatch", "2 2\nchat 1 0\n"},
		{"duplicate word", "2 2\nchat 1 0\nchat 0 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.vec"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.vec")
}

func TestExportRoundTrip(t *testing.T) {
	space := embedding.NewSpace(2)
	require.NoError(t, space.Insert("chat", []float64{0.125, -3}))
	require.NoError(t, space.Insert("chien", []float64{1e-7, 42}))

	path := filepath.Join(t.TempDir(), "out.vec")
	require.NoError(t, Export(space, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, space.Words(), loaded.Words())
	assert.Equal(t, space.Dimension(), loaded.Dimension())
	for _, w := range space.Words() {
		want, err := space.Vector(w)
		require.NoError(t, err)
		got, err := loaded.Vector(w)
		require.NoError(t, err)
		assert.Equal(t, want, got, w)
	}
}
