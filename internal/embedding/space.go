package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"vecalign/internal/domain"
)

// Space is an embedding space: an ordered vocabulary with one fixed-length
// vector per word. A space owns its vectors; accessors and Insert copy so no
// two spaces ever share backing storage.
type Space struct {
	words   []string
	index   map[string]int
	vectors [][]float64
	dim     int
}

// NewSpace creates an empty space with the given dimensionality.
func NewSpace(dim int) *Space {
	return &Space{index: make(map[string]int), dim: dim}
}

// Has reports whether the word is in the vocabulary.
func (s *Space) Has(word string) bool {
	_, ok := s.index[word]
	return ok
}

// Vector returns a copy of the word's vector, or ErrNotFound.
func (s *Space) Vector(word string) ([]float64, error) {
	i, ok := s.index[word]
	if !ok {
		return nil, fmt.Errorf("%q: %w", word, domain.ErrNotFound)
	}
	out := make([]float64, s.dim)
	copy(out, s.vectors[i])
	return out, nil
}

// Dimension returns the vector length shared by all words in the space.
func (s *Space) Dimension() int { return s.dim }

// Len returns the vocabulary size.
func (s *Space) Len() int { return len(s.words) }

// Words returns the vocabulary in insertion order.
func (s *Space) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Insert adds a new word with a copy of the given vector. It rejects
// dimension mismatches and never overwrites an existing entry.
func (s *Space) Insert(word string, vector []float64) error {
	if len(vector) != s.dim {
		return fmt.Errorf("insert %q: vector has %d dims, space has %d", word, len(vector), s.dim)
	}
	if _, ok := s.index[word]; ok {
		return fmt.Errorf("insert %q: word already present", word)
	}
	v := make([]float64, s.dim)
	copy(v, vector)
	s.index[word] = len(s.words)
	s.words = append(s.words, word)
	s.vectors = append(s.vectors, v)
	return nil
}

// ApplyTransform replaces every vector v with v·t in place. The transform
// must be square with side equal to the space dimensionality, so the word set
// and dimensionality are unchanged.
func (s *Space) ApplyTransform(t [][]float64) error {
	if len(t) != s.dim {
		return fmt.Errorf("transform has %d rows, space has %d dims", len(t), s.dim)
	}
	for _, row := range t {
		if len(row) != s.dim {
			return fmt.Errorf("transform is not square: row of length %d, want %d", len(row), s.dim)
		}
	}
	if len(s.vectors) == 0 {
		return nil
	}
	tm := mat.NewDense(s.dim, s.dim, nil)
	for i, row := range t {
		tm.SetRow(i, row)
	}
	var out mat.Dense
	out.Mul(s.matrix(), tm)
	for i := range s.vectors {
		copy(s.vectors[i], out.RawRowView(i))
	}
	return nil
}

// matrix stacks the vectors into a row-major dense matrix.
func (s *Space) matrix() *mat.Dense {
	m := mat.NewDense(len(s.vectors), s.dim, nil)
	for i, v := range s.vectors {
		m.SetRow(i, v)
	}
	return m
}
