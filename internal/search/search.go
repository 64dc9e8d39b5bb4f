// Package search ranks vocabulary words by cosine similarity, for inspecting
// how well two aligned spaces agree.
package search

import (
	"math"
	"sort"

	"vecalign/internal/domain"
)

// Index holds one space's vocabulary for brute-force neighbor queries.
type Index struct {
	words   []string
	vectors [][]float64
}

// NewIndex builds an index over the whole vocabulary of a space.
func NewIndex(space domain.MutableSpace) *Index {
	words := space.Words()
	idx := &Index{words: words, vectors: make([][]float64, 0, len(words))}
	for _, w := range words {
		v, err := space.Vector(w)
		if err != nil {
			continue
		}
		idx.vectors = append(idx.vectors, v)
	}
	return idx
}

// Neighbors returns the topK words most cosine-similar to the query vector,
// best first.
func (idx *Index) Neighbors(vector []float64, topK int) []domain.SearchResult {
	if topK <= 0 {
		topK = 10
	}
	results := make([]domain.SearchResult, len(idx.words))
	for i, w := range idx.words {
		results[i] = domain.SearchResult{Word: w, Score: Cosine(idx.vectors[i], vector)}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

// Cosine returns the cosine similarity of two vectors, 0 when either has
// zero norm.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
