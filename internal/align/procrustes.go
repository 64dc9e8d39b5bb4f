// Package align implements the orthogonal Procrustes alignment: paired
// training matrices from a lexicon, the SVD-derived orthogonal transform,
// and anchored insertion of out-of-vocabulary words.
package align

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"vecalign/internal/domain"
)

// ErrDegenerate reports training matrices unusable for the SVD: no rows, or
// mismatched dimensionality between the two spaces.
var ErrDegenerate = errors.New("degenerate training matrices")

// TrainingMatrices pairs up the vectors for each translation pair present in
// both spaces. Pairs with a missing word are skipped, so the row count may be
// lower than the pair count; row i of both results belongs to the i-th
// surviving pair.
func TrainingMatrices(source, target domain.Space, pairs []domain.TranslationPair) (src, tgt [][]float64) {
	for _, p := range pairs {
		sv, err := source.Vector(p.Source)
		if err != nil {
			continue
		}
		tv, err := target.Vector(p.Target)
		if err != nil {
			continue
		}
		src = append(src, sv)
		tgt = append(tgt, tv)
	}
	return src, tgt
}

// LearnTransform solves the orthogonal Procrustes problem for the paired
// matrices: the D×D orthogonal transform minimizing ‖src·T − tgt‖. Both
// matrices are row-normalized first unless normalize is false. The transform
// is U·Vᵀ for the SVD U·Σ·Vᵀ of srcᵀ·tgt.
func LearnTransform(src, tgt [][]float64, normalize bool) ([][]float64, error) {
	if len(src) == 0 || len(tgt) == 0 {
		return nil, fmt.Errorf("%w: no paired rows", ErrDegenerate)
	}
	if len(src) != len(tgt) {
		return nil, fmt.Errorf("%w: %d source rows vs %d target rows", ErrDegenerate, len(src), len(tgt))
	}
	dim := len(src[0])
	for _, m := range [][][]float64{src, tgt} {
		for _, row := range m {
			if len(row) != dim {
				return nil, fmt.Errorf("%w: dimension %d vs row dimension %d", ErrDegenerate, dim, len(row))
			}
		}
	}

	if normalize {
		src = NormalizeRows(src, 2)
		tgt = NormalizeRows(tgt, 2)
	}

	s := mat.NewDense(len(src), dim, nil)
	t := mat.NewDense(len(tgt), dim, nil)
	for i := range src {
		s.SetRow(i, src[i])
		t.SetRow(i, tgt[i])
	}

	var product mat.Dense
	product.Mul(s.T(), t)

	var svd mat.SVD
	if !svd.Factorize(&product, mat.SVDFull) {
		return nil, fmt.Errorf("svd of %dx%d cross-covariance failed to converge", dim, dim)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var transform mat.Dense
	transform.Mul(&u, v.T())

	out := make([][]float64, dim)
	for i := range out {
		out[i] = make([]float64, dim)
		copy(out[i], transform.RawRowView(i))
	}
	return out, nil
}
