package align

import "math"

// NormalizeRows returns a copy of m with every row scaled to unit p-norm.
// Rows with zero norm are left unscaled (the norm is substituted with 1) so
// the result never contains NaN.
func NormalizeRows(m [][]float64, order float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		norm := rowNorm(row, order)
		if norm == 0 {
			norm = 1
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = v / norm
		}
		out[i] = scaled
	}
	return out
}

func rowNorm(row []float64, order float64) float64 {
	if order == 2 {
		sum := 0.0
		for _, v := range row {
			sum += v * v
		}
		return math.Sqrt(sum)
	}
	sum := 0.0
	for _, v := range row {
		sum += math.Pow(math.Abs(v), order)
	}
	return math.Pow(sum, 1/order)
}
