package matrix

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RowSums returns a slice containing m row sums.
// It panics if m is nil.
func RowSums(m *mat.Dense) []float64 {
	rows, _ := m.Dims()
	sum := make([]float64, rows)

	for i := 0; i < rows; i++ {
		sum[i] = floats.Sum(m.RawRowView(i))
	}

	return sum
}

// ColSums returns a slice containing m column sums.
// It panics if m is nil.
func ColSums(m *mat.Dense) []float64 {
	_, cols := m.Dims()
	sum := make([]float64, cols)

	for i := 0; i < cols; i++ {
		sum[i] = mat.Sum(m.ColView(i))
	}

	return sum
}

// RowMeans returns a slice containing m row means.
// It panics if m is nil.
func RowMeans(m *mat.Dense) []float64 {
	_, cols := m.Dims()
	means := RowSums(m)
	floats.Scale(1/float64(cols), means)

	return means
}

// ColMeans returns a slice containing m column means.
// It panics if m is nil.
func ColMeans(m *mat.Dense) []float64 {
	rows, _ := m.Dims()
	means := ColSums(m)
	floats.Scale(1/float64(rows), means)

	return means
}

// Row returns a copy of the i-th row of m
func Row(m mat.Matrix, i int) []float64 {
	return mat.Row(nil, i, m)
}

// Col returns a copy of the j-th column of m
func Col(m mat.Matrix, j int) []float64 {
	return mat.Col(nil, j, m)
}

// MinMax returns the smallest and the largest element of m.
// It panics if m is nil.
func MinMax(m mat.Matrix) (min, max float64) {
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		row := Row(m, i)
		rMin, rMax := floats.Min(row), floats.Max(row)
		if i == 0 || rMin < min {
			min = rMin
		}
		if i == 0 || rMax > max {
			max = rMax
		}
	}

	return min, max
}

// Mean returns the mean of all elements of m.
// It panics if m is nil.
func Mean(m mat.Matrix) float64 {
	rows, cols := m.Dims()
	return mat.Sum(m) / float64(rows*cols)
}
