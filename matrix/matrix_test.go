package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestRowColSums(t *testing.T) {
	assert := assert.New(t)

	data := []float64{1.2, 3.4, 4.5, 6.7, 8.9, 10.0}
	rowSums := []float64{4.6, 11.2, 18.9}
	colSums := []float64{14.6, 20.1}
	delta := 0.001

	m := mat.NewDense(3, 2, data)
	assert.NotNil(m)

	// check rows
	resRows := RowSums(m)
	assert.NotNil(resRows)
	assert.InDeltaSlice(rowSums, resRows, delta)
	// check cols
	resCols := ColSums(m)
	assert.NotNil(resCols)
	assert.InDeltaSlice(colSums, resCols, delta)
	// should panic
	assert.Panics(func() { RowSums(nil) })
	assert.Panics(func() { ColSums(nil) })
}

func TestRowColMeans(t *testing.T) {
	assert := assert.New(t)

	m := mat.NewDense(2, 3, []float64{
		-70, -68, -72,
		-60, -65, -61,
	})
	delta := 1e-12

	assert.InDeltaSlice([]float64{-70, -62}, RowMeans(m), delta)
	assert.InDeltaSlice([]float64{-65, -66.5, -66.5}, ColMeans(m), delta)
	assert.InDelta(-66.0, Mean(m), delta)

	assert.Equal([]float64{-60, -65, -61}, Row(m, 1))
	assert.Equal([]float64{-68, -65}, Col(m, 1))

	assert.Panics(func() { RowMeans(nil) })
	assert.Panics(func() { ColMeans(nil) })
}

func TestMinMax(t *testing.T) {
	assert := assert.New(t)

	m := mat.NewDense(3, 2, []float64{
		-70, -68,
		-79.5, -65,
		-61.25, -75,
	})

	min, max := MinMax(m)
	assert.Equal(-79.5, min)
	assert.Equal(-61.25, max)

	min, max = MinMax(mat.NewDense(1, 1, []float64{-70}))
	assert.Equal(-70.0, min)
	assert.Equal(-70.0, max)
}
