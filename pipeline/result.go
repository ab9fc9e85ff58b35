package pipeline

import (
	"fmt"

	"github.com/milosgajdos/go-rssimap/grid"
	"github.com/milosgajdos/go-rssimap/matrix"
	"gonum.org/v1/gonum/mat"
)

// Cell is the scratch list of a single grid cell run
type Cell struct {
	Row int
	Col int
	// Raw are simulated measurements
	Raw []float64
	// Filtered are estimates recorded after every filter update
	Filtered []float64
	// RawMean is the mean of Raw
	RawMean float64
	// FilteredMean is the mean of Filtered
	FilteredMean float64
}

// Result holds both grids produced by a pipeline run
type Result struct {
	// Spec is the grid geometry
	Spec *grid.Spec
	// Raw holds mean raw measurement per cell
	Raw *mat.Dense
	// Filtered holds mean filtered estimate per cell
	Filtered *mat.Dense
	// Seed is the base seed of the run
	Seed uint64
	// Steps is the number of measurements simulated per cell
	Steps int
}

// Dims returns result grid dimensions
func (r *Result) Dims() (rows, cols int) {
	return r.Filtered.Dims()
}

// Summary returns a single line description of both grids
func (r *Result) Summary() string {
	rawMin, rawMax := matrix.MinMax(r.Raw)
	fMin, fMax := matrix.MinMax(r.Filtered)

	return fmt.Sprintf("raw: mean=%.3f range=[%.3f, %.3f] filtered: mean=%.3f range=[%.3f, %.3f]",
		matrix.Mean(r.Raw), rawMin, rawMax, matrix.Mean(r.Filtered), fMin, fMax)
}

// RowMeans returns the mean filtered estimate of every grid row
func (r *Result) RowMeans() []float64 {
	return matrix.RowMeans(r.Filtered)
}

// ColMeans returns the mean filtered estimate of every grid column
func (r *Result) ColMeans() []float64 {
	return matrix.ColMeans(r.Filtered)
}
