package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/matrix"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

const (
	// HeatmapFile is the file name of the heatmap plot
	HeatmapFile = "simulated_heatmap.png"
	// GradientFile is the file name of the gradient plot
	GradientFile = "simulated_gradient.png"
	// RowLinesFile is the file name of the row-wise line plot
	RowLinesFile = "row_line_plot.png"
	// ColLinesFile is the file name of the column-wise line plot
	ColLinesFile = "col_line_plot.png"
	// ContourFile is the file name of the contour plot
	ContourFile = "contour_plot.png"
	// SurfaceFile is the file name of the 3D surface chart
	SurfaceFile = "3d_surface_plot.html"
	// HeatmapHTMLFile is the file name of the interactive heatmap chart
	HeatmapHTMLFile = "simulated_heatmap.html"
)

const (
	colLabel    = "Sub-Box Columns"
	rowLabel    = "Main Box Rows"
	signalLabel = "Signal Strength (dBm)"
)

var (
	// wide is the size of grid plots
	wide = [2]vg.Length{10 * vg.Inch, 6 * vg.Inch}
	// short is the size of line plots
	short = [2]vg.Length{10 * vg.Inch, 5 * vg.Inch}
)

// gridXYZ adapts a grid matrix to plotter.GridXYZ.
// Grid columns run along X and grid rows along Y.
type gridXYZ struct {
	m mat.Matrix
	// step is the distance between neighbouring samples in cell units
	step float64
}

func newGridXYZ(m mat.Matrix) gridXYZ {
	return gridXYZ{m: m, step: 1}
}

// Dims returns number of columns and rows of the grid
func (g gridXYZ) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

// Z returns grid value at column c and row r
func (g gridXYZ) Z(c, r int) float64 { return g.m.At(r, c) }

// X returns the coordinate of column c
func (g gridXYZ) X(c int) float64 { return float64(c) * g.step }

// Y returns the coordinate of row r
func (g gridXYZ) Y(r int) float64 { return float64(r) * g.step }

// zRange returns the value range of g. A constant grid gets
// a unit wide range so palettes can be spread over it.
func zRange(g mat.Matrix) (min, max float64) {
	min, max = matrix.MinMax(g)
	if min == max {
		min, max = min-0.5, max+0.5
	}
	return min, max
}

func checkGrid(g mat.Matrix) error {
	if g == nil {
		return fmt.Errorf("missing grid: %w", rssimap.ErrInvalidInput)
	}
	r, c := g.Dims()
	if r == 0 || c == 0 {
		return fmt.Errorf("empty grid [%d x %d]: %w", r, c, rssimap.ErrInvalidInput)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := g.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("non-finite value %v at row %d col %d: %w", v, i, j, rssimap.ErrInvalidInput)
			}
		}
	}
	return nil
}

func save(p *plot.Plot, size [2]vg.Length, path string) error {
	if err := p.Save(size[0], size[1], path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// All renders every plot and chart of grid g into dir, creating it if needed.
// It returns paths of all written files.
func All(dir string, g mat.Matrix) ([]string, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	plots := []struct {
		file string
		size [2]vg.Length
		new  func(mat.Matrix) (*plot.Plot, error)
	}{
		{HeatmapFile, wide, Heatmap},
		{GradientFile, wide, Gradient},
		{RowLinesFile, short, RowLines},
		{ColLinesFile, short, ColLines},
		{ContourFile, wide, Contour},
	}

	var paths []string
	for _, pl := range plots {
		p, err := pl.new(g)
		if err != nil {
			return paths, fmt.Errorf("%s: %w", pl.file, err)
		}
		path := filepath.Join(dir, pl.file)
		if err := save(p, pl.size, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	charts := []struct {
		file   string
		render func(mat.Matrix) (renderer, error)
	}{
		{SurfaceFile, func(g mat.Matrix) (renderer, error) { return Surface(g) }},
		{HeatmapHTMLFile, func(g mat.Matrix) (renderer, error) { return HeatmapHTML(g) }},
	}

	for _, ch := range charts {
		c, err := ch.render(g)
		if err != nil {
			return paths, fmt.Errorf("%s: %w", ch.file, err)
		}
		path := filepath.Join(dir, ch.file)
		if err := writeChart(c, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
