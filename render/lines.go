package render

import (
	"fmt"

	"github.com/milosgajdos/go-rssimap/matrix"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// RowLines creates a line plot with one line per grid row drawn across the grid columns.
func RowLines(g mat.Matrix) (*plot.Plot, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	rows, _ := g.Dims()
	lines := make([][]float64, rows)
	for i := range lines {
		lines[i] = matrix.Row(g, i)
	}

	return linePlot(lines, "Row", "Row-wise Signal Strength (Filtered)", colLabel)
}

// ColLines creates a line plot with one line per grid column drawn across the grid rows.
func ColLines(g mat.Matrix) (*plot.Plot, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	_, cols := g.Dims()
	lines := make([][]float64, cols)
	for j := range lines {
		lines[j] = matrix.Col(g, j)
	}

	return linePlot(lines, "Col", "Column-wise Signal Strength (Filtered)", rowLabel)
}

func linePlot(lines [][]float64, name, title, xLabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = signalLabel
	p.Add(plotter.NewGrid())

	// plotutil.AddLines accepts alternating line names and points
	vs := make([]interface{}, 0, 2*len(lines))
	for i, line := range lines {
		pts := make(plotter.XYs, len(line))
		for k, v := range line {
			pts[k].X = float64(k)
			pts[k].Y = v
		}
		vs = append(vs, fmt.Sprintf("%s %d", name, i+1), pts)
	}

	if err := plotutil.AddLines(p, vs...); err != nil {
		return nil, fmt.Errorf("failed to add lines: %w", err)
	}

	return p, nil
}
