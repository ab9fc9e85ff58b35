package render

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
)

// ContourLevels is the number of contour levels
const ContourLevels = 20

// Contour creates a contour plot of grid g with ContourLevels levels
// spread evenly over the grid value range, drawn over a faint heatmap.
func Contour(g mat.Matrix) (*plot.Plot, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	min, max := zRange(g)
	levels := Levels(min, max, ContourLevels)
	xyz := newGridXYZ(g)

	cmap := moreland.ExtendedBlackBody()

	bg := moreland.ExtendedBlackBody()
	bg.SetAlpha(0.35)
	h := plotter.NewHeatMap(xyz, bg.Palette(paletteSize))
	h.Min, h.Max = min, max

	c := plotter.NewContour(xyz, levels, cmap.Palette(ContourLevels))
	c.Min, c.Max = min, max

	p := plot.New()
	p.Title.Text = "Contour Plot of WiFi Signal"
	p.X.Label.Text = colLabel
	p.Y.Label.Text = rowLabel
	p.Add(h, c)

	return p, nil
}

// Levels returns n levels evenly spaced strictly inside the (min, max) range.
func Levels(min, max float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	// n+2 points span the range including both ends which carry no contour
	pts := floats.Span(make([]float64, n+2), min, max)
	return pts[1 : n+1]
}
