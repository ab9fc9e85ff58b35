package render

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
)

const (
	// paletteSize is the number of colors of heatmap palettes
	paletteSize = 255
	// upsample is the number of gradient samples per grid cell
	upsample = 8
)

// Heatmap creates a nearest-cell heatmap plot of grid g.
func Heatmap(g mat.Matrix) (*plot.Plot, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	return heatmap(newGridXYZ(g), moreland.Kindlmann().Palette(paletteSize),
		"Simulated WiFi Signal Heatmap (Filtered)")
}

// Gradient creates a smooth heatmap plot of grid g.
// The grid is upsampled with natural cubic splines along rows and then along columns.
// Upsampling only affects the picture, grid values are left untouched.
func Gradient(g mat.Matrix) (*plot.Plot, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	up, err := Upsample(g, upsample)
	if err != nil {
		return nil, err
	}

	p, err := heatmap(gridXYZ{m: up, step: 1.0 / upsample}, moreland.SmoothBlueRed().Palette(paletteSize),
		"WiFi Gradient View")
	if err != nil {
		return nil, err
	}

	return p, nil
}

func heatmap(g gridXYZ, pal palette.Palette, title string) (*plot.Plot, error) {
	h := plotter.NewHeatMap(g, pal)
	h.Min, h.Max = zRange(g.m)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = colLabel
	p.Y.Label.Text = rowLabel
	p.Add(h)

	// palette legend from the strongest to the weakest signal
	p.Legend.Top = true
	p.Legend.Add(signalLabel)
	thumbs := plotter.PaletteThumbnailers(pal)
	for i := len(thumbs) - 1; i >= 0; i-- {
		switch i {
		case len(thumbs) - 1:
			p.Legend.Add(fmt.Sprintf("%.2f", h.Max), thumbs[i])
		case 0:
			p.Legend.Add(fmt.Sprintf("%.2f", h.Min), thumbs[i])
		}
	}

	return p, nil
}

// Upsample returns grid g resampled with factor samples per cell in both directions.
// Resampled grid has (rows-1)*factor+1 rows and (cols-1)*factor+1 columns and
// passes through every original grid value.
// It returns error if factor is not positive.
func Upsample(g mat.Matrix, factor int) (*mat.Dense, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	if factor <= 0 {
		return nil, fmt.Errorf("invalid upsampling factor: %d", factor)
	}

	rows, cols := g.Dims()
	upRows, upCols := (rows-1)*factor+1, (cols-1)*factor+1

	// resample every row across columns
	wide := mat.NewDense(rows, upCols, nil)
	for i := 0; i < rows; i++ {
		line, err := resample(mat.Row(nil, i, g), factor)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		wide.SetRow(i, line)
	}

	// resample every column of the widened grid across rows
	out := mat.NewDense(upRows, upCols, nil)
	for j := 0; j < upCols; j++ {
		line, err := resample(mat.Col(nil, j, wide), factor)
		if err != nil {
			return nil, fmt.Errorf("col %d: %w", j, err)
		}
		out.SetCol(j, line)
	}

	return out, nil
}

// resample fits ys sampled at 0, 1, ..., len(ys)-1 and predicts
// factor values per unit interval.
func resample(ys []float64, factor int) ([]float64, error) {
	n := len(ys)
	if n == 1 {
		return []float64{ys[0]}, nil
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	var fp interp.FittablePredictor = &interp.NaturalCubic{}
	if n == 2 {
		fp = &interp.PiecewiseLinear{}
	}

	if err := fp.Fit(xs, ys); err != nil {
		return nil, err
	}

	out := make([]float64, (n-1)*factor+1)
	for k := range out {
		out[k] = fp.Predict(float64(k) / float64(factor))
	}
	// keep the last knot exact
	out[len(out)-1] = ys[n-1]

	return out, nil
}
