package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
)

// renderer renders a chart page
type renderer interface {
	Render(w io.Writer) error
}

// viridis is the color scale of interactive charts
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

func visualMap(g mat.Matrix) opts.VisualMap {
	min, max := zRange(g)
	return opts.VisualMap{
		Show:       opts.Bool(true),
		Calculable: opts.Bool(true),
		Min:        float32(min),
		Max:        float32(max),
		Dimension:  "2",
		Text:       []string{signalLabel},
		InRange:    &opts.VisualMapInRange{Color: viridis},
	}
}

// Surface creates an interactive 3D surface chart of grid g
// with columns along X, rows along Y and signal strength along Z.
func Surface(g mat.Matrix) (*charts.Surface3D, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	rows, cols := g.Dims()
	data := make([]opts.Chart3DData, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, opts.Chart3DData{Value: []interface{}{j, i, g.At(i, j)}})
		}
	}

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "3D WiFi Signal Surface", Width: "1000px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: "3D WiFi Signal Surface", Subtitle: fmt.Sprintf("grid=%dx%d", rows, cols)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithVisualMapOpts(visualMap(g)),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "Columns", Show: opts.Bool(true)}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Rows", Show: opts.Bool(true)}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Signal (dBm)", Show: opts.Bool(true)}),
		charts.WithGrid3DOpts(opts.Grid3D{ViewControl: &opts.ViewControl{AutoRotate: opts.Bool(false)}}),
	)
	surface.AddSeries("signal", data)

	return surface, nil
}

// HeatmapHTML creates an interactive heatmap chart of grid g.
func HeatmapHTML(g mat.Matrix) (*charts.HeatMap, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	rows, cols := g.Dims()
	data := make([]opts.HeatMapData, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, g.At(i, j)}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Simulated WiFi Signal Heatmap", Width: "1000px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Simulated WiFi Signal Heatmap (Filtered)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: colLabel, NameLocation: "middle", NameGap: 25, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: rowLabel, NameLocation: "middle", NameGap: 30, Data: labels(rows), SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithVisualMapOpts(visualMap(g)),
	)
	hm.SetXAxis(labels(cols)).AddSeries("signal", data)

	return hm, nil
}

// labels returns 1-based axis labels
func labels(n int) []string {
	l := make([]string, n)
	for i := range l {
		l[i] = strconv.Itoa(i + 1)
	}
	return l
}

func writeChart(c renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := c.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}

	return f.Close()
}
