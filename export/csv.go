package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/pipeline"
	"gonum.org/v1/gonum/mat"
)

const (
	// RawFile is the name of the raw grid CSV file
	RawFile = "simulated_raw.csv"
	// FilteredFile is the name of the filtered grid CSV file
	FilteredFile = "simulated_filtered.csv"
)

// WriteCSV writes grid g to w. The first record is a header holding
// column indices, followed by one record per grid row.
// Values are written in the shortest form which reads back exactly.
func WriteCSV(w io.Writer, g mat.Matrix) error {
	if g == nil {
		return fmt.Errorf("invalid grid: %v", g)
	}

	rows, cols := g.Dims()
	cw := csv.NewWriter(w)

	record := make([]string, cols)
	for j := range record {
		record[j] = strconv.Itoa(j)
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(g.At(i, j), 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a grid written by WriteCSV from r.
// It returns error if r holds no data rows, the rows are ragged
// or any value fails to parse. NaN and infinite values are rejected.
func ReadCSV(r io.Reader) (*mat.Dense, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty grid")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := len(header)

	var data []float64
	rows := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rows, err)
		}

		for j, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parse row %d col %d: %w", rows, j, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("non-finite value %q at row %d col %d: %w", s, rows, j, rssimap.ErrInvalidInput)
			}
			data = append(data, v)
		}
		rows++
	}

	if rows == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}

	return mat.NewDense(rows, cols, data), nil
}

// WriteFile writes grid g to the file at path
func WriteFile(path string, g mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(f, g); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

// ReadFile reads grid from the file at path
func ReadFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// Save writes both result grids into dir, creating it if needed,
// and returns paths of the raw and the filtered grid files.
func Save(dir string, res *pipeline.Result) (raw, filtered string, err error) {
	if res == nil {
		return "", "", fmt.Errorf("invalid result: %v", res)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	raw = filepath.Join(dir, RawFile)
	if err := WriteFile(raw, res.Raw); err != nil {
		return "", "", err
	}

	filtered = filepath.Join(dir, FilteredFile)
	if err := WriteFile(filtered, res.Filtered); err != nil {
		return "", "", err
	}

	return raw, filtered, nil
}
