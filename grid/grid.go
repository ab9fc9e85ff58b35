package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	rssimap "github.com/milosgajdos/go-rssimap"
)

const (
	// DefaultRows is the default number of main room divisions
	DefaultRows = 5
	// DefaultCols is the default number of sub-divisions of each main division
	DefaultCols = 10
)

// Spec is room grid geometry derived from a square room area
type Spec struct {
	// Area is room area
	Area float64
	// SideLength is the side length of the (square) room
	SideLength float64
	// Rows is the number of grid rows
	Rows int
	// Cols is the number of grid columns
	Cols int
	// MainCellSize is the size of one main room division
	MainCellSize float64
	// SubCellSize is the size of one grid cell
	SubCellSize float64
}

// New creates new grid Spec for the given room area with default grid dimensions.
// It returns error if area is not a positive finite number.
func New(area float64) (*Spec, error) {
	return NewWithDims(area, DefaultRows, DefaultCols)
}

// NewWithDims creates new grid Spec for the given room area split into rows x cols cells.
// It returns error if either of the following conditions is met:
//   - area is not a positive finite number
//   - rows or cols is not positive
func NewWithDims(area float64, rows, cols int) (*Spec, error) {
	if math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
		return nil, fmt.Errorf("invalid room area %v: %w", area, rssimap.ErrInvalidInput)
	}

	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions [%d x %d]: %w", rows, cols, rssimap.ErrInvalidInput)
	}

	side := math.Sqrt(area)
	main := side / float64(rows)

	return &Spec{
		Area:         area,
		SideLength:   side,
		Rows:         rows,
		Cols:         cols,
		MainCellSize: main,
		SubCellSize:  main / float64(cols),
	}, nil
}

// ParseArea parses room area from s.
// It returns error if s is not a number or if it is not a positive finite number.
func ParseArea(s string) (float64, error) {
	area, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid room area %q: %w", s, rssimap.ErrInvalidInput)
	}

	if math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
		return 0, fmt.Errorf("invalid room area %v: %w", area, rssimap.ErrInvalidInput)
	}

	return area, nil
}

// Dims returns grid dimensions
func (s *Spec) Dims() (rows, cols int) {
	return s.Rows, s.Cols
}

// Cells returns the number of grid cells
func (s *Spec) Cells() int {
	return s.Rows * s.Cols
}

// String implements the Stringer interface.
func (s *Spec) String() string {
	return fmt.Sprintf("Spec{Area=%g Side=%g Rows=%d Cols=%d Main=%g Sub=%g}",
		s.Area, s.SideLength, s.Rows, s.Cols, s.MainCellSize, s.SubCellSize)
}
