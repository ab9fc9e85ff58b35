package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/grid"
	"github.com/milosgajdos/go-rssimap/kalman/cv"
	"github.com/milosgajdos/go-rssimap/logging"
	"github.com/milosgajdos/go-rssimap/rnd"
	"github.com/milosgajdos/go-rssimap/sim"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultSteps is the number of measurements simulated per cell
const DefaultSteps = 20

// Factory creates a fresh estimator
type Factory func() (rssimap.Estimator, error)

// SourceFactory creates a measurement source seeded with seed
type SourceFactory func(seed uint64) (rssimap.Source, error)

// ReferenceSource creates the reference uniform RSSI signal seeded with seed
func ReferenceSource(seed uint64) (rssimap.Source, error) {
	s, err := sim.NewReferenceSignal(rnd.NewSource(seed))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Option configures Pipeline
type Option func(*Pipeline)

// WithSteps sets the number of measurements simulated per cell
func WithSteps(n int) Option {
	return func(p *Pipeline) {
		p.steps = n
	}
}

// WithWorkers sets the number of cells processed concurrently
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// WithSeed sets the base seed every cell seed is derived from
func WithSeed(seed uint64) Option {
	return func(p *Pipeline) {
		p.seed = seed
		p.seeded = true
	}
}

// WithEstimator sets the estimator factory
func WithEstimator(f Factory) Option {
	return func(p *Pipeline) {
		p.newEstimator = f
	}
}

// WithSource sets the measurement source factory
func WithSource(f SourceFactory) Option {
	return func(p *Pipeline) {
		p.newSource = f
	}
}

// WithLogger sets the pipeline logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// Pipeline simulates and filters RSSI readings of every grid cell.
// Cells are independent: each one owns a fresh estimator and a fresh
// measurement source seeded from the cell coordinates.
type Pipeline struct {
	spec         *grid.Spec
	steps        int
	workers      int
	seed         uint64
	seeded       bool
	newEstimator Factory
	newSource    SourceFactory
	logger       *slog.Logger
}

// New creates new Pipeline for grid spec and returns it.
// It returns error wrapping rssimap.ErrInvalidInput if spec is nil
// or if the number of steps or workers is not positive.
func New(spec *grid.Spec, opts ...Option) (*Pipeline, error) {
	if spec == nil {
		return nil, fmt.Errorf("missing grid spec: %w", rssimap.ErrInvalidInput)
	}

	p := &Pipeline{
		spec:         spec,
		steps:        DefaultSteps,
		workers:      1,
		newEstimator: cv.Factory,
		newSource:    ReferenceSource,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.steps <= 0 {
		return nil, fmt.Errorf("invalid number of steps %d: %w", p.steps, rssimap.ErrInvalidInput)
	}

	if p.workers <= 0 {
		return nil, fmt.Errorf("invalid number of workers %d: %w", p.workers, rssimap.ErrInvalidInput)
	}

	if p.newEstimator == nil || p.newSource == nil {
		return nil, fmt.Errorf("missing estimator or source factory: %w", rssimap.ErrInvalidInput)
	}

	if !p.seeded {
		p.seed = rnd.TimeSeed()
	}

	if p.logger == nil {
		p.logger = logging.Discard()
	}

	return p, nil
}

// Seed returns the base seed
func (p *Pipeline) Seed() uint64 {
	return p.seed
}

// Steps returns the number of measurements simulated per cell
func (p *Pipeline) Steps() int {
	return p.steps
}

// Run simulates and filters every grid cell and returns both result grids.
// Cells are processed in row-major order unless more than one worker is configured.
// Run stops early and returns ctx error if ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	rows, cols := p.spec.Dims()
	res := &Result{
		Spec:     p.spec,
		Raw:      mat.NewDense(rows, cols, nil),
		Filtered: mat.NewDense(rows, cols, nil),
		Seed:     p.seed,
		Steps:    p.steps,
	}

	p.logger.Debug("running pipeline", "grid", p.spec, "steps", p.steps, "workers", p.workers, "seed", p.seed)

	if p.workers == 1 {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				if err := p.runCell(ctx, res, i, j); err != nil {
					return nil, err
				}
			}
		}
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

schedule:
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if gctx.Err() != nil {
				break schedule
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				// every cell owns a distinct slot of both grids
				return p.runCell(gctx, res, i, j)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// errgroup cancels gctx only on error; catch a parent cancellation
	// that arrived after the last cell was scheduled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func (p *Pipeline) runCell(ctx context.Context, res *Result, i, j int) error {
	c, err := p.RunCell(ctx, i, j)
	if err != nil {
		return err
	}

	res.Raw.Set(i, j, c.RawMean)
	res.Filtered.Set(i, j, c.FilteredMean)

	return nil
}

// RunCell simulates and filters a single grid cell and returns its scratch list.
// It returns error if the cell lies outside of the grid or if either the
// estimator or the measurement source fail.
// ctx is only used for logging.
func (p *Pipeline) RunCell(ctx context.Context, row, col int) (*Cell, error) {
	rows, cols := p.spec.Dims()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return nil, fmt.Errorf("cell (%d, %d) outside of %dx%d grid: %w", row, col, rows, cols, rssimap.ErrInvalidInput)
	}

	src, err := p.newSource(rnd.CellSeed(p.seed, row, col))
	if err != nil {
		return nil, fmt.Errorf("cell (%d, %d) source: %w", row, col, err)
	}

	est, err := p.newEstimator()
	if err != nil {
		return nil, fmt.Errorf("cell (%d, %d) estimator: %w", row, col, err)
	}

	raw, err := src.Generate(p.steps)
	if err != nil {
		return nil, fmt.Errorf("cell (%d, %d) measurements: %w", row, col, err)
	}

	trace := p.logger.Enabled(ctx, logging.LevelTrace)

	filtered := make([]float64, len(raw))
	for k, z := range raw {
		est.Predict()
		est.Update(z)
		filtered[k] = est.Estimate()
		if trace {
			p.logger.Log(ctx, logging.LevelTrace, "filter step",
				"row", row, "col", col, "step", k, "measurement", z, "estimate", filtered[k])
		}
	}

	if e, ok := est.(interface{ Err() error }); ok && e.Err() != nil {
		return nil, fmt.Errorf("cell (%d, %d) filter: %w", row, col, e.Err())
	}

	c := &Cell{
		Row:          row,
		Col:          col,
		Raw:          raw,
		Filtered:     filtered,
		RawMean:      stat.Mean(raw, nil),
		FilteredMean: stat.Mean(filtered, nil),
	}

	p.logger.DebugContext(ctx, "cell done", "row", row, "col", col, "raw", c.RawMean, "filtered", c.FilteredMean)

	return c, nil
}
