package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/config"
	"github.com/milosgajdos/go-rssimap/export"
	"github.com/milosgajdos/go-rssimap/grid"
	"github.com/milosgajdos/go-rssimap/kalman/cv"
	"github.com/milosgajdos/go-rssimap/kalman/kf"
	"github.com/milosgajdos/go-rssimap/logging"
	"github.com/milosgajdos/go-rssimap/noise"
	"github.com/milosgajdos/go-rssimap/pipeline"
	"github.com/milosgajdos/go-rssimap/render"
	"github.com/milosgajdos/go-rssimap/rnd"
	"github.com/milosgajdos/go-rssimap/sim"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

const areaPrompt = "Enter room area in cm²: "

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate, filter and export the room signal map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return run(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addRunFlags(cmd)

	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to YAML config file")
	cmd.Flags().Float64("area", 0, "Room area in cm² (prompted for if not set)")
	cmd.Flags().String("out", "", "Output directory")
	cmd.Flags().Uint64("seed", 0, "Random seed (time based if not set)")
	cmd.Flags().Int("workers", 0, "Number of cells processed concurrently")
	cmd.Flags().String("backend", "", "Filter backend: cv or kf")
	cmd.Flags().Bool("no-plots", false, "Skip rendering plots and charts")
	cmd.Flags().String("log-level", "", "Log level: info, debug or trace")
}

// loadConfig loads config file and environment overrides and applies command line flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("area") {
		cfg.Grid.Area, _ = flags.GetFloat64("area")
		if cfg.Grid.Area <= 0 {
			return nil, fmt.Errorf("invalid room area %v: %w", cfg.Grid.Area, rssimap.ErrInvalidInput)
		}
	}
	if flags.Changed("out") {
		cfg.Output.Dir, _ = flags.GetString("out")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		cfg.Simulation.Seed = &seed
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("backend") {
		cfg.Filter.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("no-plots") {
		noPlots, _ := flags.GetBool("no-plots")
		cfg.Output.Plots = !noPlots
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// run runs the whole simulation: grid setup, per-cell filtering, CSV export and rendering.
func run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := logging.NewLogger(cfg.Logging.Level, stderr).With("run", uuid.NewString())

	area := cfg.Grid.Area
	if area == 0 {
		a, err := promptArea(stdin, stdout)
		if err != nil {
			return err
		}
		area = a
	}

	spec, err := grid.NewWithDims(area, cfg.Grid.Rows, cfg.Grid.Cols)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nRoom divided into %d rows × %d columns.\n", spec.Rows, spec.Cols)
	fmt.Fprintf(stdout, "Each grid cell ≈ %.2f cm × %.2f cm\n\n", spec.SubCellSize, spec.SubCellSize)

	opts, err := pipelineOptions(cfg, logger)
	if err != nil {
		return err
	}

	p, err := pipeline.New(spec, opts...)
	if err != nil {
		return err
	}

	logger.Info("simulating", "grid", spec.String(), "steps", p.Steps(), "seed", p.Seed(), "backend", cfg.Filter.Backend)

	res, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Info("simulation done", "summary", res.Summary())
	logger.Debug("filtered profile", "row_means", res.RowMeans(), "col_means", res.ColMeans())

	raw, filtered, err := export.Save(cfg.Output.Dir, res)
	if err != nil {
		return fmt.Errorf("failed to export grids: %w", err)
	}
	logger.Debug("grids exported", "raw", raw, "filtered", filtered)

	if cfg.Output.Plots {
		paths, err := render.All(cfg.Output.Dir, res.Filtered)
		if err != nil {
			return fmt.Errorf("failed to render plots: %w", err)
		}
		logger.Debug("plots rendered", "files", len(paths))
	}

	fmt.Fprintf(stdout, "Filtered grid (dBm):\n%.2f\n\n", mat.Formatted(res.Filtered, mat.Squeeze()))
	fmt.Fprintf(stdout, "Done! All visualizations and CSV files saved in %s\n", cfg.Output.Dir)

	return nil
}

// promptArea asks for room area on out and reads it from in.
func promptArea(in io.Reader, out io.Writer) (float64, error) {
	fmt.Fprint(out, areaPrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(line) != "") {
		return 0, fmt.Errorf("failed to read room area: %w", err)
	}

	return grid.ParseArea(line)
}

// pipelineOptions translates cfg into pipeline options.
func pipelineOptions(cfg *config.Config, logger *slog.Logger) ([]pipeline.Option, error) {
	opts := []pipeline.Option{
		pipeline.WithSteps(cfg.Simulation.Steps),
		pipeline.WithWorkers(cfg.Simulation.Workers),
		pipeline.WithLogger(logger),
	}

	if cfg.Simulation.Seed != nil {
		opts = append(opts, pipeline.WithSeed(*cfg.Simulation.Seed))
	}

	switch cfg.Filter.Backend {
	case config.BackendCV:
		opts = append(opts, pipeline.WithEstimator(cv.FactoryWithParams(cfg.Filter.Params)))
	case config.BackendKF:
		opts = append(opts, pipeline.WithEstimator(kf.Factory(cfg.Filter.Params)))
	default:
		return nil, fmt.Errorf("unknown backend %q: %w", cfg.Filter.Backend, rssimap.ErrInvalidInput)
	}

	baseline, spread := cfg.Simulation.Baseline, cfg.Simulation.Spread
	switch cfg.Simulation.Noise {
	case config.NoiseUniform:
		opts = append(opts, pipeline.WithSource(func(seed uint64) (rssimap.Source, error) {
			n, err := noise.NewUniform(-spread, spread, rnd.NewSource(seed))
			if err != nil {
				return nil, err
			}
			return sim.NewSignal(baseline, n)
		}))
	case config.NoiseGaussian:
		opts = append(opts, pipeline.WithSource(func(seed uint64) (rssimap.Source, error) {
			n, err := noise.NewGaussian(0, spread, rnd.NewSource(seed))
			if err != nil {
				return nil, err
			}
			return sim.NewSignal(baseline, n)
		}))
	default:
		return nil, fmt.Errorf("unknown noise %q: %w", cfg.Simulation.Noise, rssimap.ErrInvalidInput)
	}

	return opts, nil
}
