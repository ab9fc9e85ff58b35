package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/grid"
	"github.com/milosgajdos/go-rssimap/kalman"
	"github.com/milosgajdos/go-rssimap/logging"
	"github.com/milosgajdos/go-rssimap/pipeline"
	"github.com/milosgajdos/go-rssimap/sim"
	"gopkg.in/yaml.v3"
)

const (
	// BackendCV selects the closed-form constant velocity filter
	BackendCV = "cv"
	// BackendKF selects the general matrix Kalman filter
	BackendKF = "kf"

	// NoiseUniform selects uniform measurement noise on [-spread, spread)
	NoiseUniform = "uniform"
	// NoiseGaussian selects zero mean Gaussian measurement noise with spread standard deviation
	NoiseGaussian = "gaussian"
)

// Config contains all rssimap configuration settings.
type Config struct {
	// Grid contains room geometry settings.
	Grid GridConfig `yaml:"grid"`

	// Simulation contains measurement simulation settings.
	Simulation SimulationConfig `yaml:"simulation"`

	// Filter contains per-cell estimator settings.
	Filter FilterConfig `yaml:"filter"`

	// Output contains settings of the written files.
	Output OutputConfig `yaml:"output"`

	// Logging contains logging settings.
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig configures room geometry.
type GridConfig struct {
	// Area is room area in cm². Zero means the area is read interactively.
	Area float64 `yaml:"area"`

	// Rows is the number of main boxes.
	Rows int `yaml:"rows"`

	// Cols is the number of sub-boxes per main box.
	Cols int `yaml:"cols"`
}

// SimulationConfig configures measurement simulation.
type SimulationConfig struct {
	// Steps is the number of readings simulated per cell.
	Steps int `yaml:"steps"`

	// Seed is the base random seed. Nil seeds the run from the current time.
	Seed *uint64 `yaml:"seed,omitempty"`

	// Workers is the number of cells processed concurrently.
	Workers int `yaml:"workers"`

	// Baseline is the noise-free signal level in dBm.
	Baseline float64 `yaml:"baseline"`

	// Noise is the measurement noise model: "uniform" (default) or "gaussian".
	Noise string `yaml:"noise"`

	// Spread is the noise half-width (uniform) or standard deviation (gaussian) in dBm.
	Spread float64 `yaml:"spread"`
}

// FilterConfig configures the per-cell estimator.
type FilterConfig struct {
	// Backend is the filter implementation: "cv" (default) or "kf".
	Backend string `yaml:"backend"`

	// Params are filter noise parameters.
	kalman.Params `yaml:",inline"`
}

// OutputConfig configures written files.
type OutputConfig struct {
	// Dir is the output directory.
	Dir string `yaml:"dir"`

	// Plots enables rendering of plots and charts.
	Plots bool `yaml:"plots"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `yaml:"level"`
}

// Default returns a Config with reference settings.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Rows: grid.DefaultRows,
			Cols: grid.DefaultCols,
		},
		Simulation: SimulationConfig{
			Steps:    pipeline.DefaultSteps,
			Workers:  1,
			Baseline: sim.Baseline,
			Noise:    NoiseUniform,
			Spread:   sim.Spread,
		},
		Filter: FilterConfig{
			Backend: BackendCV,
			Params:  kalman.DefaultParams(),
		},
		Output: OutputConfig{
			Dir:   "output",
			Plots: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path, if given, and environment variables.
// Order: defaults -> config file -> environment variables
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Settings missing from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
// Zero area is accepted: it is supplied later.
func (c *Config) Validate() error {
	if a := c.Grid.Area; a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("invalid area %v: %w", a, rssimap.ErrInvalidInput)
	}

	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("invalid grid dimensions [%d x %d]: %w", c.Grid.Rows, c.Grid.Cols, rssimap.ErrInvalidInput)
	}

	if c.Simulation.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", c.Simulation.Steps, rssimap.ErrInvalidInput)
	}

	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d: %w", c.Simulation.Workers, rssimap.ErrInvalidInput)
	}

	if math.IsNaN(c.Simulation.Baseline) || math.IsInf(c.Simulation.Baseline, 0) {
		return fmt.Errorf("invalid baseline %v: %w", c.Simulation.Baseline, rssimap.ErrInvalidInput)
	}

	if s := c.Simulation.Spread; !(s > 0) || math.IsInf(s, 0) {
		return fmt.Errorf("spread must be positive, got %v: %w", s, rssimap.ErrInvalidInput)
	}

	switch c.Simulation.Noise {
	case NoiseUniform, NoiseGaussian:
	default:
		return fmt.Errorf("invalid noise: %s (valid: %s, %s): %w", c.Simulation.Noise, NoiseUniform, NoiseGaussian, rssimap.ErrInvalidInput)
	}

	switch c.Filter.Backend {
	case BackendCV, BackendKF:
	default:
		return fmt.Errorf("invalid backend: %s (valid: %s, %s): %w", c.Filter.Backend, BackendCV, BackendKF, rssimap.ErrInvalidInput)
	}

	if err := c.Filter.Params.Validate(); err != nil {
		return err
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("missing output dir: %w", rssimap.ErrInvalidInput)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default): %w", c.Logging.Level, rssimap.ErrInvalidInput)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("RSSIMAP_AREA"); v != "" {
		a, err := grid.ParseArea(v)
		if err != nil {
			return fmt.Errorf("RSSIMAP_AREA: %w", err)
		}
		config.Grid.Area = a
	}

	if v := os.Getenv("RSSIMAP_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("RSSIMAP_SEED: %w", err)
		}
		config.Simulation.Seed = &seed
	}

	if v := os.Getenv("RSSIMAP_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RSSIMAP_WORKERS: %w", err)
		}
		config.Simulation.Workers = n
	}

	if v := os.Getenv("RSSIMAP_BACKEND"); v != "" {
		config.Filter.Backend = v
	}

	if v := os.Getenv("RSSIMAP_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}

	if v := os.Getenv("RSSIMAP_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	return nil
}
