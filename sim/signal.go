package sim

import (
	"fmt"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/noise"
	"golang.org/x/exp/rand"
)

const (
	// Baseline is the reference RSSI baseline in dBm
	Baseline = -70.0
	// Spread is the reference half-width of the uniform RSSI noise in dBm
	Spread = 10.0
)

// Signal simulates noisy RSSI readings of a single grid cell:
// every reading is the baseline perturbed by an independent noise sample.
type Signal struct {
	// baseline is the noise-free signal level
	baseline float64
	// n is measurement noise
	n rssimap.Noise
}

// NewSignal creates new Signal simulator with the given baseline and noise and returns it.
// It returns error if n is nil.
func NewSignal(baseline float64, n rssimap.Noise) (*Signal, error) {
	if n == nil {
		return nil, fmt.Errorf("invalid signal noise: %v", n)
	}

	return &Signal{
		baseline: baseline,
		n:        n,
	}, nil
}

// NewReferenceSignal creates a Signal which draws readings
// uniformly from [Baseline-Spread, Baseline+Spread) using src.
func NewReferenceSignal(src rand.Source) (*Signal, error) {
	u, err := noise.NewUniform(-Spread, Spread, src)
	if err != nil {
		return nil, err
	}

	return NewSignal(Baseline, u)
}

// Generate returns n freshly drawn readings.
// It returns error if n is not positive.
func (s *Signal) Generate(n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of readings %d: %w", n, rssimap.ErrInvalidInput)
	}

	readings := make([]float64, n)
	for i := range readings {
		readings[i] = s.baseline + s.n.Sample()
	}

	return readings, nil
}
