package kalman

import (
	"fmt"
	"math"

	rssimap "github.com/milosgajdos/go-rssimap"
	"gonum.org/v1/gonum/mat"
)

const (
	// ProcessNoise is the reference process noise variance
	ProcessNoise = 0.01
	// MeasurementNoise is the reference measurement noise variance
	MeasurementNoise = 5.0
	// InitialCov is the reference initial state variance
	InitialCov = 1000.0
)

// Kalman is Kalman Filter
type Kalman interface {
	// rssimap.Estimator is a scalar measurement filter
	rssimap.Estimator
	// Cov returns Kalman filter state covariance
	Cov() mat.Symmetric
	// Gain returns Kalman filter gain
	Gain() mat.Matrix
}

// Params are the tunable noise parameters of a constant velocity Kalman filter.
// Every parameter is a variance and is applied isotropically: ProcessNoise
// to Q = I*ProcessNoise and InitialCov to P0 = I*InitialCov.
type Params struct {
	// ProcessNoise is process noise variance
	ProcessNoise float64 `yaml:"process_noise"`
	// MeasurementNoise is measurement noise variance
	MeasurementNoise float64 `yaml:"measurement_noise"`
	// InitialCov is initial state variance
	InitialCov float64 `yaml:"initial_cov"`
}

// DefaultParams returns reference filter parameters
func DefaultParams() Params {
	return Params{
		ProcessNoise:     ProcessNoise,
		MeasurementNoise: MeasurementNoise,
		InitialCov:       InitialCov,
	}
}

// Validate checks all parameters are positive finite numbers.
func (p Params) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"process noise", p.ProcessNoise},
		{"measurement noise", p.MeasurementNoise},
		{"initial covariance", p.InitialCov},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) || v.val <= 0 {
			return fmt.Errorf("invalid %s %v: %w", v.name, v.val, rssimap.ErrInvalidInput)
		}
	}

	return nil
}
