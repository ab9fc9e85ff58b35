package rssimap

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidInput is returned when a caller supplies a value outside of its valid domain
// e.g. a non-positive room area or a non-positive number of simulation steps
var ErrInvalidInput = errors.New("invalid input")

// Estimator is a recursive scalar measurement filter
type Estimator interface {
	// Predict propagates the internal filter state to the next step
	Predict()
	// Update corrects the internal filter state using measurement z
	Update(z float64)
	// Estimate returns the current filtered measurement estimate
	Estimate() float64
}

// Source produces measurement sequences
type Source interface {
	// Generate returns a sequence of n measurements
	Generate(n int) ([]float64, error)
}

// Noise is scalar measurement noise
type Noise interface {
	// Mean returns noise mean
	Mean() float64
	// Var returns noise variance
	Var() float64
	// Sample returns a sample of the noise
	Sample() float64
	// Reset reseeds the noise source
	Reset(seed uint64)
}

// DiscreteSystem is a linear discrete-time dynamical system
// whose state is driven by static propagation and observation matrices
type DiscreteSystem interface {
	// Propagate propagates internal state x to the next step given input u and noise wd
	Propagate(x, u, wd mat.Vector) (mat.Vector, error)
	// Observe observes external state of the system given internal state x, input u and noise wn
	Observe(x, u, wn mat.Vector) (mat.Vector, error)
	// SystemDims returns state, input, output and disturbance dimensions
	SystemDims() (nx, nu, ny, nz int)
	// SystemMatrix returns state propagation matrix
	SystemMatrix() mat.Matrix
	// ControlMatrix returns state propagation control matrix
	ControlMatrix() mat.Matrix
	// OutputMatrix returns observation matrix
	OutputMatrix() mat.Matrix
	// FeedForwardMatrix returns observation control matrix
	FeedForwardMatrix() mat.Matrix
}

// InitCond is initial state condition of the filter
type InitCond interface {
	// State returns initial filter state
	State() mat.Vector
	// Cov returns initial state covariance
	Cov() mat.Symmetric
}

// Estimate is dynamical system filter estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}
