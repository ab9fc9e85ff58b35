package estimate

import (
	"fmt"
	"math"

	rssimap "github.com/milosgajdos/go-rssimap"
	"gonum.org/v1/gonum/mat"
)

// Base is base estimate
type Base struct {
	// val is estimated value
	val *mat.VecDense
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewBase returns base estimate given val with zero covariance
func NewBase(val mat.Vector) (*Base, error) {
	if val == nil || val.Len() == 0 {
		return nil, fmt.Errorf("invalid estimate value: %w", rssimap.ErrInvalidInput)
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	return &Base{
		val: v,
		cov: mat.NewSymDense(v.Len(), nil),
	}, nil
}

// NewBaseWithCov returns base estimate given val and covariance
func NewBaseWithCov(val mat.Vector, cov mat.Symmetric) (*Base, error) {
	if val == nil || cov == nil {
		return nil, fmt.Errorf("invalid estimate: %w", rssimap.ErrInvalidInput)
	}

	rv, rc := val.Len(), cov.SymmetricDim()
	if rv != rc {
		return nil, fmt.Errorf("invalid dimensions. Val: %d, Cov: %d x %d", rv, rc, rc)
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(rc, nil)
	c.CopySym(cov)

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// Val returns estimated value
func (b *Base) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val)

	return v
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}

// Position returns the first element of the estimated value.
// For a [position, velocity] state this is the filtered signal level.
func (b *Base) Position() float64 {
	return b.val.AtVec(0)
}

// Uncertainty returns the standard deviation of the estimated position
func (b *Base) Uncertainty() float64 {
	v := b.cov.At(0, 0)
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// String implements fmt.Stringer
func (b *Base) String() string {
	return fmt.Sprintf("Estimate{Val=%v Cov=%v}", mat.Formatted(b.val.T()), mat.Formatted(b.cov, mat.Squeeze()))
}
