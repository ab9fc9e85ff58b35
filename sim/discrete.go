package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Discrete is a linear, discrete-time, dynamical system
type Discrete struct {
	System
}

// NewDiscrete creates a linear discrete-time model based on the control theory equations.
//
//	x[n+1] = A*x[n] + B*u[n] + wd[n]
//	y[n] = C*x[n] + D*u[n]
func NewDiscrete(A, B, C, D *mat.Dense) (*Discrete, error) {
	if A == nil {
		return nil, fmt.Errorf("system matrix must be defined for a model")
	}

	if r, c := A.Dims(); r != c {
		return nil, fmt.Errorf("invalid system matrix dimensions: [%d x %d]", r, c)
	}

	return &Discrete{System: newSystem(A, B, C, D)}, nil
}

// NewConstantVelocity creates a discrete-time constant velocity model:
// a [position, velocity] state advanced by one time unit per step
// of which only the position is observed.
func NewConstantVelocity() *Discrete {
	A := mat.NewDense(2, 2, []float64{
		1.0, 1.0,
		0.0, 1.0,
	})
	C := mat.NewDense(1, 2, []float64{1.0, 0.0})

	return &Discrete{System: System{A: A, C: C}}
}

// Propagate returns the next internal state x of a linear, discrete-time system
// given an input vector u and process noise wd.
func (d *Discrete) Propagate(x, u, wd mat.Vector) (mat.Vector, error) {
	nx, nu, _, _ := d.SystemDims()
	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	out := mat.NewVecDense(nx, nil)
	out.MulVec(d.A, x)

	if u != nil && d.B != nil {
		outU := mat.NewVecDense(nx, nil)
		outU.MulVec(d.B, u)
		out.AddVec(out, outU)
	}

	if wd != nil && wd.Len() == nx {
		out.AddVec(out, wd)
	}

	return out, nil
}
