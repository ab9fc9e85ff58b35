package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System is a linear model of a plant described by the matrices of modern control theory:
// state (A), input (B), output (C) and feedthrough (D) matrices.
type System struct {
	// A is state matrix
	A *mat.Dense
	// B is control matrix
	B *mat.Dense
	// C is output matrix
	C *mat.Dense
	// D is feedthrough matrix
	D *mat.Dense
}

func newSystem(A, B, C, D *mat.Dense) System {
	sys := System{A: mat.DenseCopyOf(A)}
	if B != nil {
		sys.B = mat.DenseCopyOf(B)
	}
	if C != nil {
		sys.C = mat.DenseCopyOf(C)
	}
	if D != nil {
		sys.D = mat.DenseCopyOf(D)
	}
	return sys
}

// SystemDims returns internal state length (nx), input vector length (nu),
// output vector length (ny) and disturbance vector length (nz).
// Disturbances enter the state directly, so nz is always equal to nx.
func (s System) SystemDims() (nx, nu, ny, nz int) {
	nx, _ = s.A.Dims()
	if s.B != nil {
		_, nu = s.B.Dims()
	}
	if s.C != nil {
		ny, _ = s.C.Dims()
	}
	return nx, nu, ny, nx
}

// SystemMatrix returns state propagation matrix A
func (s System) SystemMatrix() mat.Matrix { return s.A }

// ControlMatrix returns state propagation control matrix B
func (s System) ControlMatrix() mat.Matrix {
	if s.B == nil {
		return nil
	}
	return s.B
}

// OutputMatrix returns observation matrix C
func (s System) OutputMatrix() mat.Matrix {
	if s.C == nil {
		return nil
	}
	return s.C
}

// FeedForwardMatrix returns observation control matrix D
func (s System) FeedForwardMatrix() mat.Matrix {
	if s.D == nil {
		return nil
	}
	return s.D
}

// Observe returns external state given internal state x and input u.
// wn is added to the output as a noise vector.
func (s System) Observe(x, u, wn mat.Vector) (mat.Vector, error) {
	nx, nu, ny, _ := s.SystemDims()
	if s.C == nil {
		return nil, fmt.Errorf("system has no output matrix")
	}

	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	out := mat.NewVecDense(ny, nil)
	out.MulVec(s.C, x)

	if u != nil && s.D != nil {
		outU := mat.NewVecDense(ny, nil)
		outU.MulVec(s.D, u)
		out.AddVec(out, outU)
	}

	if wn != nil && wn.Len() == ny {
		out.AddVec(out, wn)
	}

	return out, nil
}
