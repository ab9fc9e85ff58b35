package kf

import (
	"fmt"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/estimate"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// KF is Kalman Filter
type KF struct {
	// m is KF system model
	m rssimap.DiscreteSystem
	// q is state noise a.k.a. process noise covariance
	q *mat.SymDense
	// r is output noise a.k.a. measurement noise covariance
	r *mat.SymDense
	// p is the KF covariance matrix
	p *mat.SymDense
	// pNext is the KF predicted covariance matrix
	pNext *mat.SymDense
	// k is Kalman gain
	k *mat.Dense
}

// New creates new KF and returns it.
// It accepts the following parameters:
//   - m:      dynamical system model
//   - init:   initial condition of the filter
//   - q:      state a.k.a. process noise covariance
//   - r:      output a.k.a. measurement noise covariance
//
// It returns error if either of the following conditions is met:
//   - invalid model is given: model dimensions must be positive integers
//   - invalid noise is given: noise covariance must match the model dimensions
func New(m rssimap.DiscreteSystem, init rssimap.InitCond, q, r mat.Symmetric) (*KF, error) {
	if m == nil || init == nil {
		return nil, fmt.Errorf("invalid model or initial condition: %w", rssimap.ErrInvalidInput)
	}

	nx, _, ny, _ := m.SystemDims()
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("invalid model dimensions: [%d x %d]", nx, ny)
	}

	if q == nil || q.SymmetricDim() != nx {
		return nil, fmt.Errorf("invalid state noise dimension: %v", q)
	}

	if r == nil || r.SymmetricDim() != ny {
		return nil, fmt.Errorf("invalid output noise dimension: %v", r)
	}

	rows, cols := m.SystemMatrix().Dims()
	if rows != nx || cols != nx {
		return nil, fmt.Errorf("invalid propagation matrix dimensions: [%d x %d]", rows, cols)
	}

	if m.ControlMatrix() != nil {
		rows, cols := m.ControlMatrix().Dims()
		if rows != nx {
			return nil, fmt.Errorf("invalid ctl propagation matrix dimensions: [%d x %d]", rows, cols)
		}
	}

	if m.OutputMatrix() == nil {
		return nil, fmt.Errorf("missing observation matrix")
	}

	rows, cols = m.OutputMatrix().Dims()
	if rows != ny || cols != nx {
		return nil, fmt.Errorf("invalid observation matrix dimensions: [%d x %d]", rows, cols)
	}

	if m.FeedForwardMatrix() != nil {
		rows, cols = m.FeedForwardMatrix().Dims()
		if rows != ny {
			return nil, fmt.Errorf("invalid ctl observation matrix dimensions: [%d x %d]", rows, cols)
		}
	}

	if n := init.Cov().SymmetricDim(); n != nx {
		return nil, fmt.Errorf("invalid initial covariance dimension: %d", n)
	}

	// initialize covariance matrix to initial condition covariance
	p := mat.NewSymDense(nx, nil)
	p.CopySym(init.Cov())

	// predicted state covariance starts at the initial covariance
	pNext := mat.NewSymDense(nx, nil)
	pNext.CopySym(p)

	qCov := mat.NewSymDense(nx, nil)
	qCov.CopySym(q)

	rCov := mat.NewSymDense(ny, nil)
	rCov.CopySym(r)

	return &KF{
		m:     m,
		q:     qCov,
		r:     rCov,
		p:     p,
		pNext: pNext,
		k:     mat.NewDense(nx, ny, nil),
	}, nil
}

// Predict calculates the next system state given the state x and input u and returns its estimate.
// Process noise only inflates the predicted covariance; the state itself is propagated noise free.
// It returns error if it fails to propagate x to the next step.
func (k *KF) Predict(x, u mat.Vector) (rssimap.Estimate, error) {
	// propagate input state to the next step
	xNext, err := k.m.Propagate(x, u, nil)
	if err != nil {
		return nil, fmt.Errorf("system state propagation failed: %w", err)
	}

	cov := &mat.Dense{}
	cov.Mul(k.m.SystemMatrix(), k.p)
	cov.Mul(cov, k.m.SystemMatrix().T())
	cov.Add(cov, k.q)

	// update KF predicted covariance matrix
	n := k.pNext.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k.pNext.SetSym(i, j, cov.At(i, j))
		}
	}

	return estimate.NewBaseWithCov(xNext, k.pNext)
}

// Update corrects state x using the measurement z, given control input u and returns corrected estimate.
// It returns error if either invalid state was supplied or if it fails to calculate system output estimate.
func (k *KF) Update(x, u, z mat.Vector) (rssimap.Estimate, error) {
	nx, _, ny, _ := k.m.SystemDims()

	if z == nil || z.Len() != ny {
		return nil, fmt.Errorf("invalid measurement supplied: %v", z)
	}

	// observe system output in the next step
	yNext, err := k.m.Observe(x, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to observe system output: %w", err)
	}

	pxy := mat.NewDense(nx, ny, nil)
	pyy := mat.NewDense(ny, ny, nil)

	// P*H'
	pxy.Mul(k.pNext, k.m.OutputMatrix().T())

	// Note: pxy = P * H' so we reuse the result here
	// H*P*H' + R
	pyy.Mul(k.m.OutputMatrix(), pxy)
	pyy.Add(pyy, k.r)

	// calculate Kalman gain
	pyyInv := &mat.Dense{}
	if err := pyyInv.Inverse(pyy); err != nil {
		return nil, fmt.Errorf("failed to calculate Pyy inverse: %w", err)
	}
	gain := &mat.Dense{}
	gain.Mul(pxy, pyyInv)

	// innovation vector
	inn := &mat.VecDense{}
	inn.SubVec(z, yNext)

	// update state x
	corr := &mat.VecDense{}
	corr.MulVec(gain, inn)
	xCorr := &mat.VecDense{}
	xCorr.AddVec(x, corr)

	// Joseph form update
	eye, err := matrix.NewDenseValIdentity(nx, 1.0)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity matrix: %w", err)
	}
	a := &mat.Dense{}
	// K*H
	a.Mul(gain, k.m.OutputMatrix())
	// eye - K*H
	a.Sub(eye, a)

	// K*R*K'
	kr := &mat.Dense{}
	kr.Mul(gain, k.r)
	pkrk := &mat.Dense{}
	pkrk.Mul(kr, gain.T())

	ap := &mat.Dense{}
	ap.Mul(a, k.pNext)
	pCorr := &mat.Dense{}
	pCorr.Mul(ap, a.T())
	pCorr.Add(pCorr, pkrk)

	k.k.Copy(gain)
	// update KF covariance matrix
	for i := 0; i < nx; i++ {
		for j := i; j < nx; j++ {
			k.p.SetSym(i, j, pCorr.At(i, j))
		}
	}

	return estimate.NewBaseWithCov(xCorr, k.p)
}

// Run runs one step of KF for given state x, input u and measurement z.
// It corrects system state x using measurement z and returns new system estimate.
// It returns error if it either fails to propagate or correct state x.
func (k *KF) Run(x, u, z mat.Vector) (rssimap.Estimate, error) {
	pred, err := k.Predict(x, u)
	if err != nil {
		return nil, err
	}

	est, err := k.Update(pred.Val(), u, z)
	if err != nil {
		return nil, err
	}

	return est, nil
}

// Model returns KF model
func (k *KF) Model() rssimap.DiscreteSystem {
	return k.m
}

// Cov returns KF covariance
func (k *KF) Cov() mat.Symmetric {
	cov := mat.NewSymDense(k.p.SymmetricDim(), nil)
	cov.CopySym(k.p)

	return cov
}

// Gain returns Kalman gain
func (k *KF) Gain() mat.Matrix {
	gain := &mat.Dense{}
	gain.CloneFrom(k.k)

	return gain
}
