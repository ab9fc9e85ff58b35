package kf

import (
	"fmt"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/kalman"
	"github.com/milosgajdos/go-rssimap/sim"
	"gonum.org/v1/gonum/mat"
)

// Tracker tracks a scalar signal with KF running a constant velocity model.
// It implements rssimap.Estimator.
type Tracker struct {
	// f is the underlying filter
	f *KF
	// x is the current state estimate
	x mat.Vector
	// z is measurement scratch vector
	z *mat.VecDense
	// err is the first error encountered by the filter
	err error
}

// NewTracker creates new Tracker with the given parameters and returns it.
// It returns error if any of the parameters is invalid.
func NewTracker(p kalman.Params) (*Tracker, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m := sim.NewConstantVelocity()
	nx, _, ny, _ := m.SystemDims()

	q := mat.NewSymDense(nx, nil)
	for i := 0; i < nx; i++ {
		q.SetSym(i, i, p.ProcessNoise)
	}

	r := mat.NewSymDense(ny, []float64{p.MeasurementNoise})

	init := sim.NewDiffuseInitCond(nx, p.InitialCov)

	f, err := New(m, init, q, r)
	if err != nil {
		return nil, err
	}

	return &Tracker{
		f: f,
		x: init.State(),
		z: mat.NewVecDense(ny, nil),
	}, nil
}

// Predict propagates tracker state to the next step
func (t *Tracker) Predict() {
	if t.err != nil {
		return
	}

	est, err := t.f.Predict(t.x, nil)
	if err != nil {
		t.err = fmt.Errorf("predict: %w", err)
		return
	}
	t.x = est.Val()
}

// Update corrects tracker state with measurement z
func (t *Tracker) Update(z float64) {
	if t.err != nil {
		return
	}

	t.z.SetVec(0, z)
	est, err := t.f.Update(t.x, nil, t.z)
	if err != nil {
		t.err = fmt.Errorf("update: %w", err)
		return
	}
	t.x = est.Val()
}

// Estimate returns estimated signal level
func (t *Tracker) Estimate() float64 {
	return t.x.AtVec(0)
}

// Err returns the first error the tracker ran into.
// Once it is set Predict and Update have no effect.
func (t *Tracker) Err() error {
	return t.err
}

// State returns tracker state
func (t *Tracker) State() mat.Vector {
	x := &mat.VecDense{}
	x.CloneFromVec(t.x)

	return x
}

// Cov returns tracker state covariance
func (t *Tracker) Cov() mat.Symmetric {
	return t.f.Cov()
}

// Gain returns the most recent Kalman gain
func (t *Tracker) Gain() mat.Matrix {
	return t.f.Gain()
}

// Factory returns constructor of trackers configured with p
func Factory(p kalman.Params) func() (rssimap.Estimator, error) {
	return func() (rssimap.Estimator, error) {
		t, err := NewTracker(p)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}
