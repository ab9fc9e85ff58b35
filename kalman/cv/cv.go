package cv

import (
	"fmt"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/kalman"
	"gonum.org/v1/gonum/mat"
)

// f is state transition matrix of a constant velocity model
var f = Mat2{
	{1, 1},
	{0, 1},
}

// Filter is constant velocity Kalman filter
type Filter struct {
	// x is filter state: [position, velocity]
	x Vec2
	// p is state covariance
	p Mat2
	// k is the most recent Kalman gain
	k Vec2
	// q is process noise covariance
	q Mat2
	// r is measurement noise variance
	r float64
	// p0 is initial state covariance
	p0 Mat2
}

// New creates new Filter with reference parameters and returns it
func New() *Filter {
	return newFilter(kalman.DefaultParams())
}

// NewWithParams creates new Filter with the given parameters and returns it.
// It returns error if any of the parameters is not a positive number.
func NewWithParams(p kalman.Params) (*Filter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return newFilter(p), nil
}

func newFilter(p kalman.Params) *Filter {
	p0 := Diag2(p.InitialCov)

	return &Filter{
		p:  p0,
		q:  Diag2(p.ProcessNoise),
		r:  p.MeasurementNoise,
		p0: p0,
	}
}

// Predict propagates filter state and its covariance one step forward:
//
//	x = F*x
//	P = F*P*F' + Q
func (c *Filter) Predict() {
	c.x = f.MulVec(c.x)
	c.p = f.Mul(c.p).Mul(f.T()).Add(c.q)
}

// Update corrects filter state using measurement z:
//
//	y = z - H*x
//	S = H*P*H' + R
//	K = P*H' / S
//	x = x + K*y
//	P = (I - K*H)*P
//
// S never drops below R so the division is always defined.
func (c *Filter) Update(z float64) {
	y := z - c.x[0]
	s := c.p[0][0] + c.r

	c.k = Vec2{c.p[0][0] / s, c.p[1][0] / s}

	c.x[0] += c.k[0] * y
	c.x[1] += c.k[1] * y

	ikh := Mat2{
		{1 - c.k[0], 0},
		{-c.k[1], 1},
	}
	c.p = ikh.Mul(c.p)
}

// Estimate returns estimated position
func (c *Filter) Estimate() float64 {
	return c.x[0]
}

// Run runs predict and update step for every measurement in zs
// and returns position estimates recorded after every update.
func (c *Filter) Run(zs []float64) []float64 {
	est := make([]float64, len(zs))
	for i, z := range zs {
		c.Predict()
		c.Update(z)
		est[i] = c.x[0]
	}

	return est
}

// Reset restores filter to its initial condition
func (c *Filter) Reset() {
	c.x = Vec2{}
	c.k = Vec2{}
	c.p = c.p0
}

// State returns filter state
func (c *Filter) State() Vec2 {
	return c.x
}

// Cov returns filter state covariance
func (c *Filter) Cov() mat.Symmetric {
	return mat.NewSymDense(2, []float64{
		c.p[0][0], c.p[0][1],
		c.p[1][0], c.p[1][1],
	})
}

// Gain returns the most recent Kalman gain
func (c *Filter) Gain() mat.Matrix {
	return mat.NewDense(2, 1, []float64{c.k[0], c.k[1]})
}

// String implements fmt.Stringer
func (c *Filter) String() string {
	return fmt.Sprintf("CV{Pos=%g Vel=%g P=%v R=%g}", c.x[0], c.x[1], c.p, c.r)
}

// Factory returns constructor of reference filters
func Factory() (rssimap.Estimator, error) {
	return New(), nil
}

// FactoryWithParams returns constructor of filters configured with p
func FactoryWithParams(p kalman.Params) func() (rssimap.Estimator, error) {
	return func() (rssimap.Estimator, error) {
		c, err := NewWithParams(p)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
