package sim

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

var (
	x, u, q, r *mat.VecDense
	A, B, C, D *mat.Dense
)

func setup() {
	x = mat.NewVecDense(2, []float64{0.5, 0.6})
	u = mat.NewVecDense(1, []float64{-1.0})

	// state and output noise
	q = mat.NewVecDense(2, []float64{0.1, -0.1})
	r = mat.NewVecDense(1, []float64{0.5})

	A = mat.NewDense(2, 2, []float64{1.0, 1.0, 0.0, 1.0})
	B = mat.NewDense(2, 1, []float64{0.5, 1.0})
	C = mat.NewDense(1, 2, []float64{1.0, 0.0})
	D = mat.NewDense(1, 1, []float64{0.0})
}

func TestMain(m *testing.M) {
	// set up tests
	setup()
	// run the tests
	retCode := m.Run()
	// call with result of m.Run()
	os.Exit(retCode)
}

func TestInitCond(t *testing.T) {
	assert := assert.New(t)

	state := mat.NewVecDense(2, []float64{1.0, 3.0})
	cov := mat.NewSymDense(2, []float64{0.25, 0, 0, 0.25})

	ic := NewInitCond(state, cov)

	s := ic.State()
	for i := 0; i < state.Len(); i++ {
		assert.Equal(state.AtVec(i), s.AtVec(i))
	}

	c := ic.Cov()
	for i := 0; i < cov.SymmetricDim(); i++ {
		for j := 0; j < cov.SymmetricDim(); j++ {
			assert.Equal(cov.At(i, j), c.At(i, j))
		}
	}

	// returned values are copies
	s.(*mat.VecDense).SetVec(0, 100)
	assert.Equal(1.0, ic.State().AtVec(0))
}

func TestDiffuseInitCond(t *testing.T) {
	assert := assert.New(t)

	ic := NewDiffuseInitCond(2, 1000)
	assert.Equal(0.0, ic.State().AtVec(0))
	assert.Equal(0.0, ic.State().AtVec(1))
	assert.True(mat.Equal(ic.Cov(), mat.NewDiagDense(2, []float64{1000, 1000})))
}

func TestNewDiscrete(t *testing.T) {
	assert := assert.New(t)

	f, err := NewDiscrete(A, B, C, D)
	assert.NotNil(f)
	assert.NoError(err)

	f, err = NewDiscrete(nil, B, C, D)
	assert.Nil(f)
	assert.Error(err)

	f, err = NewDiscrete(mat.NewDense(2, 3, nil), B, C, D)
	assert.Nil(f)
	assert.Error(err)
}

func TestDiscretePropagate(t *testing.T) {
	assert := assert.New(t)

	f, err := NewDiscrete(A, B, C, D)
	assert.NoError(err)

	v, err := f.Propagate(x, u, q)
	assert.NoError(err)
	// A*x + B*u + q
	assert.InDelta(0.5+0.6-0.5+0.1, v.AtVec(0), 1e-12)
	assert.InDelta(0.6-1.0-0.1, v.AtVec(1), 1e-12)

	_u := mat.NewVecDense(10, nil)
	v, err = f.Propagate(x, _u, q)
	assert.Nil(v)
	assert.Error(err)

	_x := mat.NewVecDense(10, nil)
	v, err = f.Propagate(_x, u, q)
	assert.Nil(v)
	assert.Error(err)

	v, err = f.Propagate(x, nil, nil)
	assert.NoError(err)
	assert.InDelta(1.1, v.AtVec(0), 1e-12)
	assert.InDelta(0.6, v.AtVec(1), 1e-12)
}

func TestDiscreteObserve(t *testing.T) {
	assert := assert.New(t)

	f, err := NewDiscrete(A, B, C, D)
	assert.NoError(err)

	v, err := f.Observe(x, u, r)
	assert.NoError(err)
	assert.InDelta(1.0, v.AtVec(0), 1e-12)

	_u := mat.NewVecDense(10, nil)
	v, err = f.Observe(x, _u, r)
	assert.Nil(v)
	assert.Error(err)

	_x := mat.NewVecDense(10, nil)
	v, err = f.Observe(_x, u, r)
	assert.Nil(v)
	assert.Error(err)

	v, err = f.Observe(x, u, nil)
	assert.NoError(err)
	assert.InDelta(0.5, v.AtVec(0), 1e-12)
}

func TestConstantVelocity(t *testing.T) {
	assert := assert.New(t)

	cv := NewConstantVelocity()
	nx, nu, ny, nz := cv.SystemDims()
	assert.Equal(2, nx)
	assert.Equal(0, nu)
	assert.Equal(1, ny)
	assert.Equal(2, nz)

	assert.Nil(cv.ControlMatrix())
	assert.Nil(cv.FeedForwardMatrix())

	state := mat.NewVecDense(2, []float64{-70, 2})
	next, err := cv.Propagate(state, nil, nil)
	assert.NoError(err)
	assert.Equal(-68.0, next.AtVec(0))
	assert.Equal(2.0, next.AtVec(1))

	y, err := cv.Observe(next, nil, nil)
	assert.NoError(err)
	assert.Equal(-68.0, y.AtVec(0))
}

func TestSystemMatrices(t *testing.T) {
	assert := assert.New(t)
	f := System{A, B, C, D}

	assert.True(mat.EqualApprox(f.SystemMatrix(), A, 0.001))
	assert.True(mat.EqualApprox(f.ControlMatrix(), B, 0.001))
	assert.True(mat.EqualApprox(f.OutputMatrix(), C, 0.001))
	assert.True(mat.EqualApprox(f.FeedForwardMatrix(), D, 0.001))
}

func TestSystemDims(t *testing.T) {
	assert := assert.New(t)
	f := System{A, B, C, D}

	nx, nu, ny, nz := f.SystemDims()
	r, c := A.Dims()
	assert.Equal(nx, r) // A is square [n,n]
	assert.Equal(nx, c)
	r, c = B.Dims()
	assert.Equal(nx, r) // B [n,p]
	assert.Equal(nu, c)
	r, c = C.Dims()
	assert.Equal(ny, r) // C [q,n]
	assert.Equal(nx, c)
	r, c = D.Dims()
	assert.Equal(ny, r) // D [q,p]
	assert.Equal(nu, c)
	assert.Equal(nx, nz)
}
