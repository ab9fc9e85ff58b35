package cv

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/kalman"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	measurements = []float64{
		-65.0, -74.0, -68.5, -77.25, -62.0, -71.0, -69.5, -79.0, -60.5, -70.25,
		-66.0, -73.5, -75.0, -64.25, -72.0, -67.75, -78.5, -61.0, -70.0, -69.0,
	}
	estimates = []float64{
		-64.83790604535639, -74.22524889974656, -71.12534026930474, -76.0280908404681,
		-68.919755743907, -69.92283166787183, -69.79884255652861, -73.7275495487973,
		-69.15706048934517, -69.45586946799183, -68.25663648947679, -69.74172898953393,
		-71.33922808152059, -69.46386036092053, -70.13599361544092, -69.51458714457598,
		-71.90852721610766, -69.21834933732657, -69.33004759375288, -69.17346314897614,
	}
	approx = cmpopts.EquateApprox(0, 1e-9)
)

// compile time check
var _ kalman.Kalman = (*Filter)(nil)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	c := New()
	assert.NotNil(c)
	assert.Equal(Vec2{}, c.State())
	assert.Equal(0.0, c.Estimate())

	cov := c.Cov()
	assert.Equal(1000.0, cov.At(0, 0))
	assert.Equal(0.0, cov.At(0, 1))
	assert.Equal(1000.0, cov.At(1, 1))

	c, err := NewWithParams(kalman.Params{ProcessNoise: 0.1, MeasurementNoise: 1, InitialCov: 10})
	assert.NotNil(c)
	assert.NoError(err)
	assert.Equal(10.0, c.Cov().At(1, 1))

	c, err = NewWithParams(kalman.Params{ProcessNoise: 0.1, MeasurementNoise: 0, InitialCov: 10})
	assert.Nil(c)
	assert.ErrorIs(err, rssimap.ErrInvalidInput)
}

func TestPredict(t *testing.T) {
	assert := assert.New(t)

	c := New()
	c.x = Vec2{-70, 2}
	c.Predict()

	assert.Equal(Vec2{-68, 2}, c.State())
	cov := c.Cov()
	assert.InDelta(2000.01, cov.At(0, 0), 1e-9)
	assert.InDelta(1000.0, cov.At(0, 1), 1e-9)
	assert.InDelta(1000.01, cov.At(1, 1), 1e-9)
}

func TestFirstStep(t *testing.T) {
	assert := assert.New(t)

	c := New()
	c.Predict()
	c.Update(-70)

	// x0 is zero and P0 is large so the first estimate lands close to the first measurement
	assert.InDelta(-69.82543727961456, c.Estimate(), 1e-9)
	assert.InDelta(0.9975062468516367, c.Gain().At(0, 0), 1e-12)
	assert.InDelta(0.49875062967267, c.Gain().At(1, 0), 1e-12)
	assert.InDelta(-34.9125440770869, c.State()[1], 1e-9)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	c := New()
	est := c.Run(measurements)
	if diff := cmp.Diff(estimates, est, approx); diff != "" {
		t.Errorf("unexpected estimates (-want +got):\n%s", diff)
	}

	// filtered sequence is smoother than the measurements
	assert.Less(floats.Max(est)-floats.Min(est), floats.Max(measurements)-floats.Min(measurements))
	assert.InDelta(-70.26404587534748, stat.Mean(est, nil), 1e-9)

	// run is equivalent to stepping the filter manually
	c2 := New()
	for i, z := range measurements {
		c2.Predict()
		c2.Update(z)
		assert.InDelta(est[i], c2.Estimate(), 1e-12)
	}
}

func TestRunEmpty(t *testing.T) {
	assert := assert.New(t)

	c := New()
	est := c.Run(nil)
	assert.Empty(est)
	assert.Equal(0.0, c.Estimate())
}

func TestDeterministic(t *testing.T) {
	assert := assert.New(t)

	c1, c2 := New(), New()
	assert.Equal(c1.Run(measurements), c2.Run(measurements))

	// reset filter behaves like a fresh one
	c1.Reset()
	assert.Equal(Vec2{}, c1.State())
	if diff := cmp.Diff(estimates, c1.Run(measurements), approx); diff != "" {
		t.Errorf("reset filter diverged (-want +got):\n%s", diff)
	}
}

func TestConstantConvergence(t *testing.T) {
	assert := assert.New(t)

	for _, v := range []float64{-70, -55.5, -90} {
		zs := make([]float64, 20)
		for i := range zs {
			zs[i] = v
		}

		est := New().Run(zs)
		last := math.Abs(est[1] - v)
		for i := 2; i < len(est); i++ {
			err := math.Abs(est[i] - v)
			assert.LessOrEqual(err, last, "step %d", i)
			last = err
		}
		assert.Less(math.Abs(est[len(est)-1]-v), 0.05)
	}
}

func TestFinalEstimateBounded(t *testing.T) {
	assert := assert.New(t)

	est := New().Run(measurements)
	last := est[len(est)-1]
	assert.GreaterOrEqual(last, floats.Min(measurements)-1.0)
	assert.LessOrEqual(last, floats.Max(measurements)+1.0)
}

func TestFactory(t *testing.T) {
	assert := assert.New(t)

	e, err := Factory()
	assert.NoError(err)
	assert.IsType(&Filter{}, e)

	fn := FactoryWithParams(kalman.DefaultParams())
	e, err = fn()
	assert.NoError(err)
	assert.NotNil(e)

	fn = FactoryWithParams(kalman.Params{})
	e, err = fn()
	assert.Nil(e)
	assert.Error(err)
}

func TestMat2(t *testing.T) {
	assert := assert.New(t)

	m := Mat2{{1, 2}, {3, 4}}
	assert.Equal(Mat2{{1, 3}, {2, 4}}, m.T())
	assert.Equal(Mat2{{7, 10}, {15, 22}}, m.Mul(m))
	assert.Equal(Mat2{{2, 4}, {6, 8}}, m.Add(m))
	assert.Equal(Vec2{5, 11}, m.MulVec(Vec2{1, 2}))
	assert.Equal(m, m.Mul(Diag2(1)))
}
