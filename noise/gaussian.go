package noise

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-rssimap/rnd"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian is gaussian noise
type Gaussian struct {
	// dist is a univariate normal distribution
	dist distuv.Normal
	// src is the source of randomness of dist
	src rand.Source
}

// NewGaussian creates new Gaussian noise with given mean and standard deviation.
// If src is nil a new time-seeded source is used.
// It returns error if stddev is not a positive number.
func NewGaussian(mean, stddev float64, src rand.Source) (*Gaussian, error) {
	if math.IsNaN(stddev) || stddev <= 0 {
		return nil, fmt.Errorf("invalid gaussian noise standard deviation: %v", stddev)
	}

	if src == nil {
		src = rnd.NewSource(rnd.TimeSeed())
	}

	return &Gaussian{
		dist: distuv.Normal{Mu: mean, Sigma: stddev, Src: src},
		src:  src,
	}, nil
}

// Sample generates a sample from Gaussian noise and returns it.
func (g *Gaussian) Sample() float64 {
	return g.dist.Rand()
}

// Mean returns Gaussian mean.
func (g *Gaussian) Mean() float64 {
	return g.dist.Mu
}

// Var returns Gaussian variance.
func (g *Gaussian) Var() float64 {
	return g.dist.Variance()
}

// Reset reseeds Gaussian noise source with seed.
func (g *Gaussian) Reset(seed uint64) {
	g.src.Seed(seed)
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{Mean=%g StdDev=%g}", g.dist.Mu, g.dist.Sigma)
}
