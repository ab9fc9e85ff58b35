package noise

import (
	"fmt"

	"github.com/milosgajdos/go-rssimap/rnd"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform is uniform noise on the [Min, Max) interval
type Uniform struct {
	// dist is a continuous uniform distribution
	dist distuv.Uniform
	// src is the source of randomness of dist
	src rand.Source
}

// NewUniform creates new Uniform noise on the [min, max) interval drawing samples from src.
// If src is nil a new time-seeded source is used.
// It returns error if min is not smaller than max.
func NewUniform(min, max float64, src rand.Source) (*Uniform, error) {
	if !(min < max) {
		return nil, fmt.Errorf("invalid uniform noise interval: [%v, %v)", min, max)
	}

	if src == nil {
		src = rnd.NewSource(rnd.TimeSeed())
	}

	return &Uniform{
		dist: distuv.Uniform{Min: min, Max: max, Src: src},
		src:  src,
	}, nil
}

// Sample generates a sample from Uniform noise and returns it.
func (u *Uniform) Sample() float64 {
	return u.dist.Rand()
}

// Mean returns Uniform noise mean.
func (u *Uniform) Mean() float64 {
	return u.dist.Mean()
}

// Var returns Uniform noise variance.
func (u *Uniform) Var() float64 {
	return u.dist.Variance()
}

// Reset reseeds Uniform noise source with seed.
func (u *Uniform) Reset(seed uint64) {
	u.src.Seed(seed)
}

// String implements the Stringer interface.
func (u *Uniform) String() string {
	return fmt.Sprintf("Uniform{Min=%g Max=%g}", u.dist.Min, u.dist.Max)
}
