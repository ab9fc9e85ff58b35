package rnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func TestNewSource(t *testing.T) {
	assert := assert.New(t)

	r1 := rand.New(NewSource(42))
	r2 := rand.New(NewSource(42))
	for i := 0; i < 10; i++ {
		assert.Equal(r1.Float64(), r2.Float64())
	}

	r3 := rand.New(NewSource(43))
	assert.NotEqual(rand.New(NewSource(42)).Uint64(), r3.Uint64())
}

func TestTimeSeed(t *testing.T) {
	assert := assert.New(t)
	assert.NotZero(TimeSeed())
}

func TestCellSeed(t *testing.T) {
	assert := assert.New(t)

	seed := uint64(2500)
	seen := make(map[uint64]bool)
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			s := CellSeed(seed, row, col)
			assert.Equal(s, CellSeed(seed, row, col))
			assert.False(seen[s], "duplicate seed for cell [%d, %d]", row, col)
			seen[s] = true
		}
	}

	// transposed cells must not collide
	assert.NotEqual(CellSeed(seed, 1, 2), CellSeed(seed, 2, 1))
	// different base seeds yield different cell seeds
	assert.NotEqual(CellSeed(1, 0, 0), CellSeed(2, 0, 0))
}
