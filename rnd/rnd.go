package rnd

import (
	"time"

	"golang.org/x/exp/rand"
)

// NewSource returns a new random source seeded with seed
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// TimeSeed returns a seed derived from the current time
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// CellSeed derives a seed for the grid cell at row and col from the base seed.
// Derived seeds of different cells are decorrelated, so every cell can own
// an independent source which yields the same sequence regardless of the order
// in which the cells are processed.
func CellSeed(seed uint64, row, col int) uint64 {
	cell := uint64(uint32(row))<<32 | uint64(uint32(col))
	return splitMix64(seed ^ splitMix64(cell))
}

// splitMix64 is the SplitMix64 finalizer
// See: https://prng.di.unimi.it/splitmix64.c
func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
