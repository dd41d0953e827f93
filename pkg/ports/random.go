package ports

import (
	"math/rand"
	"time"
)

// RandomSource picks filler entries. *rand.Rand satisfies it.
type RandomSource interface {
	// Intn returns a non-negative pseudo-random number in [0,n).
	Intn(n int) int
}

// NewSeededSource returns a reproducible source for the given seed.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSource returns a source seeded from the current time.
func NewTimeSource() RandomSource {
	return NewSeededSource(time.Now().UnixNano())
}
