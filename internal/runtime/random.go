package runtime

import "math/rand/v2"

// RandomSource yields floats in [0, 1). It drives branch selection.
type RandomSource interface {
	Float64() float64
}

// RandomFunc adapts a function to RandomSource.
type RandomFunc func() float64

func (f RandomFunc) Float64() float64 { return f() }

// DefaultRandom returns the process-wide pseudo-random source.
func DefaultRandom() RandomSource {
	return RandomFunc(rand.Float64)
}
