// Package core provides fundamental types shared by the game and the host
// layers. It has no external dependencies so game logic stays pure and
// testable.
package core

import "math/rand"

// Source is the only source of randomness a game consumes.
// *rand.Rand satisfies it, tests can substitute a scripted source.
type Source interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
	// Intn returns a number in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// NewSource creates a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
