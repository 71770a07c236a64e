package t2048

import (
	"fmt"

	"github.com/vovakirdan/merge2048/internal/core"
)

// Weight is one entry of a spawn distribution.
type Weight struct {
	Value  int
	Weight int
}

// ValuePolicy picks the value of a newly spawned tile from a weighted
// distribution. It holds no state beyond the distribution itself.
type ValuePolicy struct {
	weights []Weight
	total   int
}

// NewValuePolicy validates and builds a distribution.
func NewValuePolicy(weights ...Weight) (ValuePolicy, error) {
	if len(weights) == 0 {
		return ValuePolicy{}, fmt.Errorf("%w: no weights", ErrInvalidPolicy)
	}

	p := ValuePolicy{weights: make([]Weight, len(weights))}
	for i, w := range weights {
		if !isPowerOfTwo(w.Value) {
			return ValuePolicy{}, fmt.Errorf("%w: value %d is not a power of two >= 2", ErrInvalidPolicy, w.Value)
		}
		if w.Weight <= 0 {
			return ValuePolicy{}, fmt.Errorf("%w: weight for %d must be positive", ErrInvalidPolicy, w.Value)
		}
		p.weights[i] = w
		p.total += w.Weight
	}
	return p, nil
}

// DefaultValuePolicy yields 2, 4 and 8 with weights 10:2:1.
func DefaultValuePolicy() ValuePolicy {
	return ValuePolicy{
		weights: []Weight{{Value: 2, Weight: 10}, {Value: 4, Weight: 2}, {Value: 8, Weight: 1}},
		total:   13,
	}
}

// InitialValuePolicy always yields 2. Used for the two starting tiles.
func InitialValuePolicy() ValuePolicy {
	return ValuePolicy{
		weights: []Weight{{Value: 2, Weight: 1}},
		total:   1,
	}
}

// IsZero reports whether the policy was never initialised.
func (p ValuePolicy) IsZero() bool {
	return p.total == 0
}

// Weights returns a copy of the distribution.
func (p ValuePolicy) Weights() []Weight {
	out := make([]Weight, len(p.weights))
	copy(out, p.weights)
	return out
}

// Probability returns the chance of spawning value v.
func (p ValuePolicy) Probability(v int) float64 {
	if p.total == 0 {
		return 0
	}
	n := 0
	for _, w := range p.weights {
		if w.Value == v {
			n += w.Weight
		}
	}
	return float64(n) / float64(p.total)
}

// Next draws a spawn value using a single rng.Intn call.
func (p ValuePolicy) Next(rng core.Source) int {
	if len(p.weights) == 1 {
		return p.weights[0].Value
	}

	r := rng.Intn(p.total)
	for _, w := range p.weights {
		if r < w.Weight {
			return w.Value
		}
		r -= w.Weight
	}
	// Unreachable while total is the sum of weights.
	return p.weights[len(p.weights)-1].Value
}
