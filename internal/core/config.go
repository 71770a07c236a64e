package core

import "time"

// RuntimeConfig contains configuration passed to games at creation.
type RuntimeConfig struct {
	Seed int64 // RNG seed for deterministic gameplay, 0 means time-based
}

// ResolvedSeed returns the configured seed, or a time-based one when unset.
func (c RuntimeConfig) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// NewSource returns a random source seeded from this config.
func (c RuntimeConfig) NewSource() Source {
	return NewSource(c.ResolvedSeed())
}
