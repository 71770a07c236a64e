// Package t2048 implements the rules of the 2048 sliding-tile puzzle on an
// N×N grid: sliding and merging, spawning, scoring and win/terminal
// detection. It does no rendering, timing or I/O.
package t2048

import "github.com/vovakirdan/merge2048/internal/registry"

// Variants are the board presets offered to players.
var Variants = []registry.Variant{
	{ID: "4x4", Title: "Classic 4x4", Size: 4, Target: DefaultTarget},
	{ID: "5x5", Title: "Roomy 5x5", Size: 5, Target: DefaultTarget},
	{ID: "6x6", Title: "Grand 6x6", Size: 6, Target: DefaultTarget},
}

func init() {
	for _, v := range Variants {
		registry.Register(v)
	}
}

// ConfigFor returns the session config for a variant with the default
// spawn distributions.
func ConfigFor(v registry.Variant) Config {
	cfg := DefaultConfig()
	cfg.Size = v.Size
	cfg.Target = v.Target
	return cfg
}
