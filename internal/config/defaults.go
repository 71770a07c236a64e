package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Size:         4,
		Target:       2048,
		InitialValue: 2,
		Preset:       PresetClassic,
		Spawn: []SpawnWeight{
			{Value: 2, Weight: 10},
			{Value: 4, Weight: 2},
			{Value: 8, Weight: 1},
		},
	}
}
