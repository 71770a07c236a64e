// Package config provides YAML-based game configuration loading and
// environment overrides for merge2048.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
)

// GameConfig contains all configuration for a game session.
type GameConfig struct {
	Size         int           `yaml:"size"`
	Target       int           `yaml:"target"`
	InitialValue int           `yaml:"initial_value"`
	Preset       SpawnPreset   `yaml:"preset"`
	Spawn        []SpawnWeight `yaml:"spawn"`
}

// SpawnWeight is one entry of the spawn distribution.
type SpawnWeight struct {
	Value  int `yaml:"value"`
	Weight int `yaml:"weight"`
}

// SpawnPreset names a spawn distribution.
type SpawnPreset string

const (
	PresetClassic SpawnPreset = "classic" // 2:10, 4:2, 8:1
	PresetGentle  SpawnPreset = "gentle"  // always 2
	PresetTough   SpawnPreset = "tough"   // 2:6, 4:4, 8:3
)

// ErrUnknownPreset is returned for a preset name that is not defined.
var ErrUnknownPreset = errors.New("config: unknown spawn preset")

// WeightsForPreset returns the spawn distribution of a preset.
func WeightsForPreset(preset SpawnPreset) ([]SpawnWeight, error) {
	switch preset {
	case PresetClassic, "":
		return []SpawnWeight{{2, 10}, {4, 2}, {8, 1}}, nil
	case PresetGentle:
		return []SpawnWeight{{2, 1}}, nil
	case PresetTough:
		return []SpawnWeight{{2, 6}, {4, 4}, {8, 3}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
}

// ApplyPreset replaces the spawn distribution with a preset.
func ApplyPreset(cfg *GameConfig, preset SpawnPreset) error {
	weights, err := WeightsForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Preset = preset
	cfg.Spawn = weights
	return nil
}

// spawnWeights returns the explicit list, or the preset's when none is set.
func (c GameConfig) spawnWeights() ([]SpawnWeight, error) {
	if len(c.Spawn) > 0 {
		return c.Spawn, nil
	}
	return WeightsForPreset(c.Preset)
}

// SessionConfig converts the file representation into a validated
// t2048.Config.
func (c GameConfig) SessionConfig() (t2048.Config, error) {
	weights, err := c.spawnWeights()
	if err != nil {
		return t2048.Config{}, err
	}

	ws := make([]t2048.Weight, len(weights))
	for i, w := range weights {
		ws[i] = t2048.Weight{Value: w.Value, Weight: w.Weight}
	}
	spawn, err := t2048.NewValuePolicy(ws...)
	if err != nil {
		return t2048.Config{}, fmt.Errorf("config: spawn: %w", err)
	}

	initial := t2048.InitialValuePolicy()
	if c.InitialValue != 0 {
		initial, err = t2048.NewValuePolicy(t2048.Weight{Value: c.InitialValue, Weight: 1})
		if err != nil {
			return t2048.Config{}, fmt.Errorf("config: initial_value: %w", err)
		}
	}

	cfg := t2048.Config{
		Size:    c.Size,
		Target:  c.Target,
		Spawn:   spawn,
		Initial: initial,
	}
	if cfg.Size == 0 {
		cfg.Size = t2048.DefaultSize
	}
	if cfg.Target == 0 {
		cfg.Target = t2048.DefaultTarget
	}
	if err := cfg.Validate(); err != nil {
		return t2048.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first configuration error, if any.
func (c GameConfig) Validate() error {
	_, err := c.SessionConfig()
	return err
}
