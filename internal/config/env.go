package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from MERGE2048_* environment variables.
// Zero values mean "not set" and leave the file configuration alone.
type Env struct {
	Size     int    `env:"MERGE2048_SIZE"`
	Target   int    `env:"MERGE2048_TARGET"`
	Preset   string `env:"MERGE2048_PRESET"`
	Seed     int64  `env:"MERGE2048_SEED"`
	DBPath   string `env:"MERGE2048_DB"`
	LogLevel string `env:"MERGE2048_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads overrides from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply overrides the game config with any variables that were set.
func (e Env) Apply(cfg *GameConfig) error {
	if e.Size != 0 {
		cfg.Size = e.Size
	}
	if e.Target != 0 {
		cfg.Target = e.Target
	}
	if e.Preset != "" {
		if err := ApplyPreset(cfg, SpawnPreset(e.Preset)); err != nil {
			return err
		}
	}
	return nil
}
