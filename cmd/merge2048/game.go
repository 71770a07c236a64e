package main

import (
	"fmt"

	"github.com/vovakirdan/merge2048/internal/config"
	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/registry"
)

// resolveGame combines an optional variant argument with the loaded config.
// A variant overrides the configured size and target; without one the
// variant id is derived from the board.
func resolveGame(game config.GameConfig, args []string) (string, t2048.Config, error) {
	variantID := ""
	if len(args) > 0 {
		v, err := registry.Get(args[0])
		if err != nil {
			return "", t2048.Config{}, fmt.Errorf("%w (run 'merge2048 list' to see variants)", err)
		}
		game.Size = v.Size
		game.Target = v.Target
		variantID = v.ID
	}

	cfg, err := game.SessionConfig()
	if err != nil {
		return "", t2048.Config{}, err
	}
	if variantID == "" {
		variantID = variantFor(cfg.Size, cfg.Target)
	}
	return variantID, cfg, nil
}

// variantFor returns the registered variant matching a board, or a
// synthetic id so scores of custom boards stay separate.
func variantFor(size, target int) string {
	for _, v := range registry.List() {
		if v.Size == size && v.Target == target {
			return v.ID
		}
	}
	return fmt.Sprintf("%dx%d-%d", size, size, target)
}

// directionFor maps a move action to a slide direction.
func directionFor(a core.Action) (t2048.Direction, bool) {
	switch a {
	case core.ActionLeft:
		return t2048.DirLeft, true
	case core.ActionRight:
		return t2048.DirRight, true
	case core.ActionUp:
		return t2048.DirUp, true
	case core.ActionDown:
		return t2048.DirDown, true
	}
	return 0, false
}

// newSource pins the seed first so the value reported to the player is
// the one that seeded the source.
func newSource(seed int64) (core.Source, int64) {
	rc := core.RuntimeConfig{Seed: seed}
	rc.Seed = rc.ResolvedSeed()
	return rc.NewSource(), rc.Seed
}
