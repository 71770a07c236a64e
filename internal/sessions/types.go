// Package sessions hosts concurrent 2048 games. Each game is a
// t2048.Session behind its own lock; finished games are handed to a
// ResultSaver exactly once.
package sessions

import (
	"errors"
	"time"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
)

// ID uniquely identifies a hosted game.
type ID string

// ErrSessionNotFound is returned for unknown or closed session ids.
var ErrSessionNotFound = errors.New("sessions: session not found")

// Options describes a game to create.
type Options struct {
	Variant string       // Registry variant id, recorded with the result
	Config  t2048.Config // Rules of the game
	Source  core.Source  // Randomness; required
	Board   *t2048.Grid  // Optional starting grid; Config.Size is taken from it
}

// Result is the final record of a game.
type Result struct {
	GameID   ID
	Variant  string
	Size     int
	Target   int
	Score    int
	MaxTile  int
	Moves    int
	Won      bool
	Over     bool // false when the game was closed while still playable
	Duration time.Duration
}

// ResultSaver persists finished games.
// Implemented by storage.Store; may be nil on the Manager.
type ResultSaver interface {
	SaveResult(r Result) error
}
