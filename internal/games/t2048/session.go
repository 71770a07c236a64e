package t2048

import (
	"fmt"

	"github.com/vovakirdan/merge2048/internal/core"
)

// DefaultSize is the classic board dimension.
const DefaultSize = 4

// DefaultTarget is the tile value that counts as a win.
const DefaultTarget = 2048

// initialTiles is the number of tiles placed when a session starts.
const initialTiles = 2

// Status represents the current game state.
type Status int

const (
	// StatusActive means moves are accepted and the target has not been reached.
	StatusActive Status = iota
	// StatusWon means the target was reached at least once; play continues.
	StatusWon
	// StatusOver means no direction changes the grid.
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusWon:
		return "won"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Config describes a session. Zero fields fall back to defaults.
type Config struct {
	Size    int         // Board dimension N, at least 2
	Target  int         // Tile value that triggers the win event
	Spawn   ValuePolicy // Distribution for tiles spawned after a move
	Initial ValuePolicy // Distribution for the starting tiles
}

// DefaultConfig returns the classic 4x4 game to 2048.
func DefaultConfig() Config {
	return Config{
		Size:    DefaultSize,
		Target:  DefaultTarget,
		Spawn:   DefaultValuePolicy(),
		Initial: InitialValuePolicy(),
	}
}

func (c Config) withDefaults() Config {
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.Target == 0 {
		c.Target = DefaultTarget
	}
	if c.Spawn.IsZero() {
		c.Spawn = DefaultValuePolicy()
	}
	if c.Initial.IsZero() {
		c.Initial = InitialValuePolicy()
	}
	return c
}

// Validate checks the config after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.Size < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, c.Size)
	}
	if !isPowerOfTwo(c.Target) {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, c.Target)
	}
	return nil
}

// Spawn describes a tile added after a move.
type Spawn struct {
	Tile Tile
	Cell Cell
}

// MoveResult is everything a presentation layer needs to react to a move.
type MoveResult struct {
	Direction   Direction
	Relocations []Relocation
	Merges      []Merge
	Changed     bool
	Spawned     *Spawn // nil when the grid did not change or was full
	ScoreDelta  int
	NewScore    int
	WonJustNow  bool // target reached for the first time on this move
	GameOverNow bool // this move left the grid without legal moves
}

// Session is one game: the grid, its score and its terminal state.
// A Session is not safe for concurrent use; hosts serialize ApplyMove calls.
type Session struct {
	cfg  Config
	rng  core.Source
	grid *Grid

	lastID        TileID
	score         int
	moves         int
	targetReached bool
	over          bool
}

// NewSession creates a game with two starting tiles in distinct random cells.
func NewSession(cfg Config, rng core.Source) (*Session, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNoSource
	}

	grid, err := NewGrid(cfg.Size)
	if err != nil {
		return nil, err
	}

	s := &Session{cfg: cfg, rng: rng, grid: grid}
	for range initialTiles {
		s.spawnTile(cfg.Initial)
	}
	s.score = s.grid.Sum()
	s.over = !HasLegalMoves(s.grid)
	return s, nil
}

// NewSessionFromGrid resumes play on an existing grid. No tiles are spawned;
// the target flag and terminal state are derived from the grid without
// raising events. cfg.Size is taken from the grid.
func NewSessionFromGrid(cfg Config, rng core.Source, g *Grid) (*Session, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if g.Size() < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, g.Size())
	}
	cfg.Size = g.Size()
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNoSource
	}

	s := &Session{
		cfg:    cfg,
		rng:    rng,
		grid:   g.Clone(),
		lastID: g.maxID(),
	}
	s.score = s.grid.Sum()
	s.targetReached = s.grid.MaxValue() >= cfg.Target
	s.over = !HasLegalMoves(s.grid)
	return s, nil
}

// spawnTile places one tile from policy into a uniformly random empty cell.
// The cell is drawn before the value. Returns nil when the grid is full.
func (s *Session) spawnTile(policy ValuePolicy) *Spawn {
	empty := s.grid.EmptyCells()
	if len(empty) == 0 {
		return nil
	}

	cell := empty[s.rng.Intn(len(empty))]
	s.lastID++
	tile := Tile{ID: s.lastID, Value: policy.Next(s.rng)}

	// Cells come from EmptyCells, so a failure here is a bug.
	if err := s.grid.Place(cell, tile); err != nil {
		panic(fmt.Sprintf("t2048: spawn at %v: %v", cell, err))
	}
	return &Spawn{Tile: tile, Cell: cell}
}

// ApplyMove slides the grid, spawns a tile if anything changed, recomputes
// the score as the sum of all tiles and updates the win and terminal flags.
// A move that changes nothing is not an error: it returns Changed=false and
// leaves the session untouched.
func (s *Session) ApplyMove(dir Direction) (MoveResult, error) {
	if s.over {
		return MoveResult{}, ErrGameOver
	}

	out, err := ComputeMove(s.grid, dir)
	if err != nil {
		return MoveResult{}, err
	}

	res := MoveResult{Direction: dir, NewScore: s.score}
	if !out.Changed {
		return res, nil
	}

	s.grid = out.Grid
	s.moves++
	res.Changed = true
	res.Relocations = out.Relocations
	res.Merges = out.Merges

	if !s.targetReached && s.grid.MaxValue() >= s.cfg.Target {
		s.targetReached = true
		res.WonJustNow = true
	}

	res.Spawned = s.spawnTile(s.cfg.Spawn)

	prev := s.score
	s.score = s.grid.Sum()
	res.NewScore = s.score
	res.ScoreDelta = s.score - prev

	if !HasLegalMoves(s.grid) {
		s.over = true
		res.GameOverNow = true
	}

	return res, nil
}

// HasLegalMoves reports whether any direction would change the grid.
func (s *Session) HasLegalMoves() bool {
	return HasLegalMoves(s.grid)
}

// Grid returns a copy of the current grid.
func (s *Session) Grid() *Grid {
	return s.grid.Clone()
}

// Score returns the sum of all tile values.
func (s *Session) Score() int {
	return s.score
}

// Target returns the win target.
func (s *Session) Target() int {
	return s.cfg.Target
}

// Size returns the board dimension.
func (s *Session) Size() int {
	return s.cfg.Size
}

// TargetReached is sticky: once true it stays true.
func (s *Session) TargetReached() bool {
	return s.targetReached
}

// Moves returns the number of moves that changed the grid.
func (s *Session) Moves() int {
	return s.moves
}

// Over reports whether the game has ended.
func (s *Session) Over() bool {
	return s.over
}

// Status returns the current game state.
func (s *Session) Status() Status {
	switch {
	case s.over:
		return StatusOver
	case s.targetReached:
		return StatusWon
	default:
		return StatusActive
	}
}
