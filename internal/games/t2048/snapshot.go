package t2048

// Snapshot captures the complete session state for determinism testing and
// replay comparisons.
type Snapshot struct {
	Size          int
	Target        int
	Score         int
	Moves         int
	Board         [][]int
	MaxTile       int // Highest tile on board
	TargetReached bool
	State         Status
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Size:          s.cfg.Size,
		Target:        s.cfg.Target,
		Score:         s.score,
		Moves:         s.moves,
		Board:         s.grid.Values(),
		MaxTile:       s.grid.MaxValue(),
		TargetReached: s.targetReached,
		State:         s.Status(),
	}
}
