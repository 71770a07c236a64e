package t2048

import "errors"

var (
	// ErrInvalidDirection is returned for a direction outside Left/Right/Up/Down.
	ErrInvalidDirection = errors.New("t2048: invalid direction")
	// ErrInvalidSize is returned when a grid or session is created with N < 2.
	ErrInvalidSize = errors.New("t2048: grid size must be at least 2")
	// ErrGameOver is returned by ApplyMove once no direction can change the grid.
	ErrGameOver = errors.New("t2048: game is already over")
	// ErrOccupiedCell is returned by Grid.Place when the cell already holds a tile.
	ErrOccupiedCell = errors.New("t2048: cell is occupied")
	// ErrCellOutOfRange is returned for coordinates outside the grid.
	ErrCellOutOfRange = errors.New("t2048: cell out of range")
	// ErrInvalidValue is returned for tile values that are not powers of two >= 2.
	ErrInvalidValue = errors.New("t2048: tile value must be a power of two >= 2")
	// ErrInvalidPolicy is returned for an unusable spawn distribution.
	ErrInvalidPolicy = errors.New("t2048: invalid spawn policy")
	// ErrInvalidTarget is returned for a target that is not a power of two >= 2.
	ErrInvalidTarget = errors.New("t2048: invalid target value")
)

// ErrNoSource is returned when a session is created without a random source.
var ErrNoSource = errors.New("t2048: random source is required")

// ErrNilGrid is returned when a session is resumed from a nil grid.
var ErrNilGrid = errors.New("t2048: grid is nil")
