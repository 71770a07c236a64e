package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// TileID identifies a tile instance for the lifetime of its session.
// Zero is never assigned.
type TileID uint64

// Tile is a single numbered tile. Value only changes by merging.
type Tile struct {
	ID    TileID
	Value int
}

// Cell addresses a grid position, row-major with (0,0) at the top left.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is an N×N board of optional tiles.
// The zero Tile (ID 0, Value 0) marks an empty cell.
type Grid struct {
	size  int
	cells []Tile
}

// NewGrid creates an empty grid of the given size.
func NewGrid(size int) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &Grid{
		size:  size,
		cells: make([]Tile, size*size),
	}, nil
}

// FromValues builds a square grid from a matrix of values, 0 meaning empty.
// Tiles get ids 1..k in row-major order.
func FromValues(values [][]int) (*Grid, error) {
	g, err := NewGrid(len(values))
	if err != nil {
		return nil, err
	}

	var next TileID
	for r, row := range values {
		if len(row) != g.size {
			return nil, fmt.Errorf("t2048: row %d has %d cells, want %d", r, len(row), g.size)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if !isPowerOfTwo(v) {
				return nil, fmt.Errorf("%w: %d at %v", ErrInvalidValue, v, Cell{r, c})
			}
			next++
			g.cells[r*g.size+c] = Tile{ID: next, Value: v}
		}
	}
	return g, nil
}

// ParseGrid parses rows separated by '/' with comma separated values,
// e.g. "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,4". Empty cells are 0, '_' or '.'.
func ParseGrid(s string) (*Grid, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	values := make([][]int, len(rows))
	for r, row := range rows {
		for _, field := range strings.Split(row, ",") {
			field = strings.TrimSpace(field)
			if field == "_" || field == "." || field == "" {
				values[r] = append(values[r], 0)
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("t2048: row %d: %w", r, err)
			}
			values[r] = append(values[r], v)
		}
	}
	return FromValues(values)
}

// Size returns N.
func (g *Grid) Size() int {
	return g.size
}

// Contains reports whether the cell lies inside the grid.
func (g *Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

func (g *Grid) index(c Cell) int {
	return c.Row*g.size + c.Col
}

// Get returns the tile at c, if any.
func (g *Grid) Get(c Cell) (Tile, bool) {
	if !g.Contains(c) {
		return Tile{}, false
	}
	t := g.cells[g.index(c)]
	return t, t.Value != 0
}

// Place puts a tile into an empty cell.
func (g *Grid) Place(c Cell, t Tile) error {
	if !g.Contains(c) {
		return fmt.Errorf("%w: %v", ErrCellOutOfRange, c)
	}
	if !isPowerOfTwo(t.Value) {
		return fmt.Errorf("%w: %d", ErrInvalidValue, t.Value)
	}
	i := g.index(c)
	if g.cells[i].Value != 0 {
		return fmt.Errorf("%w: %v", ErrOccupiedCell, c)
	}
	g.cells[i] = t
	return nil
}

// set overwrites a cell unconditionally; the zero Tile clears it.
func (g *Grid) set(c Cell, t Tile) {
	g.cells[g.index(c)] = t
}

// EmptyCells returns the empty cells in row-major order.
func (g *Grid) EmptyCells() []Cell {
	var cells []Cell
	for i, t := range g.cells {
		if t.Value == 0 {
			cells = append(cells, Cell{Row: i / g.size, Col: i % g.size})
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g *Grid) HasEmptyCell() bool {
	for _, t := range g.cells {
		if t.Value == 0 {
			return true
		}
	}
	return false
}

// TileCount returns the number of occupied cells.
func (g *Grid) TileCount() int {
	n := 0
	for _, t := range g.cells {
		if t.Value != 0 {
			n++
		}
	}
	return n
}

// Sum returns the total of all tile values.
func (g *Grid) Sum() int {
	sum := 0
	for _, t := range g.cells {
		sum += t.Value
	}
	return sum
}

// MaxValue returns the maximum tile value on the grid.
func (g *Grid) MaxValue() int {
	maxVal := 0
	for _, t := range g.cells {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// maxID returns the largest tile id on the grid.
func (g *Grid) maxID() TileID {
	var id TileID
	for _, t := range g.cells {
		if t.ID > id {
			id = t.ID
		}
	}
	return id
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}

// Equal reports whether both grids have the same size and the same value in
// every cell. Tile ids are ignored.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i].Value != other.cells[i].Value {
			return false
		}
	}
	return true
}

// Diff returns the cells whose values differ between g and other, in
// row-major order. Grids of different size differ everywhere.
func (g *Grid) Diff(other *Grid) []Cell {
	var cells []Cell
	for i := range g.cells {
		if other == nil || g.size != other.size || g.cells[i].Value != other.cells[i].Value {
			cells = append(cells, Cell{Row: i / g.size, Col: i % g.size})
		}
	}
	return cells
}

// Values returns the grid as a matrix of values, 0 for empty cells.
func (g *Grid) Values() [][]int {
	values := make([][]int, g.size)
	for r := range g.size {
		values[r] = make([]int, g.size)
		for c := range g.size {
			values[r][c] = g.cells[r*g.size+c].Value
		}
	}
	return values
}

// String renders the grid as right-aligned columns with '.' for empty cells.
func (g *Grid) String() string {
	width := len(strconv.Itoa(g.MaxValue()))
	if width < 1 {
		width = 1
	}

	var sb strings.Builder
	for r := range g.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := g.cells[r*g.size+c].Value
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
	}
	return sb.String()
}

func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
