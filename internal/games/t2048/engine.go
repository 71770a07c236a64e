package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Directions lists every direction in probe order.
var Directions = [...]Direction{DirLeft, DirRight, DirUp, DirDown}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= DirLeft && d <= DirDown
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts a full name or its first letter, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// ParseMoves parses a compact move script such as "LLURD". Whitespace and
// commas are ignored.
func ParseMoves(script string) ([]Direction, error) {
	var dirs []Direction
	for _, r := range script {
		if r == ' ' || r == ',' || r == '\t' || r == '\n' {
			continue
		}
		d, err := ParseDirection(string(r))
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// Relocation records a tile ending a move in a different cell.
type Relocation struct {
	Tile TileID
	From Cell
	To   Cell
}

// Merge records two tiles combining into one. The survivor keeps its id and
// takes the doubled value; the absorbed tile disappears.
type Merge struct {
	Survivor TileID
	Absorbed TileID
	Cell     Cell
	Value    int
}

// Outcome is the pure result of sliding a grid in one direction.
type Outcome struct {
	Grid        *Grid
	Relocations []Relocation
	Merges      []Merge
	Changed     bool
}

// lane returns the cells of lane i ordered toward the wall that dir slides
// into. Rows serve Left/Right, columns serve Up/Down; Right and Down walk
// their lane backwards, so writing results through the same cells undoes the
// reversal.
func lane(size int, dir Direction, i int) []Cell {
	cells := make([]Cell, size)
	for k := range size {
		switch dir {
		case DirLeft:
			cells[k] = Cell{Row: i, Col: k}
		case DirRight:
			cells[k] = Cell{Row: i, Col: size - 1 - k}
		case DirUp:
			cells[k] = Cell{Row: k, Col: i}
		case DirDown:
			cells[k] = Cell{Row: size - 1 - k, Col: i}
		}
	}
	return cells
}

// laneMove and laneMerge use positions within a lane.
type laneMove struct {
	tile     TileID
	from, to int
}

type laneMerge struct {
	survivor, absorbed TileID
	at, value          int
}

// slideLane slides and merges a single lane toward index 0.
// A tile merges at most once per move and the leftmost equal pair wins,
// so [2,2,2] becomes [4,2] and [2,2,4] becomes [4,4].
func slideLane(row []Tile) (result []Tile, moves []laneMove, merges []laneMerge) {
	result = make([]Tile, len(row))
	writePos := 0
	// mergeable is true while result[writePos-1] has not merged this move.
	mergeable := false

	for i, t := range row {
		if t.Value == 0 {
			continue
		}

		if mergeable && result[writePos-1].Value == t.Value {
			// Merge with previous tile
			at := writePos - 1
			result[at].Value *= 2
			merges = append(merges, laneMerge{
				survivor: result[at].ID,
				absorbed: t.ID,
				at:       at,
				value:    result[at].Value,
			})
			moves = append(moves, laneMove{tile: t.ID, from: i, to: at})
			mergeable = false
			continue
		}

		// Move tile
		result[writePos] = t
		if i != writePos {
			moves = append(moves, laneMove{tile: t.ID, from: i, to: writePos})
		}
		writePos++
		mergeable = true
	}

	return result, moves, merges
}

// ComputeMove slides every lane of g in dir and returns the new grid with
// the relocation and merge events. g itself is not modified.
func ComputeMove(g *Grid, dir Direction) (Outcome, error) {
	if !dir.Valid() {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	next := &Grid{size: g.size, cells: make([]Tile, len(g.cells))}
	out := Outcome{Grid: next}
	row := make([]Tile, g.size)

	for i := range g.size {
		cells := lane(g.size, dir, i)
		for k, c := range cells {
			row[k] = g.cells[g.index(c)]
		}

		result, moves, merges := slideLane(row)
		for k, c := range cells {
			next.set(c, result[k])
			// Lane-wise value comparison; equivalent to !g.Equal(next).
			if result[k].Value != row[k].Value {
				out.Changed = true
			}
		}

		for _, m := range moves {
			out.Relocations = append(out.Relocations, Relocation{
				Tile: m.tile,
				From: cells[m.from],
				To:   cells[m.to],
			})
		}
		for _, m := range merges {
			out.Merges = append(out.Merges, Merge{
				Survivor: m.survivor,
				Absorbed: m.absorbed,
				Cell:     cells[m.at],
				Value:    m.value,
			})
		}
	}

	return out, nil
}

// WouldChange reports whether sliding g in dir would change it, without
// building a new grid or any events.
func WouldChange(g *Grid, dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	for i := range g.size {
		if laneWouldChange(g, lane(g.size, dir, i)) {
			return true, nil
		}
	}
	return false, nil
}

// laneWouldChange: a lane changes iff a tile sits behind a gap or two
// neighbouring tiles are equal. Before the first gap tiles are packed, so
// physical and compacted neighbours coincide.
func laneWouldChange(g *Grid, cells []Cell) bool {
	prev := 0
	seenGap := false
	for _, c := range cells {
		v := g.cells[g.index(c)].Value
		if v == 0 {
			seenGap = true
			continue
		}
		if seenGap || v == prev {
			return true
		}
		prev = v
	}
	return false
}

// HasLegalMoves probes Left, Right, Up, Down in that order and returns true
// on the first direction that would change the grid.
func HasLegalMoves(g *Grid) bool {
	for _, d := range Directions {
		if changed, _ := WouldChange(g, d); changed {
			return true
		}
	}
	return false
}
