package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

func laneOf(values ...int) []Tile {
	row := make([]Tile, len(values))
	var id TileID
	for i, v := range values {
		if v != 0 {
			id++
			row[i] = Tile{ID: id, Value: v}
		}
	}
	return row
}

func laneValues(row []Tile) []int {
	out := make([]int, len(row))
	for i, t := range row {
		out[i] = t.Value
	}
	return out
}

func TestSlideLaneMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		merges   int
	}{
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 1},
		{"merge with trailing tile", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 1},
		{"double merge", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 2},
		{"merged tile does not merge again", []int{2, 2, 4, 0}, []int{4, 4, 0, 0}, 1},
		{"later pair merges", []int{4, 2, 2, 0}, []int{4, 4, 0, 0}, 1},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, 0},
		{"slide with gap", []int{0, 0, 2, 2}, []int{4, 0, 0, 0}, 1},
		{"slide with multiple gaps", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 1},
		{"no change needed", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, 0},
		{"empty row", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0},
		{"single tile", []int{0, 4, 0, 0}, []int{4, 0, 0, 0}, 0},
		{"four of a kind", []int{4, 4, 4, 4}, []int{8, 8, 0, 0}, 2},
		{"five wide", []int{2, 0, 2, 4, 4}, []int{4, 8, 0, 0, 0}, 2},
		{"two wide", []int{8, 8}, []int{16, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, merges := slideLane(laneOf(tt.input...))
			got := laneValues(result)
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Fatalf("slideLane(%v) = %v, want %v", tt.input, got, tt.expected)
				}
			}
			if len(merges) != tt.merges {
				t.Errorf("slideLane(%v) merges = %d, want %d", tt.input, len(merges), tt.merges)
			}
		})
	}
}

func TestSlideLeft(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	expected := [][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	out, err := ComputeMove(g, DirLeft)
	if err != nil {
		t.Fatalf("ComputeMove() failed: %v", err)
	}
	if !valuesEqual(out.Grid.Values(), expected) {
		t.Errorf("SlideLeft: got\n%v\nwant\n%v", out.Grid.Values(), expected)
	}
	if !out.Changed {
		t.Error("SlideLeft should indicate board changed")
	}
	if len(out.Merges) != 4 {
		t.Errorf("SlideLeft merges = %d, want 4", len(out.Merges))
	}
}

func TestSlideRight(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	expected := [][]int{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	}

	out, _ := ComputeMove(g, DirRight)
	if !valuesEqual(out.Grid.Values(), expected) {
		t.Errorf("SlideRight: got\n%v\nwant\n%v", out.Grid.Values(), expected)
	}
	if !out.Changed {
		t.Error("SlideRight should indicate board changed")
	}
}

func TestSlideUp(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})

	expected := [][]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	out, _ := ComputeMove(g, DirUp)
	if !valuesEqual(out.Grid.Values(), expected) {
		t.Errorf("SlideUp: got\n%v\nwant\n%v", out.Grid.Values(), expected)
	}
	if !out.Changed {
		t.Error("SlideUp should indicate board changed")
	}
}

func TestSlideDown(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})

	expected := [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	out, _ := ComputeMove(g, DirDown)
	if !valuesEqual(out.Grid.Values(), expected) {
		t.Errorf("SlideDown: got\n%v\nwant\n%v", out.Grid.Values(), expected)
	}
	if !out.Changed {
		t.Error("SlideDown should indicate board changed")
	}
}

func TestNoChangeWhenPacked(t *testing.T) {
	g := mustGrid(t, [][]int{
		{4, 2, 0, 0},
		{2, 4, 8, 16},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	out, _ := ComputeMove(g, DirLeft)
	if out.Changed {
		t.Error("SlideLeft should not change already left-aligned tiles")
	}
	if len(out.Relocations) != 0 || len(out.Merges) != 0 {
		t.Errorf("unchanged move produced events: %v %v", out.Relocations, out.Merges)
	}
	if !out.Grid.Equal(g) {
		t.Error("unchanged move should reproduce the same grid")
	}
}

func TestComputeMoveDoesNotMutateInput(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 4, 0, 4},
		{0, 0, 0, 0},
	})
	before := g.Values()

	for _, d := range Directions {
		if _, err := ComputeMove(g, d); err != nil {
			t.Fatalf("ComputeMove(%v) failed: %v", d, err)
		}
	}

	if !valuesEqual(g.Values(), before) {
		t.Errorf("ComputeMove mutated its input: got %v, want %v", g.Values(), before)
	}
}

func TestMoveEvents(t *testing.T) {
	tests := []struct {
		name        string
		board       [][]int
		dir         Direction
		relocations []Relocation
		merges      []Merge
	}{
		{
			name:        "survivor in place, absorbed slides in",
			board:       [][]int{{2, 2}, {0, 0}},
			dir:         DirLeft,
			relocations: []Relocation{{Tile: 2, From: Cell{0, 1}, To: Cell{0, 0}}},
			merges:      []Merge{{Survivor: 1, Absorbed: 2, Cell: Cell{0, 0}, Value: 4}},
		},
		{
			name:  "both tiles travel to the merge cell",
			board: [][]int{{0, 0, 2, 2}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			dir:   DirLeft,
			relocations: []Relocation{
				{Tile: 1, From: Cell{0, 2}, To: Cell{0, 0}},
				{Tile: 2, From: Cell{0, 3}, To: Cell{0, 0}},
			},
			merges: []Merge{{Survivor: 1, Absorbed: 2, Cell: Cell{0, 0}, Value: 4}},
		},
		{
			name:        "right move keeps the wall-side tile as survivor",
			board:       [][]int{{0, 2, 0, 2}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			dir:         DirRight,
			relocations: []Relocation{{Tile: 1, From: Cell{0, 1}, To: Cell{0, 3}}},
			merges:      []Merge{{Survivor: 2, Absorbed: 1, Cell: Cell{0, 3}, Value: 4}},
		},
		{
			name:  "down move without merges",
			board: [][]int{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}},
			dir:   DirDown,
			relocations: []Relocation{
				{Tile: 1, From: Cell{0, 0}, To: Cell{2, 0}},
				{Tile: 2, From: Cell{1, 1}, To: Cell{2, 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ComputeMove(mustGrid(t, tt.board), tt.dir)
			if err != nil {
				t.Fatalf("ComputeMove() failed: %v", err)
			}

			if len(out.Relocations) != len(tt.relocations) {
				t.Fatalf("relocations = %v, want %v", out.Relocations, tt.relocations)
			}
			for i := range tt.relocations {
				if out.Relocations[i] != tt.relocations[i] {
					t.Errorf("relocation[%d] = %+v, want %+v", i, out.Relocations[i], tt.relocations[i])
				}
			}

			if len(out.Merges) != len(tt.merges) {
				t.Fatalf("merges = %v, want %v", out.Merges, tt.merges)
			}
			for i := range tt.merges {
				if out.Merges[i] != tt.merges[i] {
					t.Errorf("merge[%d] = %+v, want %+v", i, out.Merges[i], tt.merges[i])
				}
			}
		})
	}
}

func TestMergedTileKeepsSurvivorID(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 4, 0, 4}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})

	out, _ := ComputeMove(g, DirLeft)
	tile, ok := out.Grid.Get(Cell{0, 0})
	if !ok || tile.ID != 1 || tile.Value != 8 {
		t.Errorf("merged tile = %+v, want id 1 value 8", tile)
	}
	if out.Grid.TileCount() != 1 {
		t.Errorf("TileCount() = %d, want 1 after merge", out.Grid.TileCount())
	}
}

func TestMoveSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := range 200 {
		n := 2 + i%5
		values := randomValues(rng, n)
		g := mustGrid(t, values)

		right, _ := ComputeMove(g, DirRight)
		left, _ := ComputeMove(mustGrid(t, mirror(values)), DirLeft)
		if !valuesEqual(right.Grid.Values(), mirror(left.Grid.Values())) || right.Changed != left.Changed {
			t.Fatalf("Right is not the mirror of Left for %v", values)
		}

		up, _ := ComputeMove(g, DirUp)
		leftT, _ := ComputeMove(mustGrid(t, transposeValues(values)), DirLeft)
		if !valuesEqual(up.Grid.Values(), transposeValues(leftT.Grid.Values())) || up.Changed != leftT.Changed {
			t.Fatalf("Up is not the transpose of Left for %v", values)
		}

		down, _ := ComputeMove(g, DirDown)
		rightT, _ := ComputeMove(mustGrid(t, transposeValues(values)), DirRight)
		if !valuesEqual(down.Grid.Values(), transposeValues(rightT.Grid.Values())) || down.Changed != rightT.Changed {
			t.Fatalf("Down is not the transpose of Right for %v", values)
		}
	}
}

func TestMoveConservesValue(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for range 200 {
		g := mustGrid(t, randomValues(rng, 4))
		for _, d := range Directions {
			out, _ := ComputeMove(g, d)
			if out.Grid.Sum() != g.Sum() {
				t.Fatalf("%v changed the value sum: %d -> %d on\n%v", d, g.Sum(), out.Grid.Sum(), g)
			}
			if got, want := out.Grid.TileCount(), g.TileCount()-len(out.Merges); got != want {
				t.Fatalf("%v tile count = %d, want %d", d, got, want)
			}
		}
	}
}

func TestWouldChangeMatchesComputeMove(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for range 300 {
		g := mustGrid(t, randomValues(rng, 2+rng.Intn(4)))
		for _, d := range Directions {
			out, _ := ComputeMove(g, d)
			changed, err := WouldChange(g, d)
			if err != nil {
				t.Fatalf("WouldChange() failed: %v", err)
			}
			if changed != out.Changed {
				t.Fatalf("WouldChange(%v) = %v, ComputeMove.Changed = %v on\n%v", d, changed, out.Changed, g)
			}
		}
	}
}

func TestChangedMatchesGridEquality(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for range 300 {
		g := mustGrid(t, randomValues(rng, 2+rng.Intn(4)))
		for _, d := range Directions {
			out, err := ComputeMove(g, d)
			if err != nil {
				t.Fatalf("ComputeMove() failed: %v", err)
			}
			if out.Changed == g.Equal(out.Grid) {
				t.Fatalf("%v: Changed = %v but Equal = %v on\n%v", d, out.Changed, g.Equal(out.Grid), g)
			}
			if diff := g.Diff(out.Grid); out.Changed != (len(diff) > 0) {
				t.Fatalf("%v: Changed = %v but Diff = %v on\n%v", d, out.Changed, diff, g)
			}
		}
	}
}

func TestCheckerboardHasNoLegalMoves(t *testing.T) {
	for _, n := range []int{2, 4, 5, 6} {
		values := make([][]int, n)
		for r := range n {
			values[r] = make([]int, n)
			for c := range n {
				if (r+c)%2 == 0 {
					values[r][c] = 2
				} else {
					values[r][c] = 4
				}
			}
		}
		g := mustGrid(t, values)

		if HasLegalMoves(g) {
			t.Errorf("%dx%d checkerboard should have no legal moves", n, n)
		}
		for _, d := range Directions {
			if out, _ := ComputeMove(g, d); out.Changed {
				t.Errorf("%dx%d checkerboard changed on %v", n, n, d)
			}
		}
	}
}

func TestHasLegalMoves(t *testing.T) {
	tests := []struct {
		name     string
		board    [][]int
		expected bool
	}{
		{
			name: "full board without merges",
			board: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			expected: false,
		},
		{
			name: "full board with horizontal merge",
			board: [][]int{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			expected: true,
		},
		{
			name: "full board with vertical merge",
			board: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 16},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			expected: true,
		},
		{
			name: "board with empty cell",
			board: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLegalMoves(mustGrid(t, tt.board)); got != tt.expected {
				t.Errorf("HasLegalMoves() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInvalidDirection(t *testing.T) {
	g := mustGrid(t, [][]int{{2, 0}, {0, 0}})

	if _, err := ComputeMove(g, Direction(4)); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ComputeMove error = %v, want ErrInvalidDirection", err)
	}
	if _, err := WouldChange(g, Direction(-1)); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("WouldChange error = %v, want ErrInvalidDirection", err)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
	}{
		{"left", DirLeft},
		{"L", DirLeft},
		{"Right", DirRight},
		{"r", DirRight},
		{"up", DirUp},
		{"U", DirUp},
		{"DOWN", DirDown},
		{"d", DirDown},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if err != nil || got != tt.expected {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", tt.input, got, err, tt.expected)
		}
	}

	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseDirection(sideways) error = %v, want ErrInvalidDirection", err)
	}
}

func TestParseMoves(t *testing.T) {
	dirs, err := ParseMoves("LR, ud\nL")
	if err != nil {
		t.Fatalf("ParseMoves() failed: %v", err)
	}

	want := []Direction{DirLeft, DirRight, DirUp, DirDown, DirLeft}
	if len(dirs) != len(want) {
		t.Fatalf("ParseMoves() = %v, want %v", dirs, want)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("ParseMoves()[%d] = %v, want %v", i, dirs[i], want[i])
		}
	}

	if _, err := ParseMoves("LXR"); err == nil {
		t.Error("ParseMoves with an unknown letter should fail")
	}
}
