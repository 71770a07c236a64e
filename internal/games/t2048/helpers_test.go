package t2048

import (
	"math/rand"
	"testing"
)

// scriptedSource replays a fixed list of draws, each reduced modulo n.
// With no draws it always returns 0.
type scriptedSource struct {
	draws []int
	pos   int
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	return 0
}

func mustGrid(t *testing.T, values [][]int) *Grid {
	t.Helper()
	g, err := FromValues(values)
	if err != nil {
		t.Fatalf("FromValues(%v) failed: %v", values, err)
	}
	return g
}

func valuesEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func mirror(values [][]int) [][]int {
	out := make([][]int, len(values))
	for r, row := range values {
		out[r] = make([]int, len(row))
		for c, v := range row {
			out[r][len(row)-1-c] = v
		}
	}
	return out
}

func transposeValues(values [][]int) [][]int {
	out := make([][]int, len(values))
	for r := range values {
		out[r] = make([]int, len(values))
		for c := range values {
			out[r][c] = values[c][r]
		}
	}
	return out
}

// randomValues fills an n×n matrix with small tiles and gaps.
func randomValues(rng *rand.Rand, n int) [][]int {
	choices := []int{0, 0, 2, 2, 4, 8, 16}
	values := make([][]int, n)
	for r := range n {
		values[r] = make([]int, n)
		for c := range n {
			values[r][c] = choices[rng.Intn(len(choices))]
		}
	}
	return values
}
