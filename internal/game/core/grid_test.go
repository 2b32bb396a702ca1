package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_Normalize(t *testing.T) {
	g := NewGrid(8, 6)

	tests := []struct {
		name     string
		in       Position
		expected Position
	}{
		{"InRange", Position{3, 2}, Position{3, 2}},
		{"NegativeX", Position{-1, 2}, Position{7, 2}},
		{"NegativeY", Position{3, -1}, Position{3, 5}},
		{"OverflowX", Position{8, 0}, Position{0, 0}},
		{"OverflowY", Position{0, 13}, Position{0, 1}},
		{"FarNegative", Position{-17, -7}, Position{7, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, g.Normalize(tt.in))
		})
	}
}

func TestGrid_Distance(t *testing.T) {
	g := NewGrid(10, 10)

	tests := []struct {
		name     string
		from     Position
		to       Position
		expected int
	}{
		{"Same", Position{5, 5}, Position{5, 5}, 0},
		{"Adjacent", Position{5, 5}, Position{6, 5}, 1},
		{"Diagonal", Position{0, 0}, Position{1, 1}, 2},
		{"WrapX", Position{0, 0}, Position{9, 0}, 1},
		{"WrapY", Position{0, 1}, Position{0, 8}, 3},
		{"WrapBoth", Position{0, 0}, Position{9, 9}, 2},
		{"HalfWay", Position{0, 0}, Position{5, 5}, 10},
		{"Unnormalized", Position{-1, 0}, Position{0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, g.Distance(tt.from, tt.to))
			assert.Equal(t, tt.expected, g.Distance(tt.to, tt.from), "Distance not symmetric")
		})
	}
}

func TestGrid_Neighbors(t *testing.T) {
	g := NewGrid(4, 4)

	got := g.Neighbors(Position{0, 0})
	expected := [5]Position{
		{0, 3}, // North wraps
		{0, 1}, // South
		{1, 0}, // East
		{3, 0}, // West wraps
		{0, 0}, // Still
	}
	assert.Equal(t, expected, got)

	for i, d := range CandidateDirections {
		assert.Equal(t, g.Step(Position{0, 0}, d), got[i], "neighbor %d should match step %s", i, d)
	}
}

func TestGrid_UnsafeMoves(t *testing.T) {
	g := NewGrid(10, 10)

	tests := []struct {
		name     string
		from     Position
		to       Position
		expected []Direction
	}{
		{"Same", Position{3, 3}, Position{3, 3}, []Direction{}},
		{"East", Position{3, 3}, Position{5, 3}, []Direction{East}},
		{"West", Position{5, 3}, Position{3, 3}, []Direction{West}},
		{"North", Position{3, 5}, Position{3, 3}, []Direction{North}},
		{"South", Position{3, 3}, Position{3, 5}, []Direction{South}},
		{"XThenY", Position{3, 3}, Position{4, 4}, []Direction{East, South}},
		{"WrapWest", Position{1, 0}, Position{8, 0}, []Direction{West}},
		{"WrapNorth", Position{0, 1}, Position{0, 9}, []Direction{North}},
		{"HalfAxisWraps", Position{0, 0}, Position{5, 0}, []Direction{West}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, g.UnsafeMoves(tt.from, tt.to))
		})
	}
}

func TestGrid_UnsafeMovesReduceDistance(t *testing.T) {
	g := NewGrid(7, 5)
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			from := Position{x, y}
			to := Position{3, 2}
			before := g.Distance(from, to)
			for _, d := range g.UnsafeMoves(from, to) {
				after := g.Distance(g.Step(from, d), to)
				require.Less(t, after, before, "move %s from %s should approach %s", d, from, to)
			}
		}
	}
}
