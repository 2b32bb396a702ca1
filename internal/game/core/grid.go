package core

// Grid describes the dimensions of a toroidal map. All geometry on the map
// (distance, neighbors, raw steps) goes through a Grid so wraparound is
// handled in one place.
type Grid struct {
	Width, Height int
}

func NewGrid(width, height int) Grid {
	return Grid{Width: width, Height: height}
}

// Normalize wraps a position into [0,Width) x [0,Height).
func (g Grid) Normalize(p Position) Position {
	return Position{X: wrap(p.X, g.Width), Y: wrap(p.Y, g.Height)}
}

// Distance is the Manhattan distance taking the shorter way around each axis.
func (g Grid) Distance(a, b Position) int {
	a, b = g.Normalize(a), g.Normalize(b)
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return min(dx, g.Width-dx) + min(dy, g.Height-dy)
}

// Neighbors returns the four cardinal neighbors of p followed by p itself,
// in CandidateDirections order.
func (g Grid) Neighbors(p Position) [5]Position {
	var out [5]Position
	for i, d := range CandidateDirections {
		out[i] = g.Normalize(p.DirectionalOffset(d))
	}
	return out
}

// Step returns the normalized position reached by moving one step in d.
func (g Grid) Step(p Position, d Direction) Position {
	return g.Normalize(p.DirectionalOffset(d))
}

// UnsafeMoves returns the directions that bring from closer to to, ignoring
// anything standing on the map. The x-axis move (if any) comes first. When the
// direct path spans half the axis or more, the wrapped direction is used.
// Returns an empty slice when from == to.
func (g Grid) UnsafeMoves(from, to Position) []Direction {
	from, to = g.Normalize(from), g.Normalize(to)
	moves := make([]Direction, 0, 2)

	dx := abs(from.X - to.X)
	if dx != 0 {
		d := West
		if from.X < to.X {
			d = East
		}
		if 2*dx >= g.Width {
			d = d.Invert()
		}
		moves = append(moves, d)
	}

	dy := abs(from.Y - to.Y)
	if dy != 0 {
		d := North
		if from.Y < to.Y {
			d = South
		}
		if 2*dy >= g.Height {
			d = d.Invert()
		}
		moves = append(moves, d)
	}

	return moves
}

func wrap(v, n int) int {
	if n <= 0 {
		return v
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
