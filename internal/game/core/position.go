package core

import "fmt"

// Position is a cell on the toroidal game map. Positions are only meaningful
// relative to a Grid, which wraps them into range.
type Position struct {
	X, Y int
}

// NewPosition creates a new position with the given x and y values
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// DirectionalOffset returns the position one step away in the given direction.
// The result is not normalized; callers pass it through Grid.Normalize.
func (p Position) DirectionalOffset(d Direction) Position {
	switch d {
	case North:
		return Position{X: p.X, Y: p.Y - 1}
	case South:
		return Position{X: p.X, Y: p.Y + 1}
	case East:
		return Position{X: p.X + 1, Y: p.Y}
	case West:
		return Position{X: p.X - 1, Y: p.Y}
	default:
		return p
	}
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
