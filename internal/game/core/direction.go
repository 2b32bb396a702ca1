package core

import "fmt"

// Direction is a single-step ship action on the map.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	Still
)

// CandidateDirections is the fixed order in which a ship's five possible
// destinations are enumerated. Grid.Neighbors returns positions in this order.
var CandidateDirections = [5]Direction{North, South, East, West, Still}

// Char returns the engine encoding of the direction.
func (d Direction) Char() byte {
	switch d {
	case North:
		return 'n'
	case South:
		return 's'
	case East:
		return 'e'
	case West:
		return 'w'
	default:
		return 'o'
	}
}

// String returns a readable name for logs
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case Still:
		return "still"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Invert returns the opposite direction. Still inverts to itself.
func (d Direction) Invert() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return Still
	}
}

// ParseDirection decodes the engine's single-character direction.
func ParseDirection(c byte) (Direction, error) {
	switch c {
	case 'n':
		return North, nil
	case 's':
		return South, nil
	case 'e':
		return East, nil
	case 'w':
		return West, nil
	case 'o':
		return Still, nil
	}
	return Still, fmt.Errorf("%q: %w", c, ErrInvalidDirection)
}
