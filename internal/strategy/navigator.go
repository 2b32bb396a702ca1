package strategy

import (
	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// Navigator turns a desired destination into a single step.
type Navigator struct {
	m MapView
}

func NewNavigator(m MapView) *Navigator {
	return &Navigator{m: m}
}

// Navigate returns a step toward target that does not enter an occupied or
// already reserved cell, trying the x-axis step before the y-axis step.
// It falls back to core.Still when no such step exists. The chosen cell is
// reserved on the map.
func (n *Navigator) Navigate(ship *game.Ship, target core.Position) core.Direction {
	return n.m.NaiveNavigate(ship, target)
}

// RawStep returns the first direct step toward target, ignoring every
// occupant. Used only by the end-game rush. Returns core.Still at target.
func (n *Navigator) RawStep(ship *game.Ship, target core.Position) core.Direction {
	moves := n.m.UnsafeMoves(ship.Pos, target)
	if len(moves) == 0 {
		return core.Still
	}
	return moves[0]
}
