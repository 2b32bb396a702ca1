package strategy

import (
	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// MapView is the part of the map the policy reads and the navigation
// primitives it relies on. *game.Map implements it.
type MapView interface {
	Grid() core.Grid
	HaliteAt(p core.Position) int
	Distance(a, b core.Position) int
	IsOccupied(p core.Position) bool
	HasStructure(p core.Position) bool
	MarkUnsafe(p core.Position, ship *game.Ship)
	NaiveNavigate(ship *game.Ship, dest core.Position) core.Direction
	UnsafeMoves(from, to core.Position) []core.Direction
}

// Snapshot is everything the orchestrator needs for one turn.
type Snapshot struct {
	Turn      int
	Constants game.Constants
	Me        *game.Player
	Map       MapView
}

// NewSnapshot takes the current turn's view from g. The snapshot shares g's
// map, so navigation marks made while planning land on g.Map.
func NewSnapshot(g *game.Game) Snapshot {
	return Snapshot{
		Turn:      g.Turn,
		Constants: g.Constants,
		Me:        g.Me(),
		Map:       g.Map,
	}
}
