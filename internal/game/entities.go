package game

import (
	"sort"

	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// Ship is a unit carrying halite. Owner is the player id.
type Ship struct {
	ID     int
	Owner  int
	Pos    core.Position
	Halite int
}

// Shipyard is the principal base of a player.
type Shipyard struct {
	Owner int
	Pos   core.Position
}

// Dropoff is a secondary deposit point created by converting a ship.
type Dropoff struct {
	ID    int
	Owner int
	Pos   core.Position
}

// Player is one participant and everything it owns this turn.
type Player struct {
	ID       int
	Halite   int
	Shipyard Shipyard
	Ships    map[int]*Ship
	Dropoffs map[int]*Dropoff
}

func NewPlayer(id int, shipyard core.Position) *Player {
	return &Player{
		ID:       id,
		Shipyard: Shipyard{Owner: id, Pos: shipyard},
		Ships:    make(map[int]*Ship),
		Dropoffs: make(map[int]*Dropoff),
	}
}

// SortedShips returns the player's ships ordered by id.
func (p *Player) SortedShips() []*Ship {
	ships := make([]*Ship, 0, len(p.Ships))
	for _, s := range p.Ships {
		ships = append(ships, s)
	}
	sort.Slice(ships, func(i, j int) bool { return ships[i].ID < ships[j].ID })
	return ships
}

// SortedDropoffs returns the player's dropoffs ordered by id.
func (p *Player) SortedDropoffs() []*Dropoff {
	drops := make([]*Dropoff, 0, len(p.Dropoffs))
	for _, d := range p.Dropoffs {
		drops = append(drops, d)
	}
	sort.Slice(drops, func(i, j int) bool { return drops[i].ID < drops[j].ID })
	return drops
}

// HomePositions returns the shipyard followed by every dropoff.
func (p *Player) HomePositions() []core.Position {
	homes := make([]core.Position, 0, 1+len(p.Dropoffs))
	homes = append(homes, p.Shipyard.Pos)
	for _, d := range p.SortedDropoffs() {
		homes = append(homes, d.Pos)
	}
	return homes
}
