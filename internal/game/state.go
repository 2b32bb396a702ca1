package game

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// Game is the bot's view of the match. It is created from the handshake and
// refreshed in place by ApplyFrame every turn.
type Game struct {
	Constants Constants
	MyID      int
	Turn      int
	Players   map[int]*Player
	Map       *Map

	logger zerolog.Logger
}

// PlayerUpdate is one player's section of a turn frame.
type PlayerUpdate struct {
	ID       int
	Halite   int
	Ships    []Ship
	Dropoffs []Dropoff
}

// CellUpdate is a changed halite value on the map.
type CellUpdate struct {
	Pos    core.Position
	Halite int
}

func NewGame(constants Constants, myID int, players []*Player, m *Map) (*Game, error) {
	g := &Game{
		Constants: constants,
		MyID:      myID,
		Players:   make(map[int]*Player, len(players)),
		Map:       m,
		logger:    zerolog.Nop(),
	}
	for _, p := range players {
		g.Players[p.ID] = p
		m.PlaceStructure(p.Shipyard.Pos)
	}
	if _, ok := g.Players[myID]; !ok {
		return nil, fmt.Errorf("player %d: %w", myID, core.ErrUnknownPlayer)
	}
	return g, nil
}

// SetLogger attaches a component logger used while applying frames.
func (g *Game) SetLogger(logger zerolog.Logger) {
	g.logger = logger.With().Str("component", "Game").Logger()
}

// Me returns the player this bot controls.
func (g *Game) Me() *Player { return g.Players[g.MyID] }

// PlayerIDs returns all player ids in ascending order.
func (g *Game) PlayerIDs() []int {
	ids := make([]int, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ApplyFrame replaces every player's ships and dropoffs, applies halite
// changes, and rebuilds map occupancy from the new ship positions.
func (g *Game) ApplyFrame(turn int, players []PlayerUpdate, cells []CellUpdate) error {
	g.Turn = turn

	for _, pu := range players {
		p, ok := g.Players[pu.ID]
		if !ok {
			g.logger.Warn().Int("turn", turn).Int("player_id", pu.ID).Msg("Frame names unknown player")
			return core.WrapTurnError(turn, "apply frame", fmt.Errorf("player %d: %w", pu.ID, core.ErrUnknownPlayer))
		}
		p.Halite = pu.Halite

		p.Ships = make(map[int]*Ship, len(pu.Ships))
		for i := range pu.Ships {
			s := pu.Ships[i]
			s.Owner = pu.ID
			s.Pos = g.Map.Normalize(s.Pos)
			p.Ships[s.ID] = &s
		}

		p.Dropoffs = make(map[int]*Dropoff, len(pu.Dropoffs))
		for i := range pu.Dropoffs {
			d := pu.Dropoffs[i]
			d.Owner = pu.ID
			d.Pos = g.Map.Normalize(d.Pos)
			p.Dropoffs[d.ID] = &d
			g.Map.PlaceStructure(d.Pos)
		}
	}

	for _, cu := range cells {
		if err := g.Map.SetHalite(cu.Pos, cu.Halite); err != nil {
			g.logger.Warn().Int("turn", turn).Err(err).Msg("Rejected cell update")
			return core.WrapTurnError(turn, "apply frame", err)
		}
	}

	g.Map.ClearShips()
	for _, id := range g.PlayerIDs() {
		for _, s := range g.Players[id].Ships {
			g.Map.At(s.Pos).MarkUnsafe(s)
		}
	}

	g.logger.Debug().
		Int("turn", turn).
		Int("players", len(players)).
		Int("cell_updates", len(cells)).
		Int("my_ships", len(g.Me().Ships)).
		Int("my_halite", g.Me().Halite).
		Msg("Game state updated")
	return nil
}
