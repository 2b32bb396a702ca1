package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

const (
	// MyID is the player id of the bot in built games
	MyID = 0
	// EnemyID is the opponent's player id in built games
	EnemyID = 1
)

// GameBuilder assembles a game state for strategy tests without going
// through the engine protocol.
type GameBuilder struct {
	width, height int
	shipyard      core.Position
	constants     game.Constants
	turn          int
	balance       int
	halite        map[core.Position]int
	ships         []game.Ship
	dropoffs      []game.Dropoff
	enemies       []game.Ship
}

// NewGameBuilder creates a builder for a width x height map with our
// shipyard at shipyard and default engine constants.
func NewGameBuilder(width, height int, shipyard core.Position) *GameBuilder {
	return &GameBuilder{
		width:     width,
		height:    height,
		shipyard:  shipyard,
		constants: game.DefaultConstants(),
		halite:    make(map[core.Position]int),
	}
}

func (b *GameBuilder) Turn(turn int) *GameBuilder {
	b.turn = turn
	return b
}

func (b *GameBuilder) Balance(halite int) *GameBuilder {
	b.balance = halite
	return b
}

func (b *GameBuilder) Constants(c game.Constants) *GameBuilder {
	b.constants = c
	return b
}

func (b *GameBuilder) Halite(p core.Position, halite int) *GameBuilder {
	b.halite[p] = halite
	return b
}

func (b *GameBuilder) Ship(id int, p core.Position, cargo int) *GameBuilder {
	b.ships = append(b.ships, game.Ship{ID: id, Pos: p, Halite: cargo})
	return b
}

func (b *GameBuilder) Dropoff(id int, p core.Position) *GameBuilder {
	b.dropoffs = append(b.dropoffs, game.Dropoff{ID: id, Pos: p})
	return b
}

// Enemy places an opponent ship.
func (b *GameBuilder) Enemy(id int, p core.Position) *GameBuilder {
	b.enemies = append(b.enemies, game.Ship{ID: id, Pos: p})
	return b
}

// Build creates the game and applies the configured frame.
func (b *GameBuilder) Build(t *testing.T) *game.Game {
	t.Helper()

	m := game.NewMap(b.width, b.height)
	for p, h := range b.halite {
		require.NoError(t, m.SetHalite(p, h))
	}

	enemyYard := core.Position{X: b.shipyard.X + b.width/2, Y: b.shipyard.Y + b.height/2}
	players := []*game.Player{
		game.NewPlayer(MyID, b.shipyard),
		game.NewPlayer(EnemyID, m.Normalize(enemyYard)),
	}
	g, err := game.NewGame(b.constants, MyID, players, m)
	require.NoError(t, err)

	err = g.ApplyFrame(b.turn, []game.PlayerUpdate{
		{ID: MyID, Halite: b.balance, Ships: b.ships, Dropoffs: b.dropoffs},
		{ID: EnemyID, Ships: b.enemies},
	}, nil)
	require.NoError(t, err)
	return g
}
