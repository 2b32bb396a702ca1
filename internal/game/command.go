package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// Command is a single instruction sent to the engine at the end of a turn.
type Command interface {
	Encode() string
}

// MoveCommand moves a ship one step, or holds it with core.Still.
type MoveCommand struct {
	ShipID    int
	Direction core.Direction
}

func (c MoveCommand) Encode() string {
	return fmt.Sprintf("m %d %c", c.ShipID, c.Direction.Char())
}

// ConstructDropoffCommand converts a ship into a dropoff on its cell.
type ConstructDropoffCommand struct {
	ShipID int
}

func (c ConstructDropoffCommand) Encode() string {
	return fmt.Sprintf("c %d", c.ShipID)
}

// SpawnCommand produces a new ship at the player's shipyard.
type SpawnCommand struct{}

func (SpawnCommand) Encode() string { return "g" }

// EncodeCommands joins commands into the single line the engine expects.
func EncodeCommands(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.Encode()
	}
	return strings.Join(parts, " ")
}
