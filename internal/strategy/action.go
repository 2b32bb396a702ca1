package strategy

import (
	"time"

	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// ActionKind distinguishes moves (including holding still) from conversions.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionConvert
)

func (k ActionKind) String() string {
	if k == ActionConvert {
		return "convert"
	}
	return "move"
}

// Action is the decision for one ship this turn.
type Action struct {
	ShipID    int
	Kind      ActionKind
	Direction core.Direction
	From      core.Position
	To        core.Position
	// Reason names the override that fired, or "forage".
	Reason string
}

// Command converts the action into its engine command.
func (a Action) Command() game.Command {
	if a.Kind == ActionConvert {
		return game.ConstructDropoffCommand{ShipID: a.ShipID}
	}
	return game.MoveCommand{ShipID: a.ShipID, Direction: a.Direction}
}

// Plan is the full set of decisions for a turn.
type Plan struct {
	Turn     int
	Actions  []Action
	Spawn    bool
	Elapsed  time.Duration
	// Statuses counts this turn's ships by the status they ended the turn with.
	Statuses map[Status]int
}

// Commands returns the ship commands in decision order followed by the
// spawn command, if any.
func (p Plan) Commands() []game.Command {
	cmds := make([]game.Command, 0, len(p.Actions)+1)
	for _, a := range p.Actions {
		cmds = append(cmds, a.Command())
	}
	if p.Spawn {
		cmds = append(cmds, game.SpawnCommand{})
	}
	return cmds
}

// Conversions counts convert actions in the plan.
func (p Plan) Conversions() int {
	n := 0
	for _, a := range p.Actions {
		if a.Kind == ActionConvert {
			n++
		}
	}
	return n
}
