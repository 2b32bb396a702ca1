package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
	"github.com/mitchelldurbincs/HaliteForager/internal/testutil"
)

func pos(x, y int) core.Position { return core.Position{X: x, Y: y} }

func planFor(t *testing.T, g *game.Game, params Params, tracker *Tracker) Plan {
	t.Helper()
	o := NewOrchestrator(params, tracker, testutil.NopLogger())
	return o.PlanTurn(NewSnapshot(g))
}

func actionFor(t *testing.T, plan Plan, shipID int) Action {
	t.Helper()
	for _, a := range plan.Actions {
		if a.ShipID == shipID {
			return a
		}
	}
	require.Failf(t, "missing action", "no action for ship %d", shipID)
	return Action{}
}
