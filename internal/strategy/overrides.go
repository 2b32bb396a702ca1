package strategy

import (
	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

const (
	reasonRush    = "rush"
	reasonConvert = "convert"
	reasonReturn  = "return"
	reasonForage  = "forage"
)

// Override is a behavior that takes precedence over foraging. Apply returns
// false when the override does not fire for ship; no cell is claimed in that case.
type Override interface {
	Name() string
	Apply(tc *TurnContext, ship *game.Ship) (Action, bool)
}

// DefaultChain returns the overrides in priority order.
func DefaultChain() []Override {
	return []Override{rushOverride{}, conversionOverride{}, returnOverride{}}
}

// rushOverride sends every ship home at the end of the game. Ships next to a
// home point step straight in without claiming, so several may share it.
type rushOverride struct{}

func (rushOverride) Name() string { return reasonRush }

func (rushOverride) Apply(tc *TurnContext, ship *game.Ship) (Action, bool) {
	if tc.Snap.Turn <= tc.Params.RushStart(tc.Snap.Constants.MaxTurns) {
		return Action{}, false
	}
	tc.Tracker.Set(ship.ID, Rushing)

	home, dist := tc.NearestHome(ship.Pos)
	switch {
	case dist == 0:
		return tc.stay(ship, reasonRush), true
	case dist < tc.Params.RushRawStepDistance:
		d := tc.Nav.RawStep(ship, home)
		to := tc.Snap.Map.Grid().Step(ship.Pos, d)
		return Action{ShipID: ship.ID, Kind: ActionMove, Direction: d, From: ship.Pos, To: to, Reason: reasonRush}, true
	default:
		return tc.move(ship, tc.Nav.Navigate(ship, home), reasonRush), true
	}
}

// conversionOverride turns one far-away ship sitting on a rich cell into a
// dropoff. It fires at most once per game.
type conversionOverride struct{}

func (conversionOverride) Name() string { return reasonConvert }

func (conversionOverride) Apply(tc *TurnContext, ship *game.Ship) (Action, bool) {
	p := tc.Params
	me := tc.Snap.Me
	if tc.Snap.Turn > p.ConvertMaxTurn || tc.Tracker.ConversionUsed() {
		return Action{}, false
	}
	if me.Halite <= p.ConvertMinBalance {
		return Action{}, false
	}
	if tc.Snap.Map.Distance(ship.Pos, me.Shipyard.Pos) <= p.ConvertMinDistance {
		return Action{}, false
	}
	cellHalite := tc.Snap.Map.HaliteAt(ship.Pos)
	if cellHalite <= p.ConvertMinCellHalite || tc.Snap.Map.HasStructure(ship.Pos) {
		return Action{}, false
	}

	tc.Tracker.MarkConversionUsed()
	// The engine credits the ship's cargo and the cell's halite against the cost.
	tc.balance -= max(0, tc.Snap.Constants.DropoffCost-ship.Halite-cellHalite)
	tc.Claim(ship.Pos, ship)
	tc.Logger.Info().
		Int("ship_id", ship.ID).
		Stringer("position", ship.Pos).
		Int("cell_halite", cellHalite).
		Msg("Converting ship into dropoff")
	return Action{ShipID: ship.ID, Kind: ActionConvert, Direction: core.Still, From: ship.Pos, To: ship.Pos, Reason: reasonConvert}, true
}

// returnOverride brings a loaded ship back to the shipyard or the nearest
// dropoff. The shipyard distance carries a handicap so dropoffs win once
// they exist.
type returnOverride struct{}

func (returnOverride) Name() string { return reasonReturn }

func (returnOverride) Apply(tc *TurnContext, ship *game.Ship) (Action, bool) {
	returning := false
	if tc.Params.StickyReturn && tc.Tracker.Status(ship.ID) == Returning {
		if tc.IsHome(ship.Pos) {
			tc.Tracker.Set(ship.ID, Exploring)
		} else {
			returning = true
		}
	}

	threshold := haliteThreshold(tc.Snap.Constants.MaxHalite, tc.Params.CargoFraction(tc.Snap.Turn))
	if !returning && ship.Halite < threshold {
		return Action{}, false
	}

	target := returnTarget(tc, ship.Pos)
	tc.Tracker.Set(ship.ID, Returning)
	return tc.move(ship, tc.Nav.Navigate(ship, target), reasonReturn), true
}

// returnTarget picks the nearest dropoff unless the shipyard, even with the
// handicap added, is strictly closer.
func returnTarget(tc *TurnContext, p core.Position) core.Position {
	me := tc.Snap.Me
	yard := me.Shipyard.Pos
	drops := me.SortedDropoffs()
	if len(drops) == 0 {
		return yard
	}

	best, bestDist := drops[0].Pos, tc.Snap.Map.Distance(p, drops[0].Pos)
	for _, d := range drops[1:] {
		if dist := tc.Snap.Map.Distance(p, d.Pos); dist < bestDist {
			best, bestDist = d.Pos, dist
		}
	}

	if bestDist <= tc.Snap.Map.Distance(p, yard)+tc.Params.ShipyardHandicap {
		return best
	}
	return yard
}
