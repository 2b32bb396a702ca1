package strategy

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// TurnContext is the state shared by every policy while one turn is planned.
// It is discarded when the turn ends.
type TurnContext struct {
	Snap    Snapshot
	Params  Params
	Tracker *Tracker
	Nav     *Navigator
	Logger  zerolog.Logger

	// balance is the player's halite after this turn's conversions.
	balance   int
	claimed   map[core.Position]struct{}
	occupancy map[core.Position]int
}

func newTurnContext(snap Snapshot, params Params, tracker *Tracker, logger zerolog.Logger) *TurnContext {
	ships := snap.Me.Ships
	tc := &TurnContext{
		Snap:      snap,
		Params:    params,
		Tracker:   tracker,
		Nav:       NewNavigator(snap.Map),
		Logger:    logger,
		balance:   snap.Me.Halite,
		claimed:   make(map[core.Position]struct{}, len(ships)),
		occupancy: make(map[core.Position]int, len(ships)),
	}
	for _, s := range ships {
		tc.occupancy[s.Pos]++
	}
	return tc
}

// Claim reserves p as a destination for the rest of the turn.
func (tc *TurnContext) Claim(p core.Position, ship *game.Ship) {
	tc.claimed[p] = struct{}{}
	tc.Snap.Map.MarkUnsafe(p, ship)
}

func (tc *TurnContext) IsClaimed(p core.Position) bool {
	_, ok := tc.claimed[p]
	return ok
}

// OccupiedByOther reports whether a friendly ship other than ship stood on p
// at the start of the turn.
func (tc *TurnContext) OccupiedByOther(p core.Position, ship *game.Ship) bool {
	n := tc.occupancy[p]
	if p == ship.Pos {
		n--
	}
	return n > 0
}

// NearestHome returns the closest of the shipyard and all dropoffs.
// Ties go to the shipyard, then to the lower dropoff id.
func (tc *TurnContext) NearestHome(p core.Position) (core.Position, int) {
	homes := tc.Snap.Me.HomePositions()
	best, bestDist := homes[0], tc.Snap.Map.Distance(p, homes[0])
	for _, h := range homes[1:] {
		if d := tc.Snap.Map.Distance(p, h); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best, bestDist
}

// IsHome reports whether p is the shipyard or a dropoff.
func (tc *TurnContext) IsHome(p core.Position) bool {
	_, d := tc.NearestHome(p)
	return d == 0
}

// move builds a move action and claims its destination.
func (tc *TurnContext) move(ship *game.Ship, d core.Direction, reason string) Action {
	to := tc.Snap.Map.Grid().Step(ship.Pos, d)
	tc.Claim(to, ship)
	return Action{ShipID: ship.ID, Kind: ActionMove, Direction: d, From: ship.Pos, To: to, Reason: reason}
}

// stay holds the ship on its cell and claims it.
func (tc *TurnContext) stay(ship *game.Ship, reason string) Action {
	return tc.move(ship, core.Still, reason)
}
