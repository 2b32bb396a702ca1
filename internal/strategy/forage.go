package strategy

import (
	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// candidate is one of a ship's five possible destinations.
type candidate struct {
	dir      core.Direction
	pos      core.Position
	eligible bool
	halite   int
}

// Forager is the default policy: stay on a productive cell, otherwise move
// to the richest free neighbor.
type Forager struct{}

// candidates builds the destination table for ship in CandidateDirections
// order. A candidate is eligible when no earlier ship has claimed it and no
// other friendly ship stood on it at the start of the turn.
func (Forager) candidates(tc *TurnContext, ship *game.Ship) [5]candidate {
	var out [5]candidate
	positions := tc.Snap.Map.Grid().Neighbors(ship.Pos)
	for i, d := range core.CandidateDirections {
		p := positions[i]
		out[i] = candidate{
			dir:      d,
			pos:      p,
			eligible: !tc.IsClaimed(p) && !tc.OccupiedByOther(p, ship),
			halite:   tc.Snap.Map.HaliteAt(p),
		}
	}
	return out
}

// best returns the index of the eligible candidate with the most halite,
// the first one on ties, or -1 when none is eligible.
func best(cands [5]candidate) int {
	idx := -1
	for i, c := range cands {
		if !c.eligible {
			continue
		}
		if idx < 0 || c.halite > cands[idx].halite {
			idx = i
		}
	}
	return idx
}

// Decide picks and claims the ship's destination.
func (f Forager) Decide(tc *TurnContext, ship *game.Ship) Action {
	cands := f.candidates(tc, ship)
	pick := best(cands)

	low := haliteThreshold(tc.Snap.Constants.MaxHalite, tc.Params.LowHaliteFraction)
	if pick < 0 || tc.Snap.Map.HaliteAt(ship.Pos) >= low {
		tc.Tracker.Set(ship.ID, Stay)
		return tc.stay(ship, reasonForage)
	}

	d := tc.Nav.Navigate(ship, cands[pick].pos)
	if d == core.Still {
		tc.Tracker.Set(ship.ID, Stay)
	} else {
		tc.Tracker.Set(ship.ID, Exploring)
	}
	return tc.move(ship, d, reasonForage)
}
