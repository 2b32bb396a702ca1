package strategy

// shouldSpawn decides whether to produce a ship this turn. The shipyard must
// be free of ships standing on it, of ships routed onto it this turn, and of
// rush steps that ignore routing.
func shouldSpawn(tc *TurnContext, actions []Action) bool {
	if tc.Snap.Turn > tc.Params.SpawnMaxTurn {
		return false
	}
	if tc.balance < tc.Snap.Constants.ShipCost {
		return false
	}
	yard := tc.Snap.Me.Shipyard.Pos
	if tc.Snap.Map.IsOccupied(yard) {
		return false
	}
	for _, a := range actions {
		if a.To == yard {
			return false
		}
	}
	return true
}
