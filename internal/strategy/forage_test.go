package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
	"github.com/mitchelldurbincs/HaliteForager/internal/testutil"
)

func TestForage_MovesToRichestNeighbor(t *testing.T) {
	g := testutil.NewGameBuilder(8, 8, pos(0, 0)).
		Turn(10).
		Halite(pos(0, 0), 2).
		Halite(pos(0, 7), 50).
		Halite(pos(0, 1), 10).
		Halite(pos(1, 0), 5).
		Halite(pos(7, 0), 5).
		Ship(0, pos(0, 0), 0).
		Build(t)

	tracker := NewTracker()
	plan := planFor(t, g, DefaultParams(), tracker)

	require.Len(t, plan.Actions, 1)
	a := plan.Actions[0]
	assert.Equal(t, core.North, a.Direction)
	assert.Equal(t, pos(0, 7), a.To)
	assert.Equal(t, reasonForage, a.Reason)
	assert.Equal(t, Exploring, tracker.Status(0))
	assert.False(t, plan.Spawn)
	assert.Equal(t, "m 0 n", a.Command().Encode())
}

func TestForage_StaysOnProductiveCell(t *testing.T) {
	tests := []struct {
		name       string
		cellHalite int
		expected   core.Direction
	}{
		{"AtThreshold", 100, core.Still},
		{"AboveThreshold", 500, core.Still},
		{"Full", 1000, core.Still},
		{"BelowThreshold", 99, core.North},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NewGameBuilder(8, 8, pos(0, 0)).
				Turn(20).
				Halite(pos(3, 3), tt.cellHalite).
				Halite(pos(3, 2), 900).
				Ship(1, pos(3, 3), 0).
				Build(t)

			tracker := NewTracker()
			a := actionFor(t, planFor(t, g, DefaultParams(), tracker), 1)
			assert.Equal(t, tt.expected, a.Direction)
			if tt.expected == core.Still {
				assert.Equal(t, Stay, tracker.Status(1))
				assert.Equal(t, pos(3, 3), a.To)
			}
		})
	}
}

func TestForage_LowerIDWinsContestedCell(t *testing.T) {
	g := testutil.NewGameBuilder(8, 8, pos(0, 0)).
		Turn(15).
		Halite(pos(3, 2), 500).
		Halite(pos(4, 1), 40).
		Ship(1, pos(2, 2), 0).
		Ship(2, pos(4, 2), 0).
		Build(t)

	plan := planFor(t, g, DefaultParams(), NewTracker())

	first := actionFor(t, plan, 1)
	second := actionFor(t, plan, 2)
	assert.Equal(t, core.East, first.Direction)
	assert.Equal(t, pos(3, 2), first.To)
	assert.Equal(t, core.North, second.Direction)
	assert.Equal(t, pos(4, 1), second.To)
}

func TestForage_PicksBestRemainingCandidate(t *testing.T) {
	g := testutil.NewGameBuilder(8, 8, pos(0, 0)).
		Turn(15).
		Halite(pos(3, 2), 300).
		Halite(pos(4, 3), 200).
		Halite(pos(3, 4), 100).
		Ship(1, pos(2, 2), 0).
		Ship(2, pos(3, 3), 0).
		Build(t)

	plan := planFor(t, g, DefaultParams(), NewTracker())

	assert.Equal(t, pos(3, 2), actionFor(t, plan, 1).To)
	assert.Equal(t, pos(4, 3), actionFor(t, plan, 2).To, "claimed north cell must be skipped")
}

func TestForage_TieGoesToFirstDirection(t *testing.T) {
	g := testutil.NewGameBuilder(8, 8, pos(0, 0)).
		Turn(15).
		Halite(pos(3, 4), 50).
		Halite(pos(4, 3), 50).
		Halite(pos(2, 3), 50).
		Ship(1, pos(3, 3), 0).
		Build(t)

	a := actionFor(t, planFor(t, g, DefaultParams(), NewTracker()), 1)
	assert.Equal(t, core.South, a.Direction)
}

func TestForage_EnemyOnPickHoldsStill(t *testing.T) {
	g := testutil.NewGameBuilder(8, 8, pos(0, 0)).
		Turn(15).
		Halite(pos(3, 2), 300).
		Ship(1, pos(3, 3), 0).
		Enemy(7, pos(3, 2)).
		Build(t)

	tracker := NewTracker()
	a := actionFor(t, planFor(t, g, DefaultParams(), tracker), 1)
	assert.Equal(t, core.Still, a.Direction)
	assert.Equal(t, Stay, tracker.Status(1))
}

func TestForage_SurroundedShipStays(t *testing.T) {
	g := testutil.NewGameBuilder(8, 8, pos(0, 0)).
		Turn(15).
		Ship(1, pos(4, 3), 0).
		Ship(2, pos(4, 5), 0).
		Ship(3, pos(5, 4), 0).
		Ship(4, pos(3, 4), 0).
		Ship(5, pos(4, 4), 0).
		Build(t)

	plan := planFor(t, g, DefaultParams(), NewTracker())

	center := actionFor(t, plan, 5)
	assert.Equal(t, core.Still, center.Direction)
	assert.Equal(t, pos(4, 4), center.To)
	assertUniqueDestinations(t, plan, nil)
}

func TestForage_NoEligibleCandidateStays(t *testing.T) {
	g := testutil.NewGameBuilder(8, 8, pos(0, 0)).
		Turn(15).
		Ship(1, pos(4, 4), 0).
		Ship(2, pos(6, 6), 0).
		Build(t)

	snap := NewSnapshot(g)
	tc := newTurnContext(snap, DefaultParams(), NewTracker(), testutil.NopLogger())
	ship := snap.Me.Ships[1]
	other := snap.Me.Ships[2]
	for _, p := range g.Map.Grid().Neighbors(ship.Pos) {
		tc.Claim(p, other)
	}

	var f Forager
	a := f.Decide(tc, ship)
	assert.Equal(t, core.Still, a.Direction)
	assert.Equal(t, ship.Pos, a.To)
	assert.Equal(t, Stay, tc.Tracker.Status(1))
}

func TestBest(t *testing.T) {
	tests := []struct {
		name     string
		cands    [5]candidate
		expected int
	}{
		{
			name:     "NoneEligible",
			expected: -1,
		},
		{
			name: "SkipsIneligibleRichest",
			cands: [5]candidate{
				{halite: 900},
				{eligible: true, halite: 20},
				{eligible: true, halite: 40},
				{eligible: true, halite: 40},
				{eligible: true, halite: 0},
			},
			expected: 2,
		},
		{
			name: "OnlyStill",
			cands: [5]candidate{
				{}, {}, {}, {},
				{eligible: true, halite: 3},
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, best(tt.cands))
		})
	}
}
