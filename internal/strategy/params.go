package strategy

import (
	"math"
	"time"

	"github.com/mitchelldurbincs/HaliteForager/internal/config"
)

// Params are the tuned thresholds that drive the policy. They are empirical;
// DefaultParams reproduces the values the bot was tuned with on 500-turn games.
type Params struct {
	// Foraging leaves a cell once its halite drops below this fraction of MaxHalite.
	LowHaliteFraction float64

	// Cargo fraction of MaxHalite that triggers a return, before and from CargoPhaseTurn.
	EarlyCargoFraction float64
	LateCargoFraction  float64
	CargoPhaseTurn     int

	// Rush starts after RushTurn. Zero derives it from MaxTurns - RushTurnsBeforeEnd.
	RushTurn            int
	RushTurnsBeforeEnd  int
	RushRawStepDistance int

	ConvertMaxTurn       int
	ConvertMinBalance    int
	ConvertMinDistance   int
	ConvertMinCellHalite int

	// Added to the shipyard distance so returning ships prefer dropoffs.
	ShipyardHandicap int

	SpawnMaxTurn int

	// Returning ships keep returning until they reach a home point.
	StickyReturn bool

	TurnBudgetWarn time.Duration
}

func DefaultParams() Params {
	return Params{
		LowHaliteFraction:    0.1,
		EarlyCargoFraction:   1 / 2.5,
		LateCargoFraction:    1 / 1.5,
		CargoPhaseTurn:       100,
		RushTurn:             470,
		RushTurnsBeforeEnd:   30,
		RushRawStepDistance:  2,
		ConvertMaxTurn:       330,
		ConvertMinBalance:    6000,
		ConvertMinDistance:   15,
		ConvertMinCellHalite: 500,
		ShipyardHandicap:     15,
		SpawnMaxTurn:         250,
		StickyReturn:         false,
		TurnBudgetWarn:       1500 * time.Millisecond,
	}
}

// ParamsFromConfig maps the strategy section of the config file.
func ParamsFromConfig(c config.StrategyConfig) Params {
	return Params{
		LowHaliteFraction:    c.LowHaliteFraction,
		EarlyCargoFraction:   c.EarlyCargoFraction,
		LateCargoFraction:    c.LateCargoFraction,
		CargoPhaseTurn:       c.CargoPhaseTurn,
		RushTurn:             c.RushTurn,
		RushTurnsBeforeEnd:   c.RushTurnsBeforeEnd,
		RushRawStepDistance:  c.RushRawStepDistance,
		ConvertMaxTurn:       c.ConvertMaxTurn,
		ConvertMinBalance:    c.ConvertMinBalance,
		ConvertMinDistance:   c.ConvertMinDistance,
		ConvertMinCellHalite: c.ConvertMinCellHalite,
		ShipyardHandicap:     c.ShipyardHandicap,
		SpawnMaxTurn:         c.SpawnMaxTurn,
		StickyReturn:         c.StickyReturn,
		TurnBudgetWarn:       time.Duration(c.TurnBudgetWarnMs) * time.Millisecond,
	}
}

// RushStart returns the last turn before the end-game rush.
func (p Params) RushStart(maxTurns int) int {
	if p.RushTurn > 0 {
		return p.RushTurn
	}
	return maxTurns - p.RushTurnsBeforeEnd
}

// CargoFraction returns the return threshold in effect on turn.
func (p Params) CargoFraction(turn int) float64 {
	if turn < p.CargoPhaseTurn {
		return p.EarlyCargoFraction
	}
	return p.LateCargoFraction
}

// haliteThreshold converts a fraction of maxHalite into the smallest integer
// amount that meets it, so integer comparisons match the fractional ones.
func haliteThreshold(maxHalite int, fraction float64) int {
	return int(math.Ceil(float64(maxHalite)*fraction - 1e-9))
}
