package game

import (
	"encoding/json"
	"fmt"
)

// Constants holds the engine-supplied game constants sent on the first line
// of the handshake. Only the values the bot reads are mapped; unknown keys are
// ignored.
type Constants struct {
	MaxHalite               int     `json:"MAX_ENERGY"`
	ShipCost                int     `json:"NEW_ENTITY_ENERGY_COST"`
	DropoffCost             int     `json:"DROPOFF_COST"`
	MaxTurns                int     `json:"MAX_TURNS"`
	ExtractRatio            int     `json:"EXTRACT_RATIO"`
	MoveCostRatio           int     `json:"MOVE_COST_RATIO"`
	InspirationEnabled      bool    `json:"INSPIRATION_ENABLED"`
	InspirationRadius       int     `json:"INSPIRATION_RADIUS"`
	InspirationShipCount    int     `json:"INSPIRATION_SHIP_COUNT"`
	InspiredExtractRatio    int     `json:"INSPIRED_EXTRACT_RATIO"`
	InspiredBonusMultiplier float64 `json:"INSPIRED_BONUS_MULTIPLIER"`
	InspiredMoveCostRatio   int     `json:"INSPIRED_MOVE_COST_RATIO"`
	GameSeed                int64   `json:"game_seed"`
}

// DefaultConstants returns the values used by the reference engine for a
// standard 2-player game on a 32x32 map.
func DefaultConstants() Constants {
	return Constants{
		MaxHalite:               1000,
		ShipCost:                1000,
		DropoffCost:             4000,
		MaxTurns:                500,
		ExtractRatio:            4,
		MoveCostRatio:           10,
		InspirationEnabled:      true,
		InspirationRadius:       4,
		InspirationShipCount:    2,
		InspiredExtractRatio:    4,
		InspiredBonusMultiplier: 2,
		InspiredMoveCostRatio:   10,
	}
}

// ParseConstants decodes the constants JSON line. Missing keys keep their
// default value.
func ParseConstants(raw []byte) (Constants, error) {
	c := DefaultConstants()
	if err := json.Unmarshal(raw, &c); err != nil {
		return Constants{}, fmt.Errorf("unmarshal constants: %w", err)
	}
	if c.MaxHalite <= 0 {
		return Constants{}, fmt.Errorf("MAX_ENERGY must be positive, got %d", c.MaxHalite)
	}
	return c, nil
}
