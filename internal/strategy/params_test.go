package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/HaliteForager/internal/config"
)

func TestHaliteThreshold(t *testing.T) {
	tests := []struct {
		name     string
		max      int
		fraction float64
		expected int
	}{
		{"Tenth", 1000, 0.1, 100},
		{"Early", 1000, 1 / 2.5, 400},
		{"Late", 1000, 1 / 1.5, 667},
		{"Whole", 1000, 1, 1000},
		{"OddMax", 999, 0.5, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, haliteThreshold(tt.max, tt.fraction))
		})
	}
}

func TestParams_RushStart(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 470, p.RushStart(400))

	p.RushTurn = 0
	assert.Equal(t, 370, p.RushStart(400))
	assert.Equal(t, 470, p.RushStart(500))
}

func TestParams_CargoFraction(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, p.EarlyCargoFraction, p.CargoFraction(0))
	assert.Equal(t, p.EarlyCargoFraction, p.CargoFraction(99))
	assert.Equal(t, p.LateCargoFraction, p.CargoFraction(100))
}

func TestParamsFromConfig(t *testing.T) {
	a := assert.New(t)
	p := ParamsFromConfig(config.StrategyConfig{
		LowHaliteFraction:    0.1,
		EarlyCargoFraction:   0.4,
		LateCargoFraction:    0.7,
		CargoPhaseTurn:       120,
		RushTurn:             0,
		RushTurnsBeforeEnd:   25,
		RushRawStepDistance:  2,
		ConvertMaxTurn:       300,
		ConvertMinBalance:    5000,
		ConvertMinDistance:   12,
		ConvertMinCellHalite: 400,
		ShipyardHandicap:     10,
		SpawnMaxTurn:         200,
		StickyReturn:         true,
		TurnBudgetWarnMs:     1200,
	})

	a.Equal(0.7, p.LateCargoFraction)
	a.Equal(120, p.CargoPhaseTurn)
	a.Equal(375, p.RushStart(400))
	a.Equal(12, p.ConvertMinDistance)
	a.Equal(10, p.ShipyardHandicap)
	a.Equal(1200*time.Millisecond, p.TurnBudgetWarn)
}
