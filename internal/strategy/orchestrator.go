package strategy

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HaliteForager/internal/game"
)

// Orchestrator plans a full turn: one decision per ship, then production.
type Orchestrator struct {
	params  Params
	tracker *Tracker
	chain   []Override
	forager Forager
	logger  zerolog.Logger
}

// NewOrchestrator creates an orchestrator using the default override chain.
func NewOrchestrator(params Params, tracker *Tracker, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		params:  params,
		tracker: tracker,
		chain:   DefaultChain(),
		logger:  logger.With().Str("component", "Orchestrator").Logger(),
	}
}

// Tracker returns the status tracker the orchestrator writes to.
func (o *Orchestrator) Tracker() *Tracker { return o.tracker }

// SetParams replaces the thresholds used from the next PlanTurn on.
// It must not be called concurrently with PlanTurn.
func (o *Orchestrator) SetParams(p Params) { o.params = p }

// PlanTurn decides every ship's action for snap. Ships are processed in
// ascending id order; each sees the cells claimed by the ships before it.
func (o *Orchestrator) PlanTurn(snap Snapshot) Plan {
	start := time.Now()
	turnLogger := o.logger.With().Int("turn", snap.Turn).Logger()
	tc := newTurnContext(snap, o.params, o.tracker, turnLogger)

	ships := snap.Me.SortedShips()
	for _, s := range ships {
		o.tracker.Ensure(s.ID)
	}

	actions := make([]Action, 0, len(ships))
	for _, ship := range ships {
		turnLogger.Debug().
			Int("ship_id", ship.ID).
			Int("halite", ship.Halite).
			Str("status", o.tracker.Status(ship.ID).String()).
			Int("dropoffs", len(snap.Me.Dropoffs)).
			Msg("Planning ship")

		a := o.decide(tc, ship)
		actions = append(actions, a)

		turnLogger.Debug().
			Int("ship_id", ship.ID).
			Str("reason", a.Reason).
			Str("action", a.Kind.String()).
			Str("direction", a.Direction.String()).
			Stringer("to", a.To).
			Msg("Ship decided")
	}

	ids := make([]int, len(ships))
	for i, s := range ships {
		ids[i] = s.ID
	}

	plan := Plan{
		Turn:     snap.Turn,
		Actions:  actions,
		Spawn:    shouldSpawn(tc, actions),
		Elapsed:  time.Since(start),
		Statuses: o.tracker.Counts(ids),
	}

	turnLogger.Info().
		Int("ships", len(ships)).
		Int("halite", snap.Me.Halite).
		Bool("spawn", plan.Spawn).
		Int("conversions", plan.Conversions()).
		Int("exploring", plan.Statuses[Exploring]).
		Int("returning", plan.Statuses[Returning]).
		Int("staying", plan.Statuses[Stay]).
		Int("rushing", plan.Statuses[Rushing]).
		Dur("elapsed", plan.Elapsed).
		Msg("Turn planned")

	if o.params.TurnBudgetWarn > 0 && plan.Elapsed > o.params.TurnBudgetWarn {
		turnLogger.Warn().
			Dur("elapsed", plan.Elapsed).
			Dur("budget", o.params.TurnBudgetWarn).
			Msg("Turn planning exceeded budget")
	}

	return plan
}

// decide runs the override chain for ship and falls back to foraging.
func (o *Orchestrator) decide(tc *TurnContext, ship *game.Ship) Action {
	for _, ov := range o.chain {
		if a, ok := ov.Apply(tc, ship); ok {
			return a
		}
	}
	return o.forager.Decide(tc, ship)
}
