// Package bot drives one Halite game: it reads frames from the engine, asks
// the planner for a turn plan and writes the commands back.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
	"github.com/mitchelldurbincs/HaliteForager/internal/protocol"
	"github.com/mitchelldurbincs/HaliteForager/internal/strategy"
	"github.com/mitchelldurbincs/HaliteForager/internal/trace"
)

const reasonRecovered = "recovered"

// Planner produces the per-turn plan. *strategy.Orchestrator implements it.
type Planner interface {
	PlanTurn(snap strategy.Snapshot) strategy.Plan
	SetParams(p strategy.Params)
	Tracker() *strategy.Tracker
}

// Bot owns the game state for a session and the loop that advances it.
type Bot struct {
	conn    *protocol.Conn
	game    *game.Game
	planner Planner
	logger  zerolog.Logger

	session  string
	recorder *trace.Recorder

	mu      sync.Mutex
	pending *strategy.Params
}

// New creates a bot for a game whose handshake has already been read.
func New(conn *protocol.Conn, g *game.Game, planner Planner, logger zerolog.Logger) *Bot {
	g.SetLogger(logger)
	return &Bot{
		conn:    conn,
		game:    g,
		planner: planner,
		logger:  logger.With().Str("component", "Bot").Int("player_id", g.MyID).Logger(),
	}
}

// WithTrace records every planned turn to rec under session.
func (b *Bot) WithTrace(session string, rec *trace.Recorder) *Bot {
	b.session = session
	b.recorder = rec
	return b
}

// Game returns the state the bot keeps in sync with the engine.
func (b *Bot) Game() *game.Game { return b.game }

// Ready sends the bot name, after which the engine starts sending frames.
func (b *Bot) Ready(name string) error {
	if err := b.conn.SendName(name); err != nil {
		return fmt.Errorf("send name: %w", err)
	}
	b.logger.Info().Str("name", name).Msg("Bot ready")
	return nil
}

// UpdateParams queues new thresholds to take effect at the start of the next
// turn. Safe to call from another goroutine.
func (b *Bot) UpdateParams(p strategy.Params) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = &p
}

// Run plays turns until the engine closes the stream or ctx is done.
// A clean end of stream returns nil. Cancellation is checked between turns;
// a blocked read is only interrupted by closing the input.
func (b *Bot) Run(ctx context.Context) error {
	turns := 0
	for {
		if err := b.checkContext(ctx, "before frame"); err != nil {
			return err
		}
		if err := b.Step(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				b.logger.Info().
					Int("turns", turns).
					Int("last_turn", b.game.Turn).
					Int("halite", b.game.Me().Halite).
					Msg("Engine closed the stream")
				return nil
			}
			return err
		}
		turns++
	}
}

// Step plays a single turn.
func (b *Bot) Step(ctx context.Context) error {
	if err := b.conn.ReadFrame(b.game); err != nil {
		return err
	}
	if err := b.checkContext(ctx, "after frame"); err != nil {
		return err
	}

	b.applyPendingParams()

	snap := strategy.NewSnapshot(b.game)
	plan := b.plan(snap)

	if err := b.conn.SendCommands(plan.Commands()); err != nil {
		return core.WrapTurnError(plan.Turn, "send commands", err)
	}

	b.record(snap, plan)
	return nil
}

func (b *Bot) applyPendingParams() {
	b.mu.Lock()
	p := b.pending
	b.pending = nil
	b.mu.Unlock()

	if p != nil {
		b.planner.SetParams(*p)
		b.logger.Info().Int("turn", b.game.Turn).Msg("Strategy parameters reloaded")
	}
}

// plan runs the planner and falls back to holding every ship still if it
// panics, so the engine still receives a command line for the turn.
func (b *Bot) plan(snap strategy.Snapshot) (plan strategy.Plan) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Int("turn", snap.Turn).
				Interface("panic", r).
				Msg("Recovered from panic while planning turn")
			plan = holdPlan(snap)
		}
	}()
	return b.planner.PlanTurn(snap)
}

func holdPlan(snap strategy.Snapshot) strategy.Plan {
	plan := strategy.Plan{Turn: snap.Turn}
	for _, s := range snap.Me.SortedShips() {
		plan.Actions = append(plan.Actions, strategy.Action{
			ShipID:    s.ID,
			Kind:      strategy.ActionMove,
			Direction: core.Still,
			From:      s.Pos,
			To:        s.Pos,
			Reason:    reasonRecovered,
		})
	}
	return plan
}

// record writes the turn to the trace. A failing trace is disabled rather
// than ending the game.
func (b *Bot) record(snap strategy.Snapshot, plan strategy.Plan) {
	if b.recorder == nil {
		return
	}
	rec := trace.NewTurnRecord(b.session, snap, plan, b.planner.Tracker())
	if err := b.recorder.Write(rec); err != nil {
		b.logger.Warn().Err(err).Str("path", b.recorder.Path()).Msg("Disabling decision trace")
		b.recorder = nil
	}
}

// checkContext checks if the context is cancelled
func (b *Bot) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		b.logger.Warn().
			Err(ctx.Err()).
			Int("turn", b.game.Turn).
			Str("phase", phase).
			Msg("Game loop cancelled")
		return ctx.Err()
	default:
		return nil
	}
}
