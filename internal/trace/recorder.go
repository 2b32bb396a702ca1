// Package trace records every planned turn as compressed JSON lines so games
// can be inspected after the engine has shut the bot down.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/mitchelldurbincs/HaliteForager/internal/strategy"
)

// ActionRecord is one ship decision.
type ActionRecord struct {
	ShipID    int    `json:"ship_id"`
	Kind      string `json:"kind"`
	Direction string `json:"direction"`
	FromX     int    `json:"from_x"`
	FromY     int    `json:"from_y"`
	ToX       int    `json:"to_x"`
	ToY       int    `json:"to_y"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

// TurnRecord is one line of the trace.
type TurnRecord struct {
	Session   string         `json:"session"`
	Turn      int            `json:"turn"`
	Halite    int            `json:"halite"`
	Ships     int            `json:"ships"`
	Dropoffs  int            `json:"dropoffs"`
	Spawn     bool           `json:"spawn"`
	ElapsedUS int64          `json:"elapsed_us"`
	Statuses  map[string]int `json:"statuses,omitempty"`
	Actions   []ActionRecord `json:"actions"`
}

// NewTurnRecord flattens a plan together with the snapshot it was made from.
func NewTurnRecord(session string, snap strategy.Snapshot, plan strategy.Plan, tracker *strategy.Tracker) TurnRecord {
	rec := TurnRecord{
		Session:   session,
		Turn:      plan.Turn,
		Halite:    snap.Me.Halite,
		Ships:     len(snap.Me.Ships),
		Dropoffs:  len(snap.Me.Dropoffs),
		Spawn:     plan.Spawn,
		ElapsedUS: plan.Elapsed.Microseconds(),
		Actions:   make([]ActionRecord, 0, len(plan.Actions)),
	}
	if len(plan.Statuses) > 0 {
		rec.Statuses = make(map[string]int, len(plan.Statuses))
		for s, n := range plan.Statuses {
			rec.Statuses[s.String()] = n
		}
	}
	for _, a := range plan.Actions {
		rec.Actions = append(rec.Actions, ActionRecord{
			ShipID:    a.ShipID,
			Kind:      a.Kind.String(),
			Direction: a.Direction.String(),
			FromX:     a.From.X,
			FromY:     a.From.Y,
			ToX:       a.To.X,
			ToY:       a.To.Y,
			Reason:    a.Reason,
			Status:    tracker.Status(a.ShipID).String(),
		})
	}
	return rec
}

// Recorder writes TurnRecords to <dir>/forager-<session>.jsonl.zst.
// The file is created on the first write.
type Recorder struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewRecorder(dir, session string) *Recorder {
	return &Recorder{path: filepath.Join(dir, fmt.Sprintf("forager-%s.jsonl.zst", session))}
}

// Path returns the trace file location.
func (r *Recorder) Path() string { return r.path }

// Write appends rec and flushes the compressed block to the file.
func (r *Recorder) Write(rec TurnRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.w == nil {
		if err := r.openLocked(); err != nil {
			return err
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := r.w.Flush(); err != nil {
		return err
	}
	return r.enc.Flush()
}

func (r *Recorder) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	r.f = f
	r.enc = enc
	r.w = bufio.NewWriterSize(enc, 64*1024)
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.w != nil {
		_ = r.w.Flush()
		r.w = nil
	}
	if r.enc != nil {
		err = r.enc.Close()
		r.enc = nil
	}
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
		r.f = nil
	}
	return err
}
