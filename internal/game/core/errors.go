package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrUnknownPlayer    = errors.New("unknown player")
)

// TurnError attaches the turn number and the operation being performed to an
// underlying error.
type TurnError struct {
	Turn int
	Op   string
	Err  error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Op, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }

// WrapTurnError wraps err with turn context. Returns nil for a nil err.
func WrapTurnError(turn int, op string, err error) error {
	if err == nil {
		return nil
	}
	return &TurnError{Turn: turn, Op: op, Err: err}
}
