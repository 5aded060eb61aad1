package game

import "errors"

var (
	// ErrInvalidSelection is returned for out-of-range, matched or already revealed cells
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrSessionComplete is returned when a selection arrives after the session ended
	ErrSessionComplete = errors.New("session complete")
	// ErrWrongPhase is returned when an operation does not fit the current state
	ErrWrongPhase = errors.New("operation not allowed in current state")
)
