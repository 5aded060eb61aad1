// Package game implements the turn state machine and scoring for one session.
package game

import (
	"fmt"

	"github.com/memoy/tui-go/internal/model"
)

// Resolver drives the turns of a single session over a board it mutates in place.
// It is not safe for concurrent use.
type Resolver struct {
	board *model.Board
	state State

	moves        int
	matchedPairs int
	score        int
	timedOut     bool

	first int    // index of the face-up first pick, -1 when none
	turn  uint64 // sequence of the outstanding PendingTurn
}

// PendingTurn is a turn with two cards revealed. Resolve is the only way to finish it.
type PendingTurn struct {
	r      *Resolver
	first  int
	second int
	turn   uint64
}

// NewResolver starts a session on b
func NewResolver(b *model.Board) *Resolver {
	r := &Resolver{
		board: b,
		state: StateAwaitingFirstPick,
		first: -1,
		score: Score(0, 0),
	}
	if b.TotalPairs() == 0 {
		r.state = StateSessionComplete
	}
	return r
}

// State returns the current phase
func (r *Resolver) State() State { return r.state }

// Board returns the board being played
func (r *Resolver) Board() *model.Board { return r.board }

// Moves returns the number of completed pairs of selections
func (r *Resolver) Moves() int { return r.moves }

// MatchedPairs returns the number of pairs found
func (r *Resolver) MatchedPairs() int { return r.matchedPairs }

// TotalPairs returns the number of pairs on the board
func (r *Resolver) TotalPairs() int { return r.board.TotalPairs() }

// Score returns the score as of the last recomputation
func (r *Resolver) Score() int { return r.score }

// TimedOut reports whether the session was ended by Expire
func (r *Resolver) TimedOut() bool { return r.timedOut }

// FirstPick returns the index of the face-up first pick, if any
func (r *Resolver) FirstPick() (int, bool) {
	return r.first, r.first >= 0
}

// SelectFirst reveals the first card of a turn. An invalid target leaves the
// state untouched so the caller can prompt again.
func (r *Resolver) SelectFirst(row, col int) error {
	switch r.state {
	case StateAwaitingFirstPick:
	case StateSessionComplete:
		return ErrSessionComplete
	default:
		return fmt.Errorf("%w: first pick while %s", ErrWrongPhase, r.state)
	}

	idx, err := r.selectable(row, col)
	if err != nil {
		return err
	}
	if r.board.Cards[idx].FaceUp {
		return fmt.Errorf("%w: (%d, %d) is already revealed", ErrInvalidSelection, row, col)
	}

	r.board.Cards[idx].FaceUp = true
	r.first = idx
	r.state = StateAwaitingSecondPick
	return nil
}

// SelectSecond reveals the partner card and counts the move. An invalid target
// abandons the turn: the first card is turned back and the resolver waits for a
// new first pick.
func (r *Resolver) SelectSecond(row, col int) (*PendingTurn, error) {
	switch r.state {
	case StateAwaitingSecondPick:
	case StateSessionComplete:
		return nil, ErrSessionComplete
	default:
		return nil, fmt.Errorf("%w: second pick while %s", ErrWrongPhase, r.state)
	}

	idx, err := r.selectable(row, col)
	if err == nil && idx == r.first {
		err = fmt.Errorf("%w: (%d, %d) is the first pick", ErrInvalidSelection, row, col)
	}
	if err != nil {
		r.abandon()
		return nil, err
	}

	r.board.Cards[idx].FaceUp = true
	r.moves++
	r.turn++
	r.state = StateResolving
	return &PendingTurn{r: r, first: r.first, second: idx, turn: r.turn}, nil
}

// Abort abandons a half-finished turn. It reports whether anything was undone.
func (r *Resolver) Abort() bool {
	if r.state != StateAwaitingSecondPick {
		return false
	}
	r.abandon()
	return true
}

// Expire ends the session because time ran out. Cards of an unresolved turn are
// turned back face-down.
func (r *Resolver) Expire() {
	if r.state == StateSessionComplete {
		return
	}
	if r.state == StateResolving || r.state == StateAwaitingSecondPick {
		for i := range r.board.Cards {
			if !r.board.Cards[i].Matched {
				r.board.Cards[i].FaceUp = false
			}
		}
	}
	r.first = -1
	r.turn++
	r.timedOut = true
	r.state = StateSessionComplete
}

// Resolve compares the two revealed cards and finishes the turn
func (p *PendingTurn) Resolve() (TurnResult, error) {
	r := p.r
	if r.state != StateResolving || p.turn != r.turn {
		return TurnResult{}, fmt.Errorf("%w: turn already resolved", ErrWrongPhase)
	}

	a, b := &r.board.Cards[p.first], &r.board.Cards[p.second]
	res := TurnResult{
		First:        p.first,
		Second:       p.second,
		FirstSymbol:  a.Symbol,
		SecondSymbol: b.Symbol,
	}

	if a.Symbol == b.Symbol {
		a.Matched, b.Matched = true, true
		r.matchedPairs++
		r.score = Score(r.moves, r.matchedPairs)
		res.Outcome = OutcomeMatch
	} else {
		a.FaceUp, b.FaceUp = false, false
		res.Outcome = OutcomeNoMatch
	}

	r.first = -1
	if r.matchedPairs < r.TotalPairs() {
		r.state = StateAwaitingFirstPick
	} else {
		r.state = StateSessionComplete
		res.SessionEnded = true
	}
	res.MatchedPairs = r.matchedPairs
	res.Score = r.score
	return res, nil
}

// Cards returns the indices of the two revealed cards
func (p *PendingTurn) Cards() (int, int) {
	return p.first, p.second
}

func (r *Resolver) selectable(row, col int) (int, error) {
	if !r.board.InRange(row, col) {
		return -1, fmt.Errorf("%w: (%d, %d) is off the %dx%d board",
			ErrInvalidSelection, row, col, r.board.GridSize, r.board.GridSize)
	}
	idx := r.board.Index(row, col)
	if r.board.Cards[idx].Matched {
		return -1, fmt.Errorf("%w: (%d, %d) is already matched", ErrInvalidSelection, row, col)
	}
	return idx, nil
}

func (r *Resolver) abandon() {
	if r.first >= 0 {
		r.board.Cards[r.first].FaceUp = false
	}
	r.first = -1
	r.state = StateAwaitingFirstPick
}
