package game

import (
	"errors"
	"testing"

	"github.com/memoy/tui-go/internal/model"
)

// newBoard lays out symbols row-major on a square board
func newBoard(symbols ...string) *model.Board {
	size := 0
	for size*size < len(symbols) {
		size++
	}
	cards := make([]model.Card, len(symbols))
	for i, s := range symbols {
		cards[i] = model.Card{Symbol: s}
	}
	return &model.Board{GridSize: size, Cards: cards}
}

func mustFirst(t *testing.T, r *Resolver, row, col int) {
	t.Helper()
	if err := r.SelectFirst(row, col); err != nil {
		t.Fatalf("SelectFirst(%d, %d): %v", row, col, err)
	}
}

func mustTurn(t *testing.T, r *Resolver, r1, c1, r2, c2 int) TurnResult {
	t.Helper()
	mustFirst(t, r, r1, c1)
	p, err := r.SelectSecond(r2, c2)
	if err != nil {
		t.Fatalf("SelectSecond(%d, %d): %v", r2, c2, err)
	}
	res, err := p.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return res
}

// TestResolverScenario walks the [B A / A B] example board to completion
func TestResolverScenario(t *testing.T) {
	b := newBoard("B", "A", "A", "B")
	r := NewResolver(b)

	res := mustTurn(t, r, 0, 0, 0, 1)
	if res.Outcome != OutcomeNoMatch {
		t.Fatalf("B vs A outcome = %s, want no match", res.Outcome)
	}
	if b.Cards[0].FaceUp || b.Cards[1].FaceUp {
		t.Error("mismatched cards should be turned back face-down")
	}
	if r.Moves() != 1 || r.MatchedPairs() != 0 {
		t.Errorf("moves=%d matched=%d, want 1 and 0", r.Moves(), r.MatchedPairs())
	}
	if r.State() != StateAwaitingFirstPick {
		t.Errorf("state = %s, want awaiting_first_pick", r.State())
	}

	res = mustTurn(t, r, 0, 1, 1, 0)
	if res.Outcome != OutcomeMatch {
		t.Fatalf("A vs A outcome = %s, want match", res.Outcome)
	}
	if !b.Cards[1].Matched || !b.Cards[2].Matched || !b.Cards[1].FaceUp || !b.Cards[2].FaceUp {
		t.Error("matched cards should be matched and face-up")
	}
	if r.MatchedPairs() != 1 || r.Score() != Score(2, 1) {
		t.Errorf("matched=%d score=%d, want 1 and %d", r.MatchedPairs(), r.Score(), Score(2, 1))
	}

	res = mustTurn(t, r, 1, 1, 0, 0)
	if res.Outcome != OutcomeMatch || !res.SessionEnded {
		t.Fatalf("final turn = %+v, want match ending the session", res)
	}
	if r.State() != StateSessionComplete {
		t.Errorf("state = %s, want session_complete", r.State())
	}
	if r.MatchedPairs() != 2 || r.Moves() != 3 {
		t.Errorf("matched=%d moves=%d, want 2 and 3", r.MatchedPairs(), r.Moves())
	}
	if r.TimedOut() {
		t.Error("completed session should not be timed out")
	}

	if err := r.SelectFirst(0, 0); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("SelectFirst after completion = %v, want ErrSessionComplete", err)
	}
	if _, err := r.SelectSecond(0, 0); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("SelectSecond after completion = %v, want ErrSessionComplete", err)
	}
}

func TestSelectFirstInvalid(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row past edge", 2, 0},
		{"col past edge", 0, 2},
		{"matched card", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard("B", "A", "A", "B")
			r := NewResolver(b)
			mustTurn(t, r, 0, 1, 1, 0)

			err := r.SelectFirst(tt.row, tt.col)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("SelectFirst(%d, %d) = %v, want ErrInvalidSelection", tt.row, tt.col, err)
			}
			if r.State() != StateAwaitingFirstPick {
				t.Errorf("state = %s, want unchanged awaiting_first_pick", r.State())
			}
			if r.Moves() != 1 {
				t.Errorf("moves = %d, want 1", r.Moves())
			}
			// The caller retries the same step
			mustFirst(t, r, 0, 0)
		})
	}
}

func TestSelectSecondInvalidAbandonsTurn(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
	}{
		{"same cell", 0, 0},
		{"off board", 5, 5},
		{"matched card", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard("B", "A", "A", "B")
			r := NewResolver(b)
			mustTurn(t, r, 0, 1, 1, 0)

			mustFirst(t, r, 0, 0)
			_, err := r.SelectSecond(tt.row, tt.col)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("SelectSecond(%d, %d) = %v, want ErrInvalidSelection", tt.row, tt.col, err)
			}
			if b.Cards[0].FaceUp {
				t.Error("first card should be turned back face-down")
			}
			if r.State() != StateAwaitingFirstPick {
				t.Errorf("state = %s, want awaiting_first_pick", r.State())
			}
			if _, ok := r.FirstPick(); ok {
				t.Error("first pick should be cleared")
			}
			if r.Moves() != 1 {
				t.Errorf("moves = %d, abandoned turn must not count", r.Moves())
			}
		})
	}
}

func TestMovesCountEveryResolvedTurn(t *testing.T) {
	b := newBoard("A", "B", "C", "D", "A", "B", "C", "D", "E", "F", "G", "H", "E", "F", "G", "H")
	r := NewResolver(b)

	picks := [][4]int{
		{0, 0, 0, 1}, // miss
		{0, 0, 1, 0}, // A
		{0, 1, 0, 2}, // miss
		{0, 1, 1, 1}, // B
	}
	prevMatched := 0
	for i, p := range picks {
		mustTurn(t, r, p[0], p[1], p[2], p[3])
		if r.Moves() != i+1 {
			t.Errorf("after turn %d moves = %d", i+1, r.Moves())
		}
		if r.MatchedPairs() < prevMatched {
			t.Errorf("matched pairs decreased from %d to %d", prevMatched, r.MatchedPairs())
		}
		prevMatched = r.MatchedPairs()
	}
	if r.MatchedPairs() != 2 {
		t.Errorf("matched = %d, want 2", r.MatchedPairs())
	}
}

func TestPendingTurnResolvesOnce(t *testing.T) {
	r := NewResolver(newBoard("A", "B", "B", "A"))
	mustFirst(t, r, 0, 0)
	p, err := r.SelectSecond(1, 1)
	if err != nil {
		t.Fatalf("SelectSecond: %v", err)
	}
	if first, second := p.Cards(); first != 0 || second != 3 {
		t.Errorf("Cards() = %d, %d, want 0, 3", first, second)
	}
	if r.State() != StateResolving {
		t.Fatalf("state = %s, want resolving", r.State())
	}
	if err := r.SelectFirst(0, 1); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("SelectFirst while resolving = %v, want ErrWrongPhase", err)
	}
	if _, err := p.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := p.Resolve(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("second Resolve = %v, want ErrWrongPhase", err)
	}
	if r.MatchedPairs() != 1 {
		t.Errorf("matched = %d, want 1", r.MatchedPairs())
	}
}

func TestSelectSecondWithoutFirst(t *testing.T) {
	r := NewResolver(newBoard("A", "B", "B", "A"))
	if _, err := r.SelectSecond(0, 0); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("SelectSecond first = %v, want ErrWrongPhase", err)
	}
}

func TestAbort(t *testing.T) {
	b := newBoard("A", "B", "B", "A")
	r := NewResolver(b)
	if r.Abort() {
		t.Error("Abort with no pick should report nothing undone")
	}
	mustFirst(t, r, 1, 0)
	if !r.Abort() {
		t.Error("Abort after first pick should undo it")
	}
	if b.Cards[2].FaceUp || r.State() != StateAwaitingFirstPick {
		t.Errorf("after Abort faceUp=%v state=%s", b.Cards[2].FaceUp, r.State())
	}
}

func TestExpire(t *testing.T) {
	b := newBoard("A", "B", "B", "A")
	r := NewResolver(b)
	mustFirst(t, r, 0, 0)
	p, err := r.SelectSecond(0, 1)
	if err != nil {
		t.Fatalf("SelectSecond: %v", err)
	}

	r.Expire()
	if r.State() != StateSessionComplete || !r.TimedOut() {
		t.Fatalf("state=%s timedOut=%v, want complete and timed out", r.State(), r.TimedOut())
	}
	for i, c := range b.Cards {
		if c.FaceUp {
			t.Errorf("card %d still face-up after expiry", i)
		}
	}
	if _, err := p.Resolve(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Resolve after expiry = %v, want ErrWrongPhase", err)
	}
	if err := r.SelectFirst(0, 0); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("SelectFirst after expiry = %v, want ErrSessionComplete", err)
	}
	if r.Moves() != 1 {
		t.Errorf("moves = %d, want 1", r.Moves())
	}
}

func TestExpireKeepsMatches(t *testing.T) {
	b := newBoard("A", "B", "B", "A")
	r := NewResolver(b)
	mustTurn(t, r, 0, 0, 1, 1)
	r.Expire()
	if !b.Cards[0].FaceUp || !b.Cards[0].Matched {
		t.Error("matched cards should stay face-up after expiry")
	}
	if r.MatchedPairs() != 1 {
		t.Errorf("matched = %d, want 1", r.MatchedPairs())
	}
}
