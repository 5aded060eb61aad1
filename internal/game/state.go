package game

// State is a phase of the turn state machine
type State int

const (
	StateAwaitingFirstPick  State = iota // waiting for the first card of a turn
	StateAwaitingSecondPick              // one card face-up, waiting for its partner
	StateResolving                       // two cards face-up, waiting for Resolve
	StateSessionComplete                 // all pairs found or time expired
)

func (s State) String() string {
	switch s {
	case StateAwaitingFirstPick:
		return "awaiting_first_pick"
	case StateAwaitingSecondPick:
		return "awaiting_second_pick"
	case StateResolving:
		return "resolving"
	case StateSessionComplete:
		return "session_complete"
	default:
		return "unknown"
	}
}

// Outcome is the result of comparing two revealed cards
type Outcome string

const (
	OutcomeMatch   Outcome = "match"
	OutcomeNoMatch Outcome = "no_match"
)

// TurnResult describes a resolved turn for the caller to present
type TurnResult struct {
	First        int // card index of the first pick
	Second       int // card index of the second pick
	FirstSymbol  string
	SecondSymbol string
	Outcome      Outcome
	MatchedPairs int
	Score        int
	SessionEnded bool
}
