// Package session runs one playthrough: board setup, turns, timing and the
// final ledger entry.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/memoy/tui-go/internal/board"
	"github.com/memoy/tui-go/internal/game"
	"github.com/memoy/tui-go/internal/gamelog"
	"github.com/memoy/tui-go/internal/ledger"
	"github.com/memoy/tui-go/internal/model"
)

// ErrNotStarted is returned when input arrives before Start
var ErrNotStarted = errors.New("session not started")

// Settings are the per-session options
type Settings struct {
	GridSize  int
	Timed     bool
	TimeLimit time.Duration // used only when Timed
}

// Result is the outcome of a finished session
type Result struct {
	Entry    model.HighScoreEntry
	Rows     []model.HighScoreEntry // ledger after recording Entry
	TimedOut bool
	SaveErr  error // non-nil when the ledger could not be persisted
}

// Option customizes a Controller
type Option func(*Controller)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRand sets the shuffle source for the board
func WithRand(rng board.Shuffler) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the event logger
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithAlphabet replaces the symbol and color alphabets
func WithAlphabet(symbols []string, colors []model.ColorTag) Option {
	return func(c *Controller) {
		c.symbols = symbols
		c.colors = colors
	}
}

// WithBoard plays a prepared board instead of generating one
func WithBoard(b model.Board) Option {
	return func(c *Controller) { c.preset = &b }
}

// Controller owns a single session end to end. It is driven synchronously by
// one caller and is not safe for concurrent use.
type Controller struct {
	settings Settings
	ledger   *ledger.Ledger

	now     func() time.Time
	rng     board.Shuffler
	log     zerolog.Logger
	symbols []string
	colors  []model.ColorTag
	preset  *model.Board

	board    model.Board
	state    model.SessionState
	resolver *game.Resolver
	pending  *game.PendingTurn
	message  model.Message
	endedAt  time.Time
	result   *Result
}

// New creates a controller that records into l
func New(settings Settings, l *ledger.Ledger, opts ...Option) *Controller {
	c := &Controller{
		settings: settings,
		ledger:   l,
		now:      time.Now,
		log:      zerolog.Nop(),
		symbols:  board.DefaultSymbols,
		colors:   board.DefaultColors,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = board.NewRand(uint64(c.now().UnixNano()))
	}
	return c
}

// Start prepares the board and counters. An empty name becomes "Player".
func (c *Controller) Start(playerName string) error {
	if c.preset != nil {
		c.board = clone(*c.preset)
	} else {
		b, err := board.Generate(c.settings.GridSize, c.symbols, c.colors, c.rng)
		if err != nil {
			return err
		}
		c.board = b
	}

	c.state = model.SessionState{
		StartTime:  c.now(),
		Timed:      c.settings.Timed,
		TimeLimit:  c.settings.TimeLimit,
		PlayerName: ledger.SanitizeName(playerName),
	}
	c.resolver = game.NewResolver(&c.board)
	c.state.Score = c.resolver.Score()
	c.pending = nil
	c.message = model.MessageNone
	c.endedAt = time.Time{}
	c.result = nil

	c.log.Info().
		Str("event", gamelog.EventSessionStart).
		Str("player", c.state.PlayerName).
		Int("grid_size", c.board.GridSize).
		Bool("timed", c.state.Timed).
		Dur("time_limit", c.state.TimeLimit).
		Send()
	return nil
}

// HandleInput parses "row col" and applies it as the next pick. Malformed
// input returns an *InputError and changes nothing.
func (c *Controller) HandleInput(line string) error {
	if c.resolver == nil {
		return ErrNotStarted
	}
	row, col, err := ParsePick(line)
	if err != nil {
		c.log.Debug().Str("event", gamelog.EventInputError).Str("input", line).Send()
		return err
	}
	return c.Pick(row, col)
}

// Pick applies (row, col) as the first or second pick of the current turn.
// Timed sessions check the clock before every first pick.
func (c *Controller) Pick(row, col int) error {
	if c.resolver == nil {
		return ErrNotStarted
	}

	switch c.resolver.State() {
	case game.StateAwaitingFirstPick:
		if c.expireIfDue() {
			return game.ErrSessionComplete
		}
		if err := c.resolver.SelectFirst(row, col); err != nil {
			c.logRejected(row, col, "first", err)
			return err
		}
		c.message = model.MessageNone
		c.logPick(row, col, "first")
		return nil

	case game.StateAwaitingSecondPick:
		p, err := c.resolver.SelectSecond(row, col)
		if err != nil {
			c.logRejected(row, col, "second", err)
			return err
		}
		c.pending = p
		c.logPick(row, col, "second")
		return nil

	case game.StateResolving:
		return fmt.Errorf("%w: resolve the revealed pair first", game.ErrWrongPhase)

	default:
		return game.ErrSessionComplete
	}
}

// Resolve finishes a turn whose two cards are revealed. When it was the last
// pair the session is finalized and recorded in the ledger.
func (c *Controller) Resolve() (game.TurnResult, error) {
	if c.pending == nil {
		return game.TurnResult{}, fmt.Errorf("%w: no revealed pair", game.ErrWrongPhase)
	}
	res, err := c.pending.Resolve()
	c.pending = nil
	if err != nil {
		return res, err
	}

	c.state.Moves = c.resolver.Moves()
	c.state.MatchedPairs = c.resolver.MatchedPairs()
	c.state.Score = c.resolver.Score()
	if res.Outcome == game.OutcomeMatch {
		c.message = model.MessageMatch
	} else {
		c.message = model.MessageNoMatch
	}

	c.log.Info().
		Str("event", gamelog.EventTurnResolved).
		Str("outcome", string(res.Outcome)).
		Str("first", res.FirstSymbol).
		Str("second", res.SecondSymbol).
		Int("moves", c.state.Moves).
		Int("matched_pairs", c.state.MatchedPairs).
		Send()

	if res.SessionEnded {
		c.finish()
	}
	return res, nil
}

// Abort abandons a half-finished turn (the input boundary's abort signal)
func (c *Controller) Abort() bool {
	if c.resolver == nil {
		return false
	}
	return c.resolver.Abort()
}

// Tick lets the presentation layer run the timed-session check while the player
// is choosing a first card. It reports whether the session just expired.
func (c *Controller) Tick() bool {
	if c.resolver == nil || c.resolver.State() != game.StateAwaitingFirstPick {
		return false
	}
	return c.expireIfDue()
}

// Phase returns the resolver state
func (c *Controller) Phase() game.State {
	if c.resolver == nil {
		return game.StateAwaitingFirstPick
	}
	return c.resolver.State()
}

// Done reports whether the session has ended
func (c *Controller) Done() bool {
	return c.resolver != nil && c.resolver.State() == game.StateSessionComplete
}

// Result returns the finished session's outcome
func (c *Controller) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// Elapsed returns the session time so far, frozen once it ends
func (c *Controller) Elapsed() time.Duration {
	if c.resolver == nil {
		return 0
	}
	end := c.now()
	if !c.endedAt.IsZero() {
		end = c.endedAt
	}
	return end.Sub(c.state.StartTime)
}

// Snapshot returns the renderable view of the session
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		PlayerName:   c.state.PlayerName,
		GridSize:     c.board.GridSize,
		Cells:        make([]Cell, len(c.board.Cards)),
		Moves:        c.state.Moves,
		MatchedPairs: c.state.MatchedPairs,
		TotalPairs:   c.board.TotalPairs(),
		Score:        c.state.Score,
		Phase:        c.Phase(),
		FirstPick:    -1,
		Timed:        c.state.Timed,
		Elapsed:      c.Elapsed(),
		Message:      c.message,
	}
	if c.resolver != nil {
		// Moves counts from the second pick on, before Resolve runs
		s.Moves = c.resolver.Moves()
		if idx, ok := c.resolver.FirstPick(); ok {
			s.FirstPick = idx
		}
		s.TimedOut = c.resolver.TimedOut()
	}
	if s.Timed {
		s.Remaining = max(0, c.state.TimeLimit-s.Elapsed)
	}
	if c.result != nil && c.result.SaveErr != nil {
		s.Warning = c.result.SaveErr.Error()
	}

	for i, card := range c.board.Cards {
		row, col := c.board.Position(i)
		cell := Cell{Row: row, Col: col, State: card.State(), Color: card.Color}
		if cell.State != model.CellHidden {
			cell.Symbol = card.Symbol
		}
		s.Cells[i] = cell
	}
	return s
}

func (c *Controller) expireIfDue() bool {
	if !c.state.Timed || c.resolver.State() == game.StateSessionComplete {
		return false
	}
	if c.now().Sub(c.state.StartTime) < c.state.TimeLimit {
		return false
	}
	c.resolver.Expire()
	c.pending = nil
	c.log.Info().
		Str("event", gamelog.EventTimeout).
		Int("matched_pairs", c.resolver.MatchedPairs()).
		Int("total_pairs", c.resolver.TotalPairs()).
		Send()
	c.finish()
	return true
}

// finish computes the final score and records the session exactly once
func (c *Controller) finish() {
	if c.result != nil {
		return
	}
	c.endedAt = c.now()
	c.state.Moves = c.resolver.Moves()
	c.state.MatchedPairs = c.resolver.MatchedPairs()
	c.state.Score = game.Score(c.state.Moves, c.state.MatchedPairs)

	entry := model.HighScoreEntry{
		PlayerName:     c.state.PlayerName,
		Moves:          c.state.Moves,
		ElapsedSeconds: int(c.endedAt.Sub(c.state.StartTime) / time.Second),
		Score:          c.state.Score,
	}
	res := &Result{Entry: entry, TimedOut: c.resolver.TimedOut()}
	if res.TimedOut {
		c.message = model.MessageTimesUp
	} else {
		c.message = model.MessageFinished
	}

	c.log.Info().
		Str("event", gamelog.EventSessionEnd).
		Bool("timed_out", res.TimedOut).
		Int("moves", entry.Moves).
		Int("elapsed_seconds", entry.ElapsedSeconds).
		Int("score", entry.Score).
		Send()

	rows, err := c.ledger.Record(entry)
	res.Rows = rows
	if err != nil {
		res.SaveErr = err
		c.log.Warn().Err(err).Str("event", gamelog.EventLedgerSaveFailed).Send()
	} else {
		c.log.Info().Str("event", gamelog.EventLedgerSaved).Int("entries", len(rows)).Send()
	}
	c.result = res
}

func (c *Controller) logPick(row, col int, which string) {
	c.log.Debug().
		Str("event", gamelog.EventPick).
		Str("pick", which).
		Int("row", row).
		Int("col", col).
		Send()
}

func (c *Controller) logRejected(row, col int, which string, err error) {
	c.log.Debug().
		Err(err).
		Str("event", gamelog.EventPickRejected).
		Str("pick", which).
		Int("row", row).
		Int("col", col).
		Send()
}

func clone(b model.Board) model.Board {
	cards := make([]model.Card, len(b.Cards))
	copy(cards, b.Cards)
	return model.Board{GridSize: b.GridSize, Cards: cards}
}
