package session

import (
	"time"

	"github.com/memoy/tui-go/internal/game"
	"github.com/memoy/tui-go/internal/model"
)

// Cell is the display state of one board position
type Cell struct {
	Row    int
	Col    int
	State  model.CellState
	Symbol string // empty while hidden
	Color  model.ColorTag
}

// Snapshot is everything the presentation layer needs to draw the session
type Snapshot struct {
	PlayerName   string
	GridSize     int
	Cells        []Cell
	Moves        int
	MatchedPairs int
	TotalPairs   int
	Score        int
	Phase        game.State
	FirstPick    int // index of the face-up first pick, -1 when none
	Timed        bool
	Elapsed      time.Duration
	Remaining    time.Duration // only meaningful when Timed
	TimedOut     bool
	Message      model.Message
	Warning      string
}

// Cell returns the cell at (row, col)
func (s Snapshot) Cell(row, col int) Cell {
	return s.Cells[row*s.GridSize+col]
}

// Done reports whether the session has ended
func (s Snapshot) Done() bool {
	return s.Phase == game.StateSessionComplete
}
