package model

// ColorTag is a cosmetic color hint for a card. The engine never inspects it.
type ColorTag string

// CellState represents how a card should be displayed
type CellState string

const (
	CellHidden   CellState = "hidden"
	CellRevealed CellState = "revealed"
	CellMatched  CellState = "matched"
)

// Card represents a single tile on the board
type Card struct {
	Symbol  string
	FaceUp  bool
	Matched bool
	Color   ColorTag
}

// State returns the display state of the card
func (c Card) State() CellState {
	switch {
	case c.Matched:
		return CellMatched
	case c.FaceUp:
		return CellRevealed
	default:
		return CellHidden
	}
}

// Face returns the text shown for the card: the symbol when visible, "###" otherwise
func (c Card) Face() string {
	if c.State() == CellHidden {
		return "###"
	}
	return c.Symbol
}
