package model

// Board is a square grid of cards stored in row-major order
type Board struct {
	GridSize int
	Cards    []Card
}

// TotalPairs returns the number of pairs on the board
func (b *Board) TotalPairs() int {
	return len(b.Cards) / 2
}

// InRange reports whether (row, col) addresses a cell on the board
func (b *Board) InRange(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.GridSize && col < b.GridSize
}

// Index converts a (row, col) pair to a card index. The caller checks InRange first.
func (b *Board) Index(row, col int) int {
	return row*b.GridSize + col
}

// Position converts a card index back to (row, col)
func (b *Board) Position(idx int) (int, int) {
	return idx / b.GridSize, idx % b.GridSize
}

// Symbols returns the symbols in board order
func (b *Board) Symbols() []string {
	out := make([]string, len(b.Cards))
	for i, c := range b.Cards {
		out[i] = c.Symbol
	}
	return out
}
