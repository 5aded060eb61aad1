// Package board builds shuffled grids of paired symbols.
package board

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/memoy/tui-go/internal/model"
)

var (
	// ErrInsufficientSymbols is returned when the alphabet is too small for the grid
	ErrInsufficientSymbols = errors.New("insufficient symbols")
	// ErrInvalidGridSize is returned for non-positive or odd-area grids
	ErrInvalidGridSize = errors.New("invalid grid size")
)

// DefaultSymbols is the symbol alphabet, in selection order
var DefaultSymbols = []string{
	"S", "C", "H", "D", "P", "T", "R", "Q",
	"*", "&", "@", "#", "$", "%", "!", "?", "1", "2", "3", "4",
	"A", "B", "E", "F", "G", "J", "K", "L",
}

// DefaultColors cycles cyan, magenta, yellow, green, blue, red
var DefaultColors = []model.ColorTag{
	"#56B6C2", "#C678DD", "#E5C07B", "#98C379", "#61AFEF", "#E06C75",
}

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic random source for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate builds a gridSize x gridSize board. The first gridSize²/2 symbols are
// each placed twice, shuffled by rng, and colored by cycling colors in board order.
func Generate(gridSize int, symbols []string, colors []model.ColorTag, rng Shuffler) (model.Board, error) {
	cells := gridSize * gridSize
	if gridSize <= 0 || cells%2 != 0 {
		return model.Board{}, fmt.Errorf("%w: %d", ErrInvalidGridSize, gridSize)
	}
	pairs := cells / 2
	if pairs > len(symbols) {
		return model.Board{}, fmt.Errorf("%w: %dx%d needs %d symbols, have %d",
			ErrInsufficientSymbols, gridSize, gridSize, pairs, len(symbols))
	}

	deck := make([]string, 0, cells)
	deck = append(deck, symbols[:pairs]...)
	deck = append(deck, symbols[:pairs]...)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	cards := make([]model.Card, cells)
	for i, sym := range deck {
		cards[i] = model.Card{Symbol: sym}
		if len(colors) > 0 {
			cards[i].Color = colors[i%len(colors)]
		}
	}
	return model.Board{GridSize: gridSize, Cards: cards}, nil
}
