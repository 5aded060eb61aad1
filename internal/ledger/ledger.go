// Package ledger keeps the ranked high-score list across runs.
package ledger

import (
	"errors"
	"fmt"
	"slices"

	"github.com/memoy/tui-go/internal/model"
)

// DefaultCapacity is the number of entries kept
const DefaultCapacity = 10

// ErrPersistenceWrite is wrapped by Record when the ledger could not be saved
var ErrPersistenceWrite = errors.New("could not save high scores")

// Ledger is the in-memory ranked list. It is authoritative for the process
// lifetime even when saving fails.
type Ledger struct {
	store    Store
	capacity int
	entries  []model.HighScoreEntry
}

// Load reads the ledger from store. The returned Ledger is always usable: when
// the store cannot be read it starts empty and the read error is returned for
// the caller to report.
func Load(store Store, capacity int) (*Ledger, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l := &Ledger{store: store, capacity: capacity}

	entries, err := store.Load()
	if err != nil {
		return l, fmt.Errorf("read high scores: %w", err)
	}
	l.entries = rank(entries, capacity)
	return l, nil
}

// Record adds entry, re-ranks, truncates to capacity and persists the result.
// The ranked rows are returned even when saving fails.
func (l *Ledger) Record(entry model.HighScoreEntry) ([]model.HighScoreEntry, error) {
	entry.PlayerName = SanitizeName(entry.PlayerName)
	l.entries = rank(append(l.entries, entry), l.capacity)

	if err := l.store.Save(l.entries); err != nil {
		return l.Rows(), fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	return l.Rows(), nil
}

// Rows returns a copy of the entries in ranked order
func (l *Ledger) Rows() []model.HighScoreEntry {
	return slices.Clone(l.entries)
}

// Len returns the number of entries
func (l *Ledger) Len() int { return len(l.entries) }

// Capacity returns the maximum number of entries kept
func (l *Ledger) Capacity() int { return l.capacity }

// rank sorts descending by score, keeping insertion order among ties
func rank(entries []model.HighScoreEntry, capacity int) []model.HighScoreEntry {
	slices.SortStableFunc(entries, func(a, b model.HighScoreEntry) int {
		return b.Score - a.Score
	})
	if len(entries) > capacity {
		entries = entries[:capacity]
	}
	return entries
}
