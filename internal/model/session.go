package model

import "time"

// DefaultPlayerName is used when the player leaves the name prompt empty
const DefaultPlayerName = "Player"

// SessionState holds the counters for one playthrough
type SessionState struct {
	Moves        int       // completed pairs of selections
	MatchedPairs int       // pairs found so far
	Score        int       // derived from Moves and MatchedPairs
	StartTime    time.Time // fixed when the session starts
	Timed        bool
	TimeLimit    time.Duration // only meaningful when Timed
	PlayerName   string
}

// HighScoreEntry is one finished session as stored in the ledger
type HighScoreEntry struct {
	PlayerName     string
	Moves          int
	ElapsedSeconds int
	Score          int
}
