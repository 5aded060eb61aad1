package game

const (
	baseScore   = 1000
	movePenalty = 10
	matchBonus  = 150
)

// Score derives a session score from its counters. It never goes below zero.
func Score(moves, matchedPairs int) int {
	return max(0, baseScore-moves*movePenalty+matchedPairs*matchBonus)
}
