package config

// Difficulty selects the board size
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// AvailableDifficulties returns all difficulties offered in the menu
func AvailableDifficulties() []DifficultyInfo {
	return []DifficultyInfo{
		{
			ID:       DifficultyEasy,
			Name:     "Easy",
			GridSize: 2,
		},
		{
			ID:       DifficultyHard,
			Name:     "Hard",
			GridSize: 4,
		},
	}
}

// DifficultyInfo describes a difficulty option
type DifficultyInfo struct {
	ID       Difficulty
	Name     string
	GridSize int
}

// GridSizeFor returns the grid size for d, falling back to hard
func GridSizeFor(d Difficulty) int {
	for _, info := range AvailableDifficulties() {
		if info.ID == d {
			return info.GridSize
		}
	}
	return 4
}
