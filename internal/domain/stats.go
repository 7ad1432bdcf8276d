package domain

// Stats is the single shared aggregate of finished games. Losses are not stored,
// they are TotalGames - GamesWon - GamesDrawn.
type Stats struct {
	TotalGames int64 `json:"totalGames"`
	GamesWon   int64 `json:"gamesWon"`
	GamesDrawn int64 `json:"gamesDrawn"`
}

// Increment names one of the counter updates the stats store supports.
type Increment string

const (
	IncrementTotal Increment = "total"
	IncrementWon   Increment = "win"
	IncrementDrawn Increment = "draw"
)

// Apply returns s with the increment applied.
func (s Stats) Apply(inc Increment) Stats {
	s.TotalGames++
	switch inc {
	case IncrementWon:
		s.GamesWon++
	case IncrementDrawn:
		s.GamesDrawn++
	}
	return s
}

func (inc Increment) Valid() bool {
	return inc == IncrementTotal || inc == IncrementWon || inc == IncrementDrawn
}
