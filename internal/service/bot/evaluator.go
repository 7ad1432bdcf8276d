package bot

import (
	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

// Window scores, always from the bot's (PlayerB) point of view.
const (
	SCORE_BOT_FOUR    = 10000
	SCORE_HUMAN_FOUR  = -10000
	SCORE_HUMAN_THREE = -50
	SCORE_HUMAN_TWO   = -5
	SCORE_BOT_THREE   = 75
	SCORE_BOT_TWO     = 8
)

// EvaluateBoard sums scoreWindow over every window of the board.
// Positive favours the bot.
func EvaluateBoard(board *domain.Board) int {
	score := 0
	for _, l := range domain.Windows(board.Rows, board.Cols) {
		bot, human := 0, 0
		for _, pos := range l {
			switch board.Cells[pos.Row][pos.Col] {
			case domain.PlayerB:
				bot++
			case domain.PlayerA:
				human++
			}
		}
		score += scoreWindow(bot, human)
	}
	return score
}

// a window holding both colours can never become a line and scores nothing
func scoreWindow(bot, human int) int {
	switch {
	case bot == 4:
		return SCORE_BOT_FOUR
	case human == 4:
		return SCORE_HUMAN_FOUR
	case human == 3 && bot == 0:
		return SCORE_HUMAN_THREE
	case human == 2 && bot == 0:
		return SCORE_HUMAN_TWO
	case bot == 3 && human == 0:
		return SCORE_BOT_THREE
	case bot == 2 && human == 0:
		return SCORE_BOT_TWO
	}
	return 0
}
