package bot

import (
	"math"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

// SEARCH_DEPTH counts plies from the root, the bot's own move included: one bot
// move plus two more plies. Searching 3 plies below the root instead (4 in total)
// changes the chosen column in roughly a third of positions, so raising it
// changes how the bot plays.
const SEARCH_DEPTH = 3

// SelectMove picks the bot's column using minimax with alpha-beta pruning.
// Ties go to the lowest column. Returns -1 when the board is full; callers
// are expected not to search a finished game.
func SelectMove(board *domain.Board) int {
	validColumns := board.AvailableColumns()
	if len(validColumns) == 0 {
		return -1
	}

	bestCol := validColumns[0]
	bestScore := math.MinInt
	alpha := math.MinInt
	beta := math.MaxInt

	for _, col := range validColumns {
		testBoard, _, err := board.SimulateMove(col, domain.PlayerB)
		if err != nil {
			continue
		}

		score := minimax(testBoard, SEARCH_DEPTH-1, alpha, beta, false)
		if score > bestScore {
			bestScore = score
			bestCol = col
		}

		alpha = max(alpha, bestScore)
	}

	return bestCol
}

// minimax scores board with the static evaluator at the horizon or at any
// finished position. Finished positions are not replaced by a win/loss constant.
func minimax(board *domain.Board, depth int, alpha, beta int, isMaximizing bool) int {
	if depth == 0 || isTerminal(board) {
		return EvaluateBoard(board)
	}

	if isMaximizing {
		maxEval := math.MinInt
		for _, col := range board.AvailableColumns() {
			testBoard, _, err := board.SimulateMove(col, domain.PlayerB)
			if err != nil {
				continue
			}

			eval := minimax(testBoard, depth-1, alpha, beta, false)
			maxEval = max(maxEval, eval)
			if maxEval >= beta {
				break // beta cutoff
			}
			alpha = max(alpha, maxEval)
		}
		return maxEval
	}

	minEval := math.MaxInt
	for _, col := range board.AvailableColumns() {
		testBoard, _, err := board.SimulateMove(col, domain.PlayerA)
		if err != nil {
			continue
		}

		eval := minimax(testBoard, depth-1, alpha, beta, true)
		minEval = min(minEval, eval)
		if minEval <= alpha {
			break // alpha cutoff
		}
		beta = min(beta, minEval)
	}
	return minEval
}

func isTerminal(board *domain.Board) bool {
	if _, won := domain.CheckWin(board, domain.PlayerA); won {
		return true
	}
	if _, won := domain.CheckWin(board, domain.PlayerB); won {
		return true
	}
	return domain.CheckDraw(board)
}
