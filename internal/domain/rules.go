package domain

import "sync"

type dims struct{ rows, cols int }

var windowCache sync.Map // dims -> []Line

// Windows enumerates every run of four cells on a rows x cols board in win-scan order:
// horizontal (row-major), vertical (column-major), diagonal down-right, diagonal down-left.
// The returned slice is shared and must not be modified.
func Windows(rows, cols int) []Line {
	key := dims{rows, cols}
	if cached, ok := windowCache.Load(key); ok {
		return cached.([]Line)
	}

	var lines []Line

	// horizontal
	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-ToWin; c++ {
			lines = append(lines, line(r, c, 0, 1))
		}
	}

	// vertical
	for c := 0; c < cols; c++ {
		for r := 0; r <= rows-ToWin; r++ {
			lines = append(lines, line(r, c, 1, 0))
		}
	}

	// diagonal \
	for c := 0; c <= cols-ToWin; c++ {
		for r := 0; r <= rows-ToWin; r++ {
			lines = append(lines, line(r, c, 1, 1))
		}
	}

	// diagonal /
	for c := ToWin - 1; c < cols; c++ {
		for r := 0; r <= rows-ToWin; r++ {
			lines = append(lines, line(r, c, 1, -1))
		}
	}

	actual, _ := windowCache.LoadOrStore(key, lines)
	return actual.([]Line)
}

func line(row, col, deltaRow, deltaCol int) Line {
	var l Line
	for i := range l {
		l[i] = Coord{Row: row + i*deltaRow, Col: col + i*deltaCol}
	}
	return l
}

// CheckWin returns the first line fully owned by player, in the fixed scan order of Windows.
func CheckWin(board *Board, player PlayerID) (Line, bool) {
	for _, l := range Windows(board.Rows, board.Cols) {
		if owns(board, l, player) {
			return l, true
		}
	}
	return Line{}, false
}

func owns(board *Board, l Line, player PlayerID) bool {
	for _, pos := range l {
		if board.Cells[pos.Row][pos.Col] != player {
			return false
		}
	}
	return true
}

// CheckDraw only tests fullness. Callers must check both players for a win first,
// a full board holding a line is a win.
func CheckDraw(board *Board) bool {
	return len(board.AvailableColumns()) == 0
}

// Classify classifies a board, giving a win precedence over a draw.
// When both players own a line (unreachable in play) PlayerA is reported.
func Classify(board *Board) Outcome {
	for _, p := range []PlayerID{PlayerA, PlayerB} {
		if l, ok := CheckWin(board, p); ok {
			return Outcome{Kind: OutcomeWin, Winner: p, Line: &l}
		}
	}
	if CheckDraw(board) {
		return Outcome{Kind: OutcomeDraw}
	}
	return Outcome{Kind: OutcomeOngoing}
}
