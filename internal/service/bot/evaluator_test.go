package bot

import (
	"testing"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

// rowBoard is a single 1x4 row, so it holds exactly one window.
func rowBoard(cells ...domain.PlayerID) *domain.Board {
	b := domain.NewBoard(1, 4)
	copy(b.Cells[0], cells)
	return b
}

const (
	e = domain.Empty
	a = domain.PlayerA
	b = domain.PlayerB
)

func TestScoreTable(t *testing.T) {
	tests := []struct {
		name  string
		cells []domain.PlayerID
		want  int
	}{
		{"bot four", []domain.PlayerID{b, b, b, b}, 10000},
		{"human four", []domain.PlayerID{a, a, a, a}, -10000},
		{"human three", []domain.PlayerID{a, e, a, a}, -50},
		{"human two", []domain.PlayerID{e, a, a, e}, -5},
		{"bot three", []domain.PlayerID{b, b, e, b}, 75},
		{"bot two", []domain.PlayerID{b, e, e, b}, 8},
		{"single", []domain.PlayerID{e, e, b, e}, 0},
		{"empty", []domain.PlayerID{e, e, e, e}, 0},
		{"mixed three", []domain.PlayerID{b, b, b, a}, 0},
		{"mixed two", []domain.PlayerID{a, a, b, e}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateBoard(rowBoard(tt.cells...)); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestEvaluateEmptyBoards(t *testing.T) {
	for _, v := range []domain.Variant{domain.Variant6x6, domain.Variant6x7} {
		board, _ := domain.NewBoardForVariant(v)
		if got := EvaluateBoard(board); got != 0 {
			t.Fatalf("%s: expected 0 for empty board, got %d", v, got)
		}
	}
}

func TestEvaluateSumsEveryDirection(t *testing.T) {
	board := domain.NewBoard(6, 7)
	board.DropDisk(0, domain.PlayerB)
	board.DropDisk(1, domain.PlayerB)

	// only the bottom-row window starting at column 0 holds both disks
	if got := EvaluateBoard(board); got != SCORE_BOT_TWO {
		t.Fatalf("expected %d, got %d", SCORE_BOT_TWO, got)
	}

	board.DropDisk(0, domain.PlayerB)
	// vertical window rows 2-5 in column 0 now holds two bot disks as well
	if got := EvaluateBoard(board); got != 2*SCORE_BOT_TWO {
		t.Fatalf("expected %d, got %d", 2*SCORE_BOT_TWO, got)
	}
}

func TestEvaluateSwapFlipsSign(t *testing.T) {
	four := rowBoard(b, b, b, b)
	if got, swapped := EvaluateBoard(four), EvaluateBoard(four.Swapped()); got != -swapped {
		t.Fatalf("expected exact negation for a completed line, got %d and %d", got, swapped)
	}

	board := domain.NewBoard(6, 7)
	for _, col := range []int{2, 3, 3, 4, 6} {
		board.DropDisk(col, domain.PlayerB)
	}
	got := EvaluateBoard(board)
	swapped := EvaluateBoard(board.Swapped())
	if got <= 0 || swapped >= 0 {
		t.Fatalf("expected swap to flip the sign, got %d and %d", got, swapped)
	}
}
