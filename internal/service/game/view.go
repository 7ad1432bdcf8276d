package game

import "github.com/iamasit07/clash-of-dots/backend/internal/domain"

// StateView is the JSON shape of a game sent to clients.
type StateView struct {
	GameID      string             `json:"gameId"`
	Variant     domain.Variant     `json:"variant"`
	Rows        int                `json:"rows"`
	Cols        int                `json:"cols"`
	Board       [][]int            `json:"board"`
	Phase       domain.Phase       `json:"phase"`
	Turn        domain.PlayerID    `json:"turn"`
	Outcome     domain.OutcomeKind `json:"outcome"`
	Winner      domain.PlayerID    `json:"winner,omitempty"`
	WinningLine *domain.Line       `json:"winningLine,omitempty"`
	LastMove    *domain.Move       `json:"lastMove,omitempty"`
	MoveCount   int                `json:"moveCount"`
}

func NewStateView(gameID string, s domain.GameState) StateView {
	return StateView{
		GameID:      gameID,
		Variant:     s.Variant,
		Rows:        s.Board.Rows,
		Cols:        s.Board.Cols,
		Board:       s.Board.Grid(),
		Phase:       s.Phase,
		Turn:        s.Turn,
		Outcome:     s.Outcome.Kind,
		Winner:      s.Outcome.Winner,
		WinningLine: s.Outcome.Line,
		LastMove:    s.LastMove,
		MoveCount:   s.MoveCount,
	}
}
