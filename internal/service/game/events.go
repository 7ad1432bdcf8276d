package game

import (
	"context"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

type EventType string

const (
	EventMoveApplied EventType = "move_applied"
	EventWin         EventType = "win"
	EventDraw        EventType = "draw"
	EventState       EventType = "state"
)

// Event is a state-change notification for presentation collaborators.
type Event struct {
	Type   EventType       `json:"type"`
	Seq    uint64          `json:"seq"`
	GameID string          `json:"gameId"`
	Move   *domain.Move    `json:"move,omitempty"`
	Board  [][]int         `json:"board"`
	Winner domain.PlayerID `json:"winner,omitempty"`
	Line   *domain.Line    `json:"winningLine,omitempty"`
	Phase  domain.Phase    `json:"phase"`
	Turn   domain.PlayerID `json:"turn"`
}

// Listener is the presentation sink. Events arrive in commit order with increasing
// Seq. OnEvent must not call back into the controller.
type Listener interface {
	OnEvent(Event)
}

type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// StatsRecorder persists aggregate outcomes from the human's point of view.
type StatsRecorder interface {
	RecordWin(ctx context.Context) error
	RecordDraw(ctx context.Context) error
	RecordLoss(ctx context.Context) error
}

// SearchFunc picks the opponent's column on a board it may freely modify.
type SearchFunc func(board *domain.Board) int

func buildEvents(gameID string, state domain.GameState, move domain.Move) []Event {
	grid := state.Board.Grid()
	base := Event{GameID: gameID, Board: grid, Phase: state.Phase, Turn: state.Turn}

	applied := base
	applied.Type = EventMoveApplied
	applied.Move = &move
	events := []Event{applied}

	switch state.Outcome.Kind {
	case domain.OutcomeWin:
		win := base
		win.Type = EventWin
		win.Winner = state.Outcome.Winner
		win.Line = state.Outcome.Line
		events = append(events, win)
	case domain.OutcomeDraw:
		draw := base
		draw.Type = EventDraw
		events = append(events, draw)
	}

	st := base
	st.Type = EventState
	return append(events, st)
}

func stateEvent(gameID string, state domain.GameState) Event {
	return Event{
		Type:   EventState,
		GameID: gameID,
		Board:  state.Board.Grid(),
		Phase:  state.Phase,
		Turn:   state.Turn,
	}
}
