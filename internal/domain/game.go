package domain

// Phase is the controller state of a game.
type Phase string

const (
	PhaseAwaitingHuman     Phase = "awaiting_human"
	PhaseSearchingOpponent Phase = "searching_opponent"
	PhaseGameOver          Phase = "game_over"
)

type Move struct {
	Player PlayerID `json:"player"`
	Row    int      `json:"row"`
	Col    int      `json:"col"`
}

// GameState is the whole state of one game. Transitions return a new value
// instead of mutating the receiver, so callers can keep older snapshots.
type GameState struct {
	Variant   Variant
	Board     *Board
	Starter   PlayerID
	Turn      PlayerID
	Phase     Phase
	Outcome   Outcome
	LastMove  *Move
	MoveCount int
}

// NewGame starts a fresh game on an empty board.
func NewGame(v Variant, starter PlayerID) (GameState, error) {
	board, err := NewBoardForVariant(v)
	if err != nil {
		return GameState{}, err
	}
	if starter != PlayerB {
		starter = PlayerA
	}
	return GameState{
		Variant: v,
		Board:   board,
		Starter: starter,
		Turn:    starter,
		Phase:   phaseFor(starter),
		Outcome: Outcome{Kind: OutcomeOngoing},
	}, nil
}

func phaseFor(turn PlayerID) Phase {
	if turn == PlayerB {
		return PhaseSearchingOpponent
	}
	return PhaseAwaitingHuman
}

func (s GameState) IsFinished() bool {
	return s.Phase == PhaseGameOver
}

// Clone deep-copies the board and the pointers hanging off the state.
func (s GameState) Clone() GameState {
	next := s
	if s.Board != nil {
		next.Board = s.Board.Clone()
	}
	if s.LastMove != nil {
		m := *s.LastMove
		next.LastMove = &m
	}
	if s.Outcome.Line != nil {
		l := *s.Outcome.Line
		next.Outcome.Line = &l
	}
	return next
}

// Play drops a disk for player into col. The win check runs before the draw check.
// On error the returned state is s itself.
func Play(s GameState, player PlayerID, col int) (GameState, Move, error) {
	if s.IsFinished() {
		return s, Move{}, ErrGameOver
	}
	if player != s.Turn {
		return s, Move{}, ErrNotYourTurn
	}
	if !s.Board.IsValidMove(col) {
		if col < 0 || col >= s.Board.Cols {
			return s, Move{}, ErrInvalidMove
		}
		return s, Move{}, ErrColumnFull
	}

	next := s.Clone()
	row, err := next.Board.DropDisk(col, player)
	if err != nil {
		return s, Move{}, err
	}

	move := Move{Player: player, Row: row, Col: col}
	next.LastMove = &move
	next.MoveCount++

	if l, won := CheckWin(next.Board, player); won {
		next.Phase = PhaseGameOver
		next.Outcome = Outcome{Kind: OutcomeWin, Winner: player, Line: &l}
		return next, move, nil
	}

	if CheckDraw(next.Board) {
		next.Phase = PhaseGameOver
		next.Outcome = Outcome{Kind: OutcomeDraw}
		return next, move, nil
	}

	next.Turn = player.Opponent()
	next.Phase = phaseFor(next.Turn)
	return next, move, nil
}
