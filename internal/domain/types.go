package domain

import "fmt"

// PlayerID is the occupant of a single cell.
type PlayerID int

const (
	Empty PlayerID = 0
	// PlayerA is the human.
	PlayerA PlayerID = 1
	// PlayerB is the automated opponent.
	PlayerB PlayerID = 2
)

func (p PlayerID) Opponent() PlayerID {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

const ToWin = 4

// Variant selects the board dimensions of a game.
type Variant string

const (
	Variant6x6 Variant = "6x6"
	Variant6x7 Variant = "6x7"
)

// Dimensions returns rows and columns for a variant.
func (v Variant) Dimensions() (rows, cols int, err error) {
	switch v {
	case Variant6x6:
		return 6, 6, nil
	case Variant6x7:
		return 6, 7, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

// Coord is a (row, column) pair, row 0 being the top row.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line is four coordinates sharing one direction.
type Line [ToWin]Coord

// to represent where a game is
type OutcomeKind string

const (
	OutcomeOngoing OutcomeKind = "ongoing"
	OutcomeWin     OutcomeKind = "win"
	OutcomeDraw    OutcomeKind = "draw"
)

type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner PlayerID    `json:"winner,omitempty"`
	Line   *Line       `json:"winningLine,omitempty"`
}

func (o Outcome) IsTerminal() bool {
	return o.Kind == OutcomeWin || o.Kind == OutcomeDraw
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove     Error = "invalid move"
	ErrColumnFull      Error = "column is full"
	ErrOutOfBounds     Error = "position out of bounds"
	ErrCellOccupied    Error = "cell is not the open cell of its column"
	ErrUnknownVariant  Error = "unknown board variant"
	ErrGameOver        Error = "game is over"
	ErrNotYourTurn     Error = "not your turn"
	ErrSessionNotFound Error = "session not found"
)
