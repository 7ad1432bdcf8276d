package domain

// Board is a rows x cols grid; Cells[0] is the top row.
type Board struct {
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	Cells [][]PlayerID `json:"cells"`
}

func NewBoard(rows, cols int) *Board {
	cells := make([][]PlayerID, rows)
	for i := range cells {
		cells[i] = make([]PlayerID, cols)
	}
	return &Board{Rows: rows, Cols: cols, Cells: cells}
}

// NewBoardForVariant creates an empty board with the variant's dimensions.
func NewBoardForVariant(v Variant) (*Board, error) {
	rows, cols, err := v.Dimensions()
	if err != nil {
		return nil, err
	}
	return NewBoard(rows, cols), nil
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

func (b *Board) At(row, col int) PlayerID {
	return b.Cells[row][col]
}

func (b *Board) IsValidMove(col int) bool {
	if col < 0 || col >= b.Cols {
		return false
	}
	// the top cell decides whether the column still has room
	return b.Cells[0][col] == Empty
}

// OpenRow returns the lowest empty row of a column, or false when the column is full.
func (b *Board) OpenRow(col int) (int, bool) {
	if col < 0 || col >= b.Cols {
		return -1, false
	}
	for row := b.Rows - 1; row >= 0; row-- {
		if b.Cells[row][col] == Empty {
			return row, true
		}
	}
	return -1, false
}

// Place writes player into (row, col). Only the open cell of the column is accepted,
// so a piece can never float above an empty cell.
func (b *Board) Place(row, col int, player PlayerID) error {
	if !b.InBounds(row, col) {
		return ErrOutOfBounds
	}
	open, ok := b.OpenRow(col)
	if !ok {
		return ErrColumnFull
	}
	if open != row {
		return ErrCellOccupied
	}
	b.Cells[row][col] = player
	return nil
}

// DropDisk lets a disk fall down the column and returns the row it landed on.
func (b *Board) DropDisk(col int, player PlayerID) (int, error) {
	row, ok := b.OpenRow(col)
	if !ok {
		if col < 0 || col >= b.Cols {
			return -1, ErrOutOfBounds
		}
		return -1, ErrColumnFull
	}
	b.Cells[row][col] = player
	return row, nil
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]PlayerID, len(b.Cells))
	for i := range b.Cells {
		cells[i] = make([]PlayerID, len(b.Cells[i]))
		copy(cells[i], b.Cells[i])
	}
	return &Board{Rows: b.Rows, Cols: b.Cols, Cells: cells}
}

// AvailableColumns lists playable columns in ascending order. The search iterates
// moves in this order, so it also decides tie-breaks.
func (b *Board) AvailableColumns() []int {
	cols := make([]int, 0, b.Cols)
	for col := 0; col < b.Cols; col++ {
		if b.Cells[0][col] == Empty {
			cols = append(cols, col)
		}
	}
	return cols
}

func (b *Board) IsFull() bool {
	for col := 0; col < b.Cols; col++ {
		if b.Cells[0][col] == Empty {
			return false
		}
	}
	return true
}

// SimulateMove drops a disk on a copy of the board and leaves the original untouched.
func (b *Board) SimulateMove(col int, player PlayerID) (*Board, int, error) {
	next := b.Clone()
	row, err := next.DropDisk(col, player)
	if err != nil {
		return nil, -1, err
	}
	return next, row, nil
}

// Swapped returns a copy with PlayerA and PlayerB exchanged.
func (b *Board) Swapped() *Board {
	next := b.Clone()
	for r := range next.Cells {
		for c, p := range next.Cells[r] {
			if p != Empty {
				next.Cells[r][c] = p.Opponent()
			}
		}
	}
	return next
}

// Grid exposes the cells as plain ints for JSON consumers.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.Rows)
	for r := range b.Cells {
		grid[r] = make([]int, b.Cols)
		for c, p := range b.Cells[r] {
			grid[r][c] = int(p)
		}
	}
	return grid
}
