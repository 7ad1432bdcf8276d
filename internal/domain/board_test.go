package domain

import "testing"

func TestNewBoardForVariant(t *testing.T) {
	cases := map[Variant][2]int{
		Variant6x6: {6, 6},
		Variant6x7: {6, 7},
	}
	for v, want := range cases {
		b, err := NewBoardForVariant(v)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", v, err)
		}
		if b.Rows != want[0] || b.Cols != want[1] {
			t.Fatalf("expected %dx%d for %s, got %dx%d", want[0], want[1], v, b.Rows, b.Cols)
		}
		for r := range b.Cells {
			for c := range b.Cells[r] {
				if b.Cells[r][c] != Empty {
					t.Fatalf("expected empty board, found %d at (%d,%d)", b.Cells[r][c], r, c)
				}
			}
		}
	}

	if _, err := NewBoardForVariant("8x8"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestOpenRowFillsColumnBottomToTop(t *testing.T) {
	b := NewBoard(6, 7)
	for col := 0; col < b.Cols; col++ {
		seen := map[int]bool{}
		for i := 0; i < b.Rows; i++ {
			row, ok := b.OpenRow(col)
			if !ok {
				t.Fatalf("column %d reported full after %d disks", col, i)
			}
			if want := b.Rows - 1 - i; row != want {
				t.Fatalf("expected open row %d, got %d", want, row)
			}
			if seen[row] {
				t.Fatalf("open row %d returned twice for column %d", row, col)
			}
			seen[row] = true
			if err := b.Place(row, col, PlayerA); err != nil {
				t.Fatalf("unexpected place error: %v", err)
			}
		}
		if _, ok := b.OpenRow(col); ok {
			t.Fatalf("expected column %d to be full", col)
		}
	}
}

func TestPlaceRejectsFloatingAndOccupiedCells(t *testing.T) {
	b := NewBoard(6, 6)

	if err := b.Place(0, 0, PlayerA); err != ErrCellOccupied {
		t.Fatalf("expected ErrCellOccupied for floating cell, got %v", err)
	}
	if err := b.Place(5, 0, PlayerA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Place(5, 0, PlayerB); err != ErrCellOccupied {
		t.Fatalf("expected ErrCellOccupied for taken cell, got %v", err)
	}
	if b.At(5, 0) != PlayerA {
		t.Fatal("rejected place must not overwrite the cell")
	}
	if err := b.Place(6, 0, PlayerA); err != ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestDropDiskOnFullColumn(t *testing.T) {
	b := NewBoard(6, 6)
	for i := 0; i < 6; i++ {
		if _, err := b.DropDisk(2, PlayerB); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	before := b.Clone()
	if _, err := b.DropDisk(2, PlayerA); err != ErrColumnFull {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if _, err := b.DropDisk(-1, PlayerA); err != ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c] != before.Cells[r][c] {
				t.Fatalf("board changed at (%d,%d) after rejected drop", r, c)
			}
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	b := NewBoard(6, 7)
	b.DropDisk(3, PlayerA)

	c := b.Clone()
	c.DropDisk(3, PlayerB)
	c.DropDisk(0, PlayerB)

	if b.At(4, 3) != Empty || b.At(5, 0) != Empty {
		t.Fatal("mutating the clone changed the original")
	}
	if c.At(5, 3) != PlayerA {
		t.Fatal("clone lost original contents")
	}
}

func TestAvailableColumnsAscending(t *testing.T) {
	b := NewBoard(6, 7)
	for i := 0; i < 6; i++ {
		b.DropDisk(1, PlayerA)
		b.DropDisk(4, PlayerB)
	}

	got := b.AvailableColumns()
	want := []int{0, 2, 3, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if b.IsValidMove(1) || !b.IsValidMove(0) || b.IsValidMove(7) {
		t.Fatal("IsValidMove disagrees with AvailableColumns")
	}
}

func TestSimulateMoveLeavesOriginal(t *testing.T) {
	b := NewBoard(6, 6)
	next, row, err := b.SimulateMove(2, PlayerB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row != 5 || next.At(5, 2) != PlayerB {
		t.Fatalf("expected disk at (5,2), got row %d", row)
	}
	if b.At(5, 2) != Empty {
		t.Fatal("SimulateMove mutated the original board")
	}
}
