package game

import (
	"errors"
	"testing"
)

func TestPlaceStacksFromBottom(t *testing.T) {
	var b Board
	for want := Rows - 1; want >= 0; want-- {
		row, err := b.Place(2, CellHuman)
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		if row != want {
			t.Fatalf("expected row %d, got %d", want, row)
		}
	}
	if _, err := b.Place(2, CellComputer); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if b.Tokens() != Rows {
		t.Fatalf("rejected move changed the board:\n%s", b.String())
	}
}

func TestPlaceRejectsOutOfRange(t *testing.T) {
	var b Board
	for _, col := range []int{-1, Columns, 100} {
		if _, err := b.Place(col, CellHuman); !errors.Is(err, ErrInvalidColumn) {
			t.Fatalf("col %d: expected ErrInvalidColumn, got %v", col, err)
		}
		if _, ok := b.LowestOpenRow(col); ok {
			t.Fatalf("col %d reported an open row", col)
		}
	}
	if b != (Board{}) {
		t.Fatalf("board changed:\n%s", b.String())
	}
}

func TestPlaceUndoRestoresBoard(t *testing.T) {
	boards := []Board{
		{},
		ParseBoard("..X....\n.OXO...\nXOXOX.O"),
		ParseBoard(drawnBoard),
	}
	for i, b := range boards {
		before := b
		for col := 0; col < Columns; col++ {
			for _, p := range []Cell{CellHuman, CellComputer} {
				row, err := b.Place(col, p)
				if err != nil {
					continue
				}
				b.Undo(row, col)
				if b != before {
					t.Fatalf("board %d col %d: undo did not restore\nwant:\n%s\ngot:\n%s", i, col, before.String(), b.String())
				}
			}
		}
	}
}

func TestLowestOpenRow(t *testing.T) {
	b := ParseBoard("X......\nO......\nX.O....")
	cases := []struct {
		col  int
		row  int
		open bool
	}{
		{0, 2, true},
		{1, 5, true},
		{2, 4, true},
	}
	for _, tc := range cases {
		row, ok := b.LowestOpenRow(tc.col)
		if ok != tc.open || row != tc.row {
			t.Errorf("col %d: got (%d,%v), want (%d,%v)", tc.col, row, ok, tc.row, tc.open)
		}
	}
}

func TestIsFull(t *testing.T) {
	full := ParseBoard(drawnBoard)
	if !full.IsFull() {
		t.Fatalf("expected full board")
	}
	if full.Tokens() != Rows*Columns {
		t.Fatalf("expected %d tokens, got %d", Rows*Columns, full.Tokens())
	}
	full.Undo(0, 3)
	if full.IsFull() {
		t.Fatalf("board with an open cell reported full")
	}
	var empty Board
	if empty.IsFull() {
		t.Fatalf("empty board reported full")
	}
}

func TestParseBoardString(t *testing.T) {
	b := ParseBoard("OX.....")
	if b[Rows-1][0] != CellComputer || b[Rows-1][1] != CellHuman {
		t.Fatalf("unexpected bottom row:\n%s", b.String())
	}
	if again := ParseBoard(b.String()); again != b {
		t.Fatalf("String/ParseBoard mismatch:\n%s\n%s", b.String(), again.String())
	}
}
