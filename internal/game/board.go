package game

import (
	"errors"
	"strings"
)

const (
	Columns = 7
	Rows    = 6
	ToWin   = 4
)

// Cell is the marker stored in a grid cell.
type Cell int8

const (
	CellEmpty    Cell = 0
	CellHuman    Cell = 1
	CellComputer Cell = -1
)

// Opponent returns the other player. It is meaningless for CellEmpty.
func (c Cell) Opponent() Cell {
	return -c
}

func (c Cell) String() string {
	switch c {
	case CellHuman:
		return "human"
	case CellComputer:
		return "computer"
	default:
		return "empty"
	}
}

var (
	ErrColumnFull    = errors.New("column is full")
	ErrInvalidColumn = errors.New("invalid column")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameFinished  = errors.New("game already finished")
)

// Board is the grid, row 0 at the top. Gravity is only enforced by Place;
// every mutation must go through Place and Undo.
type Board [Rows][Columns]Cell

// Place drops player's marker into col and returns the row it landed on.
func (b *Board) Place(col int, player Cell) (int, error) {
	if col < 0 || col >= Columns {
		return -1, ErrInvalidColumn
	}
	row, ok := b.LowestOpenRow(col)
	if !ok {
		return -1, ErrColumnFull
	}
	b[row][col] = player
	return row, nil
}

// Undo clears a single cell. Search callers must undo in exact reverse order
// of their placements.
func (b *Board) Undo(row, col int) {
	b[row][col] = CellEmpty
}

func (b *Board) LowestOpenRow(col int) (int, bool) {
	if col < 0 || col >= Columns {
		return -1, false
	}
	for row := Rows - 1; row >= 0; row-- {
		if b[row][col] == CellEmpty {
			return row, true
		}
	}
	return -1, false
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == CellEmpty {
			return false
		}
	}
	return true
}

// Tokens counts occupied cells.
func (b *Board) Tokens() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] != CellEmpty {
				n++
			}
		}
	}
	return n
}

func (b *Board) Reset() {
	*b = Board{}
}

// Grid returns the board as plain ints for JSON clients.
func (b *Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for r := 0; r < Rows; r++ {
		grid[r] = make([]int, Columns)
		for c := 0; c < Columns; c++ {
			grid[r][c] = int(b[r][c])
		}
	}
	return grid
}

// String renders the board top row first: '.' empty, 'X' human, 'O' computer.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Rows * (Columns + 1))
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			switch b[r][c] {
			case CellHuman:
				sb.WriteByte('X')
			case CellComputer:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard is the inverse of String. Unknown characters are treated as
// empty and missing rows are padded from the top, so short literals describe
// the bottom of the board.
func ParseBoard(s string) Board {
	var b Board
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > Rows {
		lines = lines[len(lines)-Rows:]
	}
	offset := Rows - len(lines)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		for c := 0; c < Columns && c < len(line); c++ {
			switch line[c] {
			case 'X', 'x':
				b[offset+i][c] = CellHuman
			case 'O', 'o':
				b[offset+i][c] = CellComputer
			}
		}
	}
	return b
}
