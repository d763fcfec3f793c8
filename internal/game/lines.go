package game

// directions are the four axes as (dRow, dCol): horizontal, vertical,
// diagonal down-right and diagonal up-right.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

// HasFourInRow reports whether player owns any complete 4-window.
func (b *Board) HasFourInRow(player Cell) bool {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			for _, d := range directions {
				if b.window(player, ToWin, row, col, d[0], d[1]) {
					return true
				}
			}
		}
	}
	return false
}

// CountRuns counts every length-cell window, on all four axes, whose cells
// all belong to player. Overlapping windows are counted separately, so a run
// of five contributes two windows of length four.
func (b *Board) CountRuns(player Cell, length int) int {
	if length <= 0 {
		return 0
	}
	count := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			for _, d := range directions {
				if b.window(player, length, row, col, d[0], d[1]) {
					count++
				}
			}
		}
	}
	return count
}

// WinningCells returns the cells of every winning window for player, each
// cell once, in scan order.
func (b *Board) WinningCells(player Cell) [][2]int {
	var coords [][2]int
	var seen [Rows][Columns]bool
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			for _, d := range directions {
				if !b.window(player, ToWin, row, col, d[0], d[1]) {
					continue
				}
				for i := 0; i < ToWin; i++ {
					r, c := row+i*d[0], col+i*d[1]
					if !seen[r][c] {
						seen[r][c] = true
						coords = append(coords, [2]int{r, c})
					}
				}
			}
		}
	}
	return coords
}

// window reports whether the length cells starting at (row, col) along
// (dRow, dCol) all hold player. Windows leaving the grid never match.
func (b *Board) window(player Cell, length, row, col, dRow, dCol int) bool {
	endRow := row + (length-1)*dRow
	endCol := col + (length-1)*dCol
	if endRow < 0 || endRow >= Rows || endCol < 0 || endCol >= Columns {
		return false
	}
	for i := 0; i < length; i++ {
		if b[row+i*dRow][col+i*dCol] != player {
			return false
		}
	}
	return true
}
