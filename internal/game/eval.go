package game

const (
	WinScore = 10000

	computerThreeWeight = 5
	computerTwoWeight   = 2
	humanThreeWeight    = 4
	humanTwoWeight      = 1
)

// Evaluate scores the board from the computer's side. A completed four
// dominates everything else; otherwise open windows are weighted so that
// blocking a human three is worth more than building a computer two.
func Evaluate(b *Board) int {
	if b.HasFourInRow(CellComputer) {
		return WinScore
	}
	if b.HasFourInRow(CellHuman) {
		return -WinScore
	}
	score := computerThreeWeight * b.CountRuns(CellComputer, 3)
	score += computerTwoWeight * b.CountRuns(CellComputer, 2)
	score -= humanThreeWeight * b.CountRuns(CellHuman, 3)
	score -= humanTwoWeight * b.CountRuns(CellHuman, 2)
	return score
}
