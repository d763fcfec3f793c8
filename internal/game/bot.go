package game

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultDepth = 5
	// MaxSearchDepth caps the horizon, adaptive widening included. Each
	// extra ply multiplies the work by up to seven.
	MaxSearchDepth = 9

	// criticalDepthBonus and simpleDepthCut shape AdjustDepth.
	criticalDepthBonus = 4
	simpleDepthCut     = 2
	simpleTokenLimit   = 10

	scoreInf = math.MaxInt32
)

// Bot picks the computer's column with a depth-limited minimax search and
// alpha-beta pruning. The zero value searches to DefaultDepth.
type Bot struct {
	MaxDepth int
	// Adaptive widens or narrows the horizon per position with AdjustDepth.
	Adaptive bool
	// Parallel scores root columns concurrently, each on its own board copy.
	Parallel bool
}

// MoveScore is the search score of dropping the computer's marker in Column.
type MoveScore struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

func NewBot(depth int) *Bot {
	return &Bot{MaxDepth: depth}
}

// ChooseMove returns the best column for the computer, or -1 if the board
// is full. Among equal scores the lowest column wins.
func (bot *Bot) ChooseMove(board *Board) int {
	best := -1
	bestScore := -scoreInf
	for _, ms := range bot.ScoreMoves(board) {
		if best == -1 || ms.Score > bestScore {
			best = ms.Column
			bestScore = ms.Score
		}
	}
	return best
}

// ScoreMoves searches every open column in ascending order and returns
// its score. The board is left exactly as it was found.
func (bot *Bot) ScoreMoves(board *Board) []MoveScore {
	depth := bot.Depth(board)
	var cols []int
	for col := 0; col < Columns; col++ {
		if _, ok := board.LowestOpenRow(col); ok {
			cols = append(cols, col)
		}
	}
	scores := make([]MoveScore, len(cols))
	if bot.Parallel {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, col := range cols {
			i, col := i, col
			g.Go(func() error {
				local := *board
				s := searcher{board: &local, maxDepth: depth}
				scores[i] = MoveScore{Column: col, Score: s.root(col)}
				return nil
			})
		}
		_ = g.Wait()
		return scores
	}
	s := searcher{board: board, maxDepth: depth}
	for i, col := range cols {
		scores[i] = MoveScore{Column: col, Score: s.root(col)}
	}
	return scores
}

// Depth is the horizon ChooseMove will use for board, between 1 and
// MaxSearchDepth.
func (bot *Bot) Depth(board *Board) int {
	depth := bot.MaxDepth
	if depth <= 0 {
		depth = DefaultDepth
	}
	if bot.Adaptive {
		depth = AdjustDepth(board, depth)
	}
	return min(max(depth, 1), MaxSearchDepth)
}

// AdjustDepth extends the horizon when either side already has a three and
// shortens it early in the game.
func AdjustDepth(board *Board, base int) int {
	switch {
	case IsCritical(board):
		return base + criticalDepthBonus
	case IsSimple(board):
		return base - simpleDepthCut
	default:
		return base
	}
}

// IsCritical reports whether either side has a 3-window on the board.
func IsCritical(board *Board) bool {
	return board.CountRuns(CellComputer, 3) > 0 || board.CountRuns(CellHuman, 3) > 0
}

// IsSimple reports whether fewer than ten tokens have been played.
func IsSimple(board *Board) bool {
	return board.Tokens() < simpleTokenLimit
}

// searcher runs one recursive descent over a board it mutates in place.
type searcher struct {
	board    *Board
	maxDepth int
}

func (s *searcher) root(col int) int {
	row, err := s.board.Place(col, CellComputer)
	if err != nil {
		return -scoreInf
	}
	score := s.search(1, -scoreInf, scoreInf, false)
	s.board.Undo(row, col)
	return score
}

func (s *searcher) search(depth, alpha, beta int, maximizing bool) int {
	b := s.board
	// a full board is terminal too; scoring it keeps results finite
	if depth >= s.maxDepth || b.HasFourInRow(CellHuman) || b.HasFourInRow(CellComputer) || b.IsFull() {
		return Evaluate(b)
	}

	if maximizing {
		best := -scoreInf
		for col := 0; col < Columns; col++ {
			row, err := b.Place(col, CellComputer)
			if err != nil {
				continue
			}
			score := s.search(depth+1, alpha, beta, false)
			b.Undo(row, col)
			best = max(best, score)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := scoreInf
	for col := 0; col < Columns; col++ {
		row, err := b.Place(col, CellHuman)
		if err != nil {
			continue
		}
		score := s.search(depth+1, alpha, beta, true)
		b.Undo(row, col)
		best = min(best, score)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
