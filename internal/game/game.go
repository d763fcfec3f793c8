package game

// Phase is the lifecycle of a game. InProgress moves to Won or Drawn and
// never back.
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
	PhaseDrawn      Phase = "drawn"
)

// Outcome is the terminal signal reported to clients after each move.
type Outcome string

const (
	OutcomeNone         Outcome = ""
	OutcomeHumanWins    Outcome = "human_wins"
	OutcomeComputerWins Outcome = "computer_wins"
	OutcomeDraw         Outcome = "draw"
)

// Move is a single applied drop.
type Move struct {
	Player Cell `json:"player"`
	Row    int  `json:"row"`
	Column int  `json:"column"`
}

type MoveResult struct {
	Board   Board
	Moves   []Move
	Phase   Phase
	Winner  Cell
	Outcome Outcome
	Winning [][2]int
}

// Game is a single human-vs-computer game. It is not safe for concurrent
// use: the bot searches on the game's own board.
type Game struct {
	Board   Board
	Current Cell
	Phase   Phase
	Winner  Cell
	History []Move
	Bot     *Bot
}

func NewGame(bot *Bot) *Game {
	if bot == nil {
		bot = NewBot(DefaultDepth)
	}
	g := &Game{Bot: bot}
	g.Reset()
	return g
}

func (g *Game) Reset() {
	g.Board.Reset()
	g.Current = CellHuman
	g.Phase = PhaseInProgress
	g.Winner = CellEmpty
	g.History = nil
}

func (g *Game) Active() bool {
	return g.Phase == PhaseInProgress
}

// Play applies the human's move in col and, if the game goes on, the
// computer's reply. A rejected move leaves the game untouched.
func (g *Game) Play(col int) (MoveResult, error) {
	if !g.Active() {
		return MoveResult{}, ErrGameFinished
	}
	if g.Current != CellHuman {
		return MoveResult{}, ErrNotYourTurn
	}
	human, err := g.apply(col)
	if err != nil {
		return MoveResult{}, err
	}
	moves := []Move{human}
	if g.Active() && g.Current == CellComputer {
		reply, err := g.apply(g.Bot.ChooseMove(&g.Board))
		if err != nil {
			return MoveResult{}, err
		}
		moves = append(moves, reply)
	}
	return g.result(moves), nil
}

// apply drops the current player's marker and advances the phase or turn.
func (g *Game) apply(col int) (Move, error) {
	row, err := g.Board.Place(col, g.Current)
	if err != nil {
		return Move{}, err
	}
	move := Move{Player: g.Current, Row: row, Column: col}
	g.History = append(g.History, move)
	switch {
	case g.Board.HasFourInRow(g.Current):
		g.Phase = PhaseWon
		g.Winner = g.Current
	case g.Board.IsFull():
		g.Phase = PhaseDrawn
	default:
		g.Current = g.Current.Opponent()
	}
	return move, nil
}

// Outcome is the terminal signal for the current state.
func (g *Game) Outcome() Outcome {
	switch g.Phase {
	case PhaseWon:
		if g.Winner == CellComputer {
			return OutcomeComputerWins
		}
		return OutcomeHumanWins
	case PhaseDrawn:
		return OutcomeDraw
	default:
		return OutcomeNone
	}
}

// State is a MoveResult with no new moves.
func (g *Game) State() MoveResult {
	return g.result(nil)
}

func (g *Game) result(moves []Move) MoveResult {
	res := MoveResult{
		Board:   g.Board,
		Moves:   moves,
		Phase:   g.Phase,
		Winner:  g.Winner,
		Outcome: g.Outcome(),
	}
	if g.Phase == PhaseWon {
		res.Winning = g.Board.WinningCells(g.Winner)
	}
	return res
}
