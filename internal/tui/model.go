// Package tui is a terminal front end for a local game against the bot.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"emittr/connect4/internal/game"
)

var (
	humanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	computerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	winStyle      = lipgloss.NewStyle().Reverse(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusStyle   = lipgloss.NewStyle().Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// playedMsg carries the result of a move computed off the UI loop.
type playedMsg struct {
	res game.MoveResult
	err error
}

// Model owns the game. While thinking is set the game belongs to the
// command running the search and the model only reads its snapshot.
type Model struct {
	game     *game.Game
	snapshot game.MoveResult
	cursor   int
	thinking bool
	err      error
}

func New(bot *game.Bot) Model {
	g := game.NewGame(bot)
	return Model{game: g, snapshot: g.State(), cursor: game.Columns / 2}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case playedMsg:
		m.thinking = false
		m.err = msg.err
		if msg.err == nil {
			m.snapshot = msg.res
		}
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.thinking {
			return m, nil
		}
		switch key {
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < game.Columns-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.drop(m.cursor)
		case "r":
			m.game.Reset()
			m.snapshot = m.game.State()
			m.err = nil
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] < '1'+game.Columns {
				m.cursor = int(key[0] - '1')
				return m.drop(m.cursor)
			}
		}
	}
	return m, nil
}

func (m Model) drop(col int) (tea.Model, tea.Cmd) {
	m.thinking = true
	m.err = nil
	g := m.game
	return m, func() tea.Msg {
		res, err := g.Play(col)
		return playedMsg{res: res, err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for c := 0; c < game.Columns; c++ {
		if c == m.cursor {
			sb.WriteString(cursorStyle.Render("v "))
		} else {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")

	winning := make(map[[2]int]bool, len(m.snapshot.Winning))
	for _, cell := range m.snapshot.Winning {
		winning[cell] = true
	}
	board := m.snapshot.Board
	for r := 0; r < game.Rows; r++ {
		sb.WriteString(" |")
		for c := 0; c < game.Columns; c++ {
			token := renderCell(board[r][c])
			if winning[[2]int{r, c}] {
				token = winStyle.Render(token)
			}
			sb.WriteString(token)
			sb.WriteString("|")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	for c := 1; c <= game.Columns; c++ {
		fmt.Fprintf(&sb, "%d ", c)
	}
	sb.WriteString("\n\n")
	sb.WriteString(statusStyle.Render(m.status()))
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString("←/→ move  enter drop  1-7 drop  r restart  q quit\n")
	return sb.String()
}

func (m Model) status() string {
	if m.thinking {
		return "computer is thinking..."
	}
	switch m.snapshot.Outcome {
	case game.OutcomeHumanWins:
		return "You win! Press r to play again."
	case game.OutcomeComputerWins:
		return "The computer wins. Press r to play again."
	case game.OutcomeDraw:
		return "Draw. Press r to play again."
	}
	return "Your move."
}

func renderCell(c game.Cell) string {
	switch c {
	case game.CellHuman:
		return humanStyle.Render("X")
	case game.CellComputer:
		return computerStyle.Render("O")
	default:
		return emptyStyle.Render(".")
	}
}
