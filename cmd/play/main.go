package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"emittr/connect4/internal/game"
	"emittr/connect4/internal/tui"
)

func main() {
	depth := flag.Int("depth", game.DefaultDepth, "search depth")
	adaptive := flag.Bool("adaptive", false, "adjust depth to the position")
	parallel := flag.Bool("parallel", false, "score root columns concurrently")
	flag.Parse()

	bot := &game.Bot{MaxDepth: *depth, Adaptive: *adaptive, Parallel: *parallel}
	if _, err := tea.NewProgram(tui.New(bot)).Run(); err != nil {
		log.Fatalf("play: %v", err)
	}
}
