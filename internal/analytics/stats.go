package analytics

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"emittr/connect4/internal/game"
)

// Stats aggregates finished games read back from the topic. It only lives
// in memory.
type Stats struct {
	mu            sync.Mutex
	outcomes      map[game.Outcome]int
	moves         []int
	durations     []float64
	gamesPerDay   map[string]int
	gamesStarted  int
	gamesFinished int
	movesReported int
}

func NewStats() *Stats {
	return &Stats{
		outcomes:    make(map[game.Outcome]int),
		gamesPerDay: make(map[string]int),
	}
}

// Consume decodes one message value and records it.
func (s *Stats) Consume(value []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(value, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	s.Record(e)
	return e, nil
}

func (s *Stats) Record(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Event {
	case EventGameStarted:
		s.gamesStarted++
	case EventMovePlayed:
		s.movesReported++
	case EventGameFinished:
		s.gamesFinished++
		if outcome, ok := e.Payload["outcome"].(string); ok {
			s.outcomes[game.Outcome(outcome)]++
		}
		// JSON numbers decode as float64
		if moves, ok := e.Payload["moves"].(float64); ok {
			s.moves = append(s.moves, int(moves))
		}
		if d, ok := e.Payload["duration"].(float64); ok {
			s.durations = append(s.durations, d)
		}
		s.gamesPerDay[e.Timestamp.Format("2006-01-02")]++
	}
}

// Summary is a point-in-time copy of the aggregates.
type Summary struct {
	GamesStarted    int
	GamesFinished   int
	HumanWins       int
	ComputerWins    int
	Draws           int
	AverageMoves    float64
	AverageDuration time.Duration
	GamesPerDay     map[string]int
}

func (s *Stats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		GamesStarted:  s.gamesStarted,
		GamesFinished: s.gamesFinished,
		HumanWins:     s.outcomes[game.OutcomeHumanWins],
		ComputerWins:  s.outcomes[game.OutcomeComputerWins],
		Draws:         s.outcomes[game.OutcomeDraw],
		GamesPerDay:   make(map[string]int, len(s.gamesPerDay)),
	}
	if n := len(s.moves); n > 0 {
		total := 0
		for _, m := range s.moves {
			total += m
		}
		sum.AverageMoves = float64(total) / float64(n)
	}
	if n := len(s.durations); n > 0 {
		total := 0.0
		for _, d := range s.durations {
			total += d
		}
		sum.AverageDuration = time.Duration(total / float64(n) * float64(time.Second))
	}
	for k, v := range s.gamesPerDay {
		sum.GamesPerDay[k] = v
	}
	return sum
}

func (s *Stats) Print() {
	sum := s.Summary()
	log.Printf("=== ANALYTICS SUMMARY ===")
	log.Printf("Games Started: %d, Finished: %d", sum.GamesStarted, sum.GamesFinished)
	log.Printf("Human Wins: %d, Computer Wins: %d, Draws: %d", sum.HumanWins, sum.ComputerWins, sum.Draws)
	log.Printf("Average Game Length: %.1f moves", sum.AverageMoves)
	log.Printf("Average Game Duration: %s", sum.AverageDuration)
	log.Printf("Games Per Day: %v", sum.GamesPerDay)
	log.Printf("========================")
}
