package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"emittr/connect4/internal/game"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNilProducerIsNoop(t *testing.T) {
	p := NewProducer(nil, "game-events")
	if p != nil {
		t.Fatalf("expected nil producer without brokers")
	}
	p.GameStarted(context.Background(), "g1")
	p.Close()
}

func TestProducerRoundTripIntoStats(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}
	ctx := context.Background()
	start := time.Now().Add(-90 * time.Second)

	p.GameStarted(ctx, "g1")
	p.MovePlayed(ctx, "g1", game.MoveResult{
		Moves: []game.Move{{Player: game.CellHuman, Column: 3}, {Player: game.CellComputer, Column: 0}},
		Phase: game.PhaseInProgress,
	})
	p.GameFinished(ctx, game.Summary{GameID: "g1", Outcome: game.OutcomeComputerWins, Moves: 12, StartedAt: start, EndedAt: start.Add(60 * time.Second)})
	p.GameStarted(ctx, "g2")
	p.GameFinished(ctx, game.Summary{GameID: "g2", Outcome: game.OutcomeDraw, Moves: 42, StartedAt: start, EndedAt: start.Add(120 * time.Second)})
	p.Close()

	if len(w.msgs) != 5 || !w.closed {
		t.Fatalf("expected 5 messages and a closed writer, got %d %v", len(w.msgs), w.closed)
	}
	if string(w.msgs[0].Key) != "g1" {
		t.Fatalf("expected message keyed by game id, got %q", w.msgs[0].Key)
	}

	stats := NewStats()
	for _, m := range w.msgs {
		if _, err := stats.Consume(m.Value); err != nil {
			t.Fatalf("consume: %v", err)
		}
	}
	sum := stats.Summary()
	if sum.GamesStarted != 2 || sum.GamesFinished != 2 {
		t.Fatalf("unexpected counts %+v", sum)
	}
	if sum.ComputerWins != 1 || sum.Draws != 1 || sum.HumanWins != 0 {
		t.Fatalf("unexpected outcomes %+v", sum)
	}
	if sum.AverageMoves != 27 {
		t.Fatalf("expected 27 average moves, got %f", sum.AverageMoves)
	}
	if sum.AverageDuration != 90*time.Second {
		t.Fatalf("expected 90s average, got %s", sum.AverageDuration)
	}
	total := 0
	for _, n := range sum.GamesPerDay {
		total += n
	}
	if total != 2 {
		t.Fatalf("expected 2 games across days, got %v", sum.GamesPerDay)
	}
}

func TestPublishErrorIsLogged(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &Producer{writer: w}
	p.GameStarted(context.Background(), "g1")
	if len(w.msgs) != 0 {
		t.Fatalf("expected no messages")
	}
}

func TestConsumeRejectsGarbage(t *testing.T) {
	if _, err := NewStats().Consume([]byte("{")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFinishedWithoutMovesStillCounts(t *testing.T) {
	stats := NewStats()
	stats.Record(Event{
		Event:   EventGameFinished,
		Payload: map[string]any{"outcome": string(game.OutcomeHumanWins)},
	})
	stats.Record(Event{
		Event:   EventGameFinished,
		Payload: map[string]any{"outcome": string(game.OutcomeDraw), "moves": float64(42)},
	})
	sum := stats.Summary()
	if sum.GamesFinished != 2 || sum.HumanWins+sum.ComputerWins+sum.Draws != 2 {
		t.Fatalf("finished count disagrees with outcomes: %+v", sum)
	}
	if sum.AverageMoves != 42 {
		t.Fatalf("expected 42 average moves, got %f", sum.AverageMoves)
	}
}
