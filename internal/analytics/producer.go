package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"emittr/connect4/internal/game"
)

const (
	EventGameStarted  = "game_started"
	EventMovePlayed   = "move_played"
	EventGameFinished = "game_finished"
)

// Event is the JSON body of every message on the topic.
type Event struct {
	Event     string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes game events. A nil Producer drops everything.
type Producer struct {
	writer messageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, event string, payload map[string]any) {
	if p == nil || p.writer == nil {
		return
	}
	body := Event{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	data, _ := json.Marshal(body)
	err := p.writer.WriteMessages(ctx, kafka.Message{Key: keyOf(payload), Value: data})
	if err != nil {
		log.Printf("kafka publish failed: %v", err)
	}
}

func (p *Producer) GameStarted(ctx context.Context, gameID string) {
	p.Publish(ctx, EventGameStarted, map[string]any{"gameId": gameID})
}

func (p *Producer) MovePlayed(ctx context.Context, gameID string, res game.MoveResult) {
	cols := make([]int, 0, len(res.Moves))
	for _, m := range res.Moves {
		cols = append(cols, m.Column)
	}
	p.Publish(ctx, EventMovePlayed, map[string]any{
		"gameId":  gameID,
		"columns": cols,
		"phase":   res.Phase,
		"outcome": res.Outcome,
	})
}

func (p *Producer) GameFinished(ctx context.Context, s game.Summary) {
	p.Publish(ctx, EventGameFinished, map[string]any{
		"gameId":    s.GameID,
		"outcome":   s.Outcome,
		"moves":     s.Moves,
		"duration":  s.EndedAt.Sub(s.StartedAt).Seconds(),
		"startedAt": s.StartedAt,
		"endedAt":   s.EndedAt,
	})
}

func (p *Producer) Close() {
	if p == nil || p.writer == nil {
		return
	}
	_ = p.writer.Close()
}

// keyOf keeps a game's events on one partition.
func keyOf(payload map[string]any) []byte {
	if id, ok := payload["gameId"].(string); ok {
		return []byte(id)
	}
	return nil
}
