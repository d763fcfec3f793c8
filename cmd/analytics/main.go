package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"emittr/connect4/internal/analytics"
	"emittr/connect4/internal/config"
)

func main() {
	broker := config.GetEnv("KAFKA_BROKER", "localhost:9092")
	topic := config.GetEnv("KAFKA_TOPIC", "game-events")

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: "analytics-consumer",
	})
	defer reader.Close()

	log.Printf("analytics consumer listening on %s topic=%s", broker, topic)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats := analytics.NewStats()

	// Print stats every 30 seconds
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats.Print()
			}
		}
	}()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				stats.Print()
				return
			}
			log.Fatalf("read error: %v", err)
		}
		e, err := stats.Consume(msg.Value)
		if err != nil {
			log.Printf("failed to unmarshal event: %v", err)
			continue
		}
		log.Printf("event=%s gameId=%v outcome=%v", e.Event, e.Payload["gameId"], e.Payload["outcome"])
	}
}
