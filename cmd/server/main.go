package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"emittr/connect4/internal/analytics"
	"emittr/connect4/internal/config"
	"emittr/connect4/internal/game"
	"emittr/connect4/internal/server"
)

func main() {
	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)

	producer := analytics.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()
	if producer == nil {
		log.Println("analytics disabled: KAFKA_BROKERS not set")
	}

	newBot := func() *game.Bot {
		return &game.Bot{
			MaxDepth: cfg.BotDepth,
			Adaptive: cfg.BotAdaptive,
			Parallel: cfg.BotParallel,
		}
	}
	srv := server.New(server.Config{
		IdleTimeout: cfg.IdleTimeout,
		NewBot:      newBot,
		Analytics:   producer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("server listening on %s (bot depth=%d adaptive=%t parallel=%t)", cfg.Addr, cfg.BotDepth, cfg.BotAdaptive, cfg.BotParallel)
	if err := srv.Run(ctx, cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server exited gracefully")
}
