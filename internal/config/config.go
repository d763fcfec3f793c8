package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"emittr/connect4/internal/game"
)

type Config struct {
	Addr        string
	IdleTimeout time.Duration

	BotDepth    int
	BotAdaptive bool
	BotParallel bool

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads .env if present and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// PORT first (used by Render, Fly.io, Heroku, etc.)
	addr := GetEnv("ADDR", ":8080")
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	var brokers []string
	for _, b := range strings.Split(GetEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &Config{
		Addr:         addr,
		IdleTimeout:  DurationEnv("IDLE_TIMEOUT", 30*time.Minute),
		BotDepth:     GetEnvAsIntInRange("BOT_DEPTH", game.DefaultDepth, 1, game.MaxSearchDepth),
		BotAdaptive:  GetEnvAsBool("BOT_ADAPTIVE", false),
		BotParallel:  GetEnvAsBool("BOT_PARALLEL", false),
		KafkaBrokers: brokers,
		KafkaTopic:   GetEnv("KAFKA_TOPIC", "game-events"),
	}
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, v, fallback)
		return fallback
	}
	return n
}

// GetEnvAsIntInRange is GetEnvAsInt restricted to [lo, hi].
func GetEnvAsIntInRange(key string, fallback, lo, hi int) int {
	n := GetEnvAsInt(key, fallback)
	if n < lo || n > hi {
		log.Printf("Out of range value for %s: %d (want %d-%d), using default: %d", key, n, lo, hi, fallback)
		return fallback
	}
	return n
}

func GetEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %t", key, v, fallback)
		return fallback
	}
	return b
}

// DurationEnv reads whole seconds.
func DurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return time.Duration(parsed) * time.Second
		}
		log.Printf("Invalid duration value for %s: %s, using default: %s", key, v, fallback)
	}
	return fallback
}
