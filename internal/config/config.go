// Package config loads the ingest worker's configuration from environment
// variables, with a .env file honored when present.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Ingest holds everything the ingest worker needs.
type Ingest struct {
	Env         string
	Brokers     []string
	Topic       string
	GroupID     string
	Backend     string // file|pebble
	BlobDir     string
	PebbleDir   string
	MetricsAddr string
}

// LoadIngest reads the worker configuration. Every value has a local-dev
// default so the worker starts with no environment at all.
func LoadIngest() Ingest {
	_ = godotenv.Load()

	return Ingest{
		Env:         getEnv("ENV", "development"),
		Brokers:     strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		Topic:       getEnv("KAFKA_TOPIC_ORDER_EVENTS", "order-events"),
		GroupID:     getEnv("KAFKA_CONSUMER_GROUP", "order-ingest"),
		Backend:     getEnv("BLOB_BACKEND", "file"),
		BlobDir:     getEnv("BLOB_DIR", "./data/events"),
		PebbleDir:   getEnv("PEBBLE_DIR", "./data/pebble"),
		MetricsAddr: getEnv("METRICS_ADDR", ":8080"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
