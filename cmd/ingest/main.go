package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ck "github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"

	"orderqa/internal/blob"
	"orderqa/internal/config"
	"orderqa/internal/ingest"
	"orderqa/internal/metrics"
)

func main() {
	cfg := config.LoadIngest()

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("ingest worker failed", zap.Error(err))
	}
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg config.Ingest, logger *zap.Logger) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	mreg := metrics.NewRegistry()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", mreg.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		_ = http.ListenAndServe(cfg.MetricsAddr, mux)
	}()

	h := ingest.NewHandler(store, logger, mreg)

	c, err := ck.NewConsumer(&ck.ConfigMap{
		"bootstrap.servers":  strings.Join(cfg.Brokers, ","),
		"group.id":           cfg.GroupID,
		"enable.auto.commit": false,
		"auto.offset.reset":  "earliest",
	})
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.SubscribeTopics([]string{cfg.Topic}, nil); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("ingest worker started",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
		zap.String("backend", cfg.Backend))

	for ctx.Err() == nil {
		msg, err := c.ReadMessage(time.Second)
		if err != nil {
			// No message within the poll window; keep going.
			continue
		}
		if err := h.Handle(msg.Value); err != nil {
			// Isolated failure: log it and leave the offset uncommitted
			// so the event is retried. Other events keep flowing.
			logger.Error("event not stored", zap.Error(err))
			continue
		}
		if _, err := c.CommitMessage(msg); err != nil {
			logger.Error("commit failed", zap.Error(err))
		}
	}

	logger.Info("ingest worker stopped")
	return nil
}

func openStore(cfg config.Ingest) (blob.Store, error) {
	if cfg.Backend == "pebble" {
		return blob.NewPebbleStore(cfg.PebbleDir)
	}
	return blob.NewFilesystemStore(cfg.BlobDir), nil
}
