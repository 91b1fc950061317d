package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"orderqa/internal/pipeline"
)

// Config holds CLI flags for the analysis run.
type Config struct {
	OrdersPath string
	ItemsPath  string
	OutputPath string
	SampleSize int
	Env        string
}

func main() {
	cfg := readFlags()

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}
}

func readFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.OrdersPath, "orders", "./data/olist_orders_dataset.csv", "orders CSV path")
	flag.StringVar(&cfg.ItemsPath, "items", "./data/olist_order_items_dataset.csv", "order items CSV path")
	flag.StringVar(&cfg.OutputPath, "out", "./out/integrated_data.csv", "merged output CSV path")
	flag.IntVar(&cfg.SampleSize, "sample", 0, "missing-order sample rows (0 = default)")
	flag.StringVar(&cfg.Env, "env", "development", "environment: development|production")
	flag.Parse()
	return cfg
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg Config, logger *zap.Logger) error {
	_, err := pipeline.Run(pipeline.Config{
		OrdersPath: cfg.OrdersPath,
		ItemsPath:  cfg.ItemsPath,
		OutputPath: cfg.OutputPath,
		SampleSize: cfg.SampleSize,
	}, logger, os.Stdout)
	return err
}
