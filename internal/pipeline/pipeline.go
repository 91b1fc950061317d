// Package pipeline composes the analysis stages into one deterministic
// batch run: load -> validate -> join -> (investigate, features) -> export.
// Each stage is a pure call on the previous stage's output; the first
// fatal error aborts the run before anything is written.
package pipeline

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"orderqa/internal/dataset"
	"orderqa/internal/export"
	"orderqa/internal/features"
	"orderqa/internal/join"
	"orderqa/internal/model"
	"orderqa/internal/report"
)

// Config is everything one run needs.
type Config struct {
	OrdersPath string
	ItemsPath  string
	OutputPath string
	SampleSize int // missing-order sample rows; 0 means the default
}

// Result holds the merged rows and every report a run produces.
type Result struct {
	Rows    []model.Merged
	Join    join.Report
	Missing join.MissingReport
	KPIs    features.KPIs
}

// Run executes the whole pipeline. The merged CSV is written only after all
// in-memory computation has succeeded; the console report goes to out.
func Run(cfg Config, logger *zap.Logger, out io.Writer) (*Result, error) {
	orders, err := dataset.LoadOrders(cfg.OrdersPath)
	if err != nil {
		return nil, err
	}
	if err := dataset.OrdersSchema().Validate(orders); err != nil {
		return nil, err
	}
	logger.Info("orders loaded and validated",
		zap.String("path", cfg.OrdersPath),
		zap.Int("rows", len(orders.Rows)))

	items, err := dataset.LoadItems(cfg.ItemsPath)
	if err != nil {
		return nil, err
	}
	if err := dataset.ItemsSchema().Validate(items); err != nil {
		return nil, err
	}
	logger.Info("items loaded and validated",
		zap.String("path", cfg.ItemsPath),
		zap.Int("rows", len(items.Rows)))

	rows, jr, err := join.Merge(orders.Rows, items.Rows)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	logger.Info("datasets merged",
		zap.Int("rows", jr.MergedRows),
		zap.Int("orders_lost", jr.OrdersLost),
		zap.Int("items_lost", jr.ItemsLost),
		zap.Float64("revenue_coverage_pct", jr.RevenueCoveragePct))

	mr := join.InvestigateMissing(orders.Rows, items.Rows, cfg.SampleSize)

	features.ExtractCalendar(rows)
	features.ComputeDurations(rows)
	kpis := features.ComputeKPIs(rows)

	if err := export.WriteCSV(cfg.OutputPath, rows); err != nil {
		return nil, err
	}
	logger.Info("merged table written", zap.String("path", cfg.OutputPath))

	res := &Result{Rows: rows, Join: jr, Missing: mr, KPIs: kpis}
	report.Render(out, rows, jr, mr, kpis)
	return res, nil
}
