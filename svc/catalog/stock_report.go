package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// StockReport splits active products at or below their alert level.
type StockReport struct {
	OutOfStock []Product
	LowStock   []Product
}

// StockReporter logs a stock report on a cron schedule.
type StockReporter struct {
	svc     Service
	log     *slog.Logger
	timeout time.Duration
	cron    *cron.Cron
}

// NewStockReporter schedules Run with a standard cron spec or descriptor
// such as "@every 1h".
func NewStockReporter(svc Service, schedule string, log *slog.Logger) (*StockReporter, error) {
	if svc == nil {
		panic("catalog: service cannot be nil")
	}
	if log == nil {
		log = logger.NewNop()
	}

	r := &StockReporter{svc: svc, log: log, timeout: time.Minute, cron: cron.New()}
	if _, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		_, _ = r.Run(ctx)
	}); err != nil {
		return nil, fmt.Errorf("catalog: invalid stock report schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *StockReporter) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running report to finish or ctx
// to expire.
func (r *StockReporter) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Run builds and logs one report.
func (r *StockReporter) Run(ctx context.Context) (StockReport, error) {
	products, err := r.svc.LowStock(ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "stock report failed",
			logger.Component("stock_report"),
			logger.Error(err),
		)
		return StockReport{}, err
	}

	var report StockReport
	for _, p := range products {
		if p.Quantity == 0 {
			report.OutOfStock = append(report.OutOfStock, p)
		} else {
			report.LowStock = append(report.LowStock, p)
		}
	}

	for _, p := range report.OutOfStock {
		r.log.WarnContext(ctx, "product out of stock",
			logger.Component("stock_report"),
			logger.ProductID(p.ID),
			slog.String("name", p.Name),
		)
	}
	for _, p := range report.LowStock {
		r.log.WarnContext(ctx, "product low on stock",
			logger.Component("stock_report"),
			logger.ProductID(p.ID),
			slog.String("name", p.Name),
			slog.Int("quantity", p.Quantity),
			slog.Int("alert", p.LowStockAlert),
		)
	}
	r.log.InfoContext(ctx, "stock report",
		logger.Component("stock_report"),
		slog.Int("out_of_stock", len(report.OutOfStock)),
		slog.Int("low_stock", len(report.LowStock)),
	)
	return report, nil
}
