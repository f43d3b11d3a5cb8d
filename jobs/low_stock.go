package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/pickdesk/pickdesk/internal/catalog"
	jobmetrics "github.com/pickdesk/pickdesk/internal/jobs"
)

// LowStockScanJob flags catalog products at or below their reorder threshold.
type LowStockScanJob struct {
	catalog catalog.Repository
	metrics *jobmetrics.Metrics
	logger  *slog.Logger
}

// NewLowStockScanJob constructs the job.
func NewLowStockScanJob(catalogRepo catalog.Repository, metrics *jobmetrics.Metrics, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{catalog: catalogRepo, metrics: metrics, logger: logger}
}

// Handle processes TaskTypeLowStockScan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track(TaskTypeLowStockScan)

	products, err := j.catalog.LowStock(ctx)
	if err != nil {
		return tracker.End(err)
	}
	for _, p := range products {
		j.logger.Warn("product at reorder level",
			slog.Int64("product_id", p.ID),
			slog.String("name", p.Name),
			slog.Int("stock", p.Stock),
			slog.Int("min_stock", p.MinStock),
		)
	}
	j.metrics.AddFlagged(TaskTypeLowStockScan, len(products))
	j.logger.Info("low stock scan finished", slog.Int("flagged", len(products)))
	return tracker.End(nil)
}
