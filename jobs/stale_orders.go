package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/pickdesk/pickdesk/internal/jobs"
	"github.com/pickdesk/pickdesk/internal/orders"
)

// defaultStaleHours applies when a sweep task carries no threshold.
const defaultStaleHours = 4

// StaleOrderSweepJob reports pending orders that no picker has accepted.
type StaleOrderSweepJob struct {
	orders  orders.Repository
	metrics *jobmetrics.Metrics
	logger  *slog.Logger
}

// NewStaleOrderSweepJob constructs the job.
func NewStaleOrderSweepJob(repo orders.Repository, metrics *jobmetrics.Metrics, logger *slog.Logger) *StaleOrderSweepJob {
	return &StaleOrderSweepJob{orders: repo, metrics: metrics, logger: logger}
}

// Handle processes TaskTypeStaleOrderSweep tasks.
func (j *StaleOrderSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track(TaskTypeStaleOrderSweep)

	payload := StaleOrderSweepPayload{OlderThanHours: defaultStaleHours}
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	if payload.OlderThanHours <= 0 {
		payload.OlderThanHours = defaultStaleHours
	}

	stale, err := j.orders.StalePending(ctx, payload.OlderThanHours)
	if err != nil {
		return tracker.End(err)
	}
	for _, order := range stale {
		j.logger.Warn("pending order unaccepted",
			slog.Int64("order_id", order.ID),
			slog.String("order_number", order.OrderNumber),
			slog.Time("created_at", order.CreatedAt),
		)
	}
	j.metrics.AddFlagged(TaskTypeStaleOrderSweep, len(stale))
	j.logger.Info("stale order sweep finished", slog.Int("flagged", len(stale)))
	return tracker.End(nil)
}
