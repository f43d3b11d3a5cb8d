package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	jobmetrics "github.com/pickdesk/pickdesk/internal/jobs"
)

// orderFeedKey is the Redis list consumers poll for order updates.
const orderFeedKey = "orders:feed"

// orderFeedMax caps the feed length; older entries roll off.
const orderFeedMax = 1000

// OrderUpdatedJob publishes mutated orders onto the update feed. This is the
// broadcasting half of the update sink: the HTTP process enqueues, the worker
// lands the snapshot where dashboards and exports can read it.
type OrderUpdatedJob struct {
	redis   *redis.Client
	metrics *jobmetrics.Metrics
	logger  *slog.Logger
}

// NewOrderUpdatedJob constructs the job.
func NewOrderUpdatedJob(client *redis.Client, metrics *jobmetrics.Metrics, logger *slog.Logger) *OrderUpdatedJob {
	return &OrderUpdatedJob{redis: client, metrics: metrics, logger: logger}
}

// Handle processes TaskTypeOrderUpdated tasks.
func (j *OrderUpdatedJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track(TaskTypeOrderUpdated)

	var payload OrderUpdatedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	data, err := json.Marshal(payload.Order)
	if err != nil {
		return asynq.SkipRetry
	}
	pipe := j.redis.TxPipeline()
	pipe.LPush(ctx, orderFeedKey, data)
	pipe.LTrim(ctx, orderFeedKey, 0, orderFeedMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return tracker.End(err)
	}

	j.logger.Info("order update published",
		slog.Int64("order_id", payload.Order.ID),
		slog.String("status", string(payload.Order.Status)),
	)
	return tracker.End(nil)
}
