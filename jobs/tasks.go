package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/pickdesk/pickdesk/internal/orders"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeOrderUpdated fans out a mutated order to downstream consumers.
	TaskTypeOrderUpdated = "orders:updated"
	// TaskTypeLowStockScan walks the catalog for products at reorder level.
	TaskTypeLowStockScan = "catalog:low_stock_scan"
	// TaskTypeStaleOrderSweep reports pending orders nobody has accepted.
	TaskTypeStaleOrderSweep = "orders:stale_sweep"
)

// OrderUpdatedPayload carries the full order snapshot after a mutation.
type OrderUpdatedPayload struct {
	Order orders.Order `json:"order"`
}

// StaleOrderSweepPayload parameterises the pending-order sweep.
type StaleOrderSweepPayload struct {
	OlderThanHours int `json:"older_than_hours"`
}

// NewOrderUpdatedTask constructs an order-updated task.
func NewOrderUpdatedTask(payload OrderUpdatedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeOrderUpdated, data), nil
}

// NewLowStockScanTask constructs a low-stock scan task.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeLowStockScan, nil)
}

// NewStaleOrderSweepTask constructs a stale-order sweep task.
func NewStaleOrderSweepTask(payload StaleOrderSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeStaleOrderSweep, data), nil
}
