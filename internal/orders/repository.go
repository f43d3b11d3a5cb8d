package orders

import (
	"context"
	"time"
)

// Repository abstracts order persistence. Save writes the full aggregate:
// status, timestamps, and per-item scan counters in one shot, matching the
// controller's emit-whole-order contract.
type Repository interface {
	Get(ctx context.Context, id int64) (*Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Create(ctx context.Context, order Order) (*Order, error)
	Save(ctx context.Context, order *Order) error
	StalePending(ctx context.Context, olderThanHours int) ([]Order, error)
	NextOrderNumber(ctx context.Context, date time.Time) (string, error)
}

// ListOrdersRequest filters order listings.
type ListOrdersRequest struct {
	Status     *Status
	AssignedTo *string
	Limit      int
	Offset     int
}
