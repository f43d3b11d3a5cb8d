package picking

import (
	"context"
	"log/slog"

	"github.com/pickdesk/pickdesk/internal/orders"
)

// UpdateSink receives the fully-updated order after every status change or
// item mutation. The receiving layer decides what persisting or broadcasting
// means; the controller only emits.
type UpdateSink interface {
	OrderUpdated(ctx context.Context, order orders.Order) error
}

// LogSink writes order updates to the application log.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) OrderUpdated(ctx context.Context, order orders.Order) error {
	s.Logger.Info("order updated",
		slog.Int64("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("status", string(order.Status)),
	)
	return nil
}

// Sinks fans one update out to several sinks. A failing sink does not stop
// the others; the first error is returned.
type Sinks []UpdateSink

func (s Sinks) OrderUpdated(ctx context.Context, order orders.Order) error {
	var firstErr error
	for _, sink := range s {
		if err := sink.OrderUpdated(ctx, order); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
