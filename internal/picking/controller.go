package picking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pickdesk/pickdesk/internal/catalog"
	"github.com/pickdesk/pickdesk/internal/orders"
)

// MetricsRecorder counts picking events. Implementations live in the
// observability package; a nil recorder disables counting.
type MetricsRecorder interface {
	ScanApplied()
	ScanMismatch()
	DecodeDiscarded()
	AmbiguityPrompted()
	OrderCompleted()
}

// ScanResult is the outcome of validating one scan before any mutation.
type ScanResult struct {
	// Discarded is true when every decode candidate failed the quality gate.
	// A discarded frame carries no user-visible error.
	Discarded bool `json:"discarded,omitempty"`
	// NeedsChoice signals an ambiguous barcode; Candidates holds the options
	// in catalog order and the workflow suspends until ChooseProduct.
	NeedsChoice bool              `json:"needs_choice,omitempty"`
	Candidates  []catalog.Product `json:"candidates,omitempty"`
	// Product is the resolved product once the scan is confirmed valid.
	Product    *catalog.Product `json:"product,omitempty"`
	Remembered bool             `json:"remembered,omitempty"`
	// QuickPicks are suggested quantities for the confirmation prompt.
	QuickPicks []int `json:"quick_picks,omitempty"`
}

// ApplyResult reports a confirmed quantity application.
type ApplyResult struct {
	Order *orders.Order `json:"order"`
	// Completed is true when this application finished the whole order.
	Completed bool `json:"completed"`
	// Warned flags quantities above the soft threshold. Never blocks.
	Warned bool `json:"warned,omitempty"`
}

// Controller orchestrates the fulfillment workflow: it gates decodes, matches
// scans, resolves ambiguity, applies confirmed quantities, and promotes order
// status. It is the only writer of order state during picking.
type Controller struct {
	repo     orders.Repository
	matcher  Matcher
	resolver *Resolver
	gate     Gate
	sink     UpdateSink
	metrics  MetricsRecorder
	logger   *slog.Logger
}

// NewController builds a Controller. Sink and metrics may be nil.
func NewController(repo orders.Repository, resolver *Resolver, gate Gate, sink UpdateSink, metrics MetricsRecorder, logger *slog.Logger) *Controller {
	return &Controller{
		repo:     repo,
		resolver: resolver,
		gate:     gate,
		sink:     sink,
		metrics:  metrics,
		logger:   logger,
	}
}

// Accept assigns a pending order to a picker and starts the session. Already
// accepted orders pass through unchanged.
func (c *Controller) Accept(ctx context.Context, orderID int64, picker string) (*orders.Order, error) {
	order, err := c.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	before := order.Status
	if err := order.Accept(picker, time.Now()); err != nil {
		return nil, err
	}
	if order.Status == before {
		return order, nil
	}

	if err := c.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save accepted order: %w", err)
	}
	c.emit(ctx, order)
	return order, nil
}

// ScanFrame feeds one camera frame's decode candidates through the quality
// gate and validates the first surviving code. A frame with no survivors is
// silently discarded.
func (c *Controller) ScanFrame(ctx context.Context, sessionID string, orderID, itemID int64, candidates []Candidate) (ScanResult, error) {
	codes := c.gate.Filter(candidates)
	if len(codes) == 0 {
		if c.metrics != nil {
			c.metrics.DecodeDiscarded()
		}
		return ScanResult{Discarded: true}, nil
	}
	return c.ScanCode(ctx, sessionID, orderID, itemID, codes[0])
}

// ScanCode validates a decoded or hand-typed barcode against the item being
// picked. No state is mutated here; a successful result moves the workflow to
// quantity confirmation.
func (c *Controller) ScanCode(ctx context.Context, sessionID string, orderID, itemID int64, code string) (ScanResult, error) {
	order, err := c.repo.Get(ctx, orderID)
	if err != nil {
		return ScanResult{}, err
	}
	if order.Status != orders.StatusInProgress {
		return ScanResult{}, fmt.Errorf("%w: cannot scan in status %s", orders.ErrInvalidTransition, order.Status)
	}
	item, err := order.Item(itemID)
	if err != nil {
		return ScanResult{}, err
	}

	if err := c.matcher.Match(code, *item); err != nil {
		if c.metrics != nil {
			c.metrics.ScanMismatch()
		}
		// Distinguish a wrong product from a code no product carries.
		known, lookupErr := c.resolver.catalog.FindByBarcode(ctx, code)
		if lookupErr == nil && len(known) == 0 {
			return ScanResult{}, fmt.Errorf("%w: %s", ErrUnknownBarcode, code)
		}
		return ScanResult{}, err
	}

	resolution, err := c.resolver.Resolve(ctx, sessionID, code)
	if err != nil {
		return ScanResult{}, err
	}
	if resolution.NeedsChoice {
		if c.metrics != nil {
			c.metrics.AmbiguityPrompted()
		}
		return ScanResult{NeedsChoice: true, Candidates: resolution.Candidates}, nil
	}

	return ScanResult{
		Product:    resolution.Product,
		Remembered: resolution.Remembered,
		QuickPicks: QuickPicks(),
	}, nil
}

// ChooseProduct answers an ambiguity prompt, optionally remembering the
// choice for the rest of the session.
func (c *Controller) ChooseProduct(ctx context.Context, sessionID, barcode string, productID int64, remember bool) (*catalog.Product, error) {
	return c.resolver.Choose(ctx, sessionID, barcode, productID, remember)
}

// ApplyQuantity applies a confirmed quantity to one item. The delta is
// clamped to the requested quantity, completion is re-checked immediately,
// and the updated order is persisted and emitted.
func (c *Controller) ApplyQuantity(ctx context.Context, orderID, itemID int64, quantity int) (ApplyResult, error) {
	warned, err := ValidateQuantity(quantity)
	if err != nil {
		return ApplyResult{}, err
	}

	order, err := c.repo.Get(ctx, orderID)
	if err != nil {
		return ApplyResult{}, err
	}

	completed, err := order.ApplyScan(itemID, quantity, time.Now())
	if err != nil {
		return ApplyResult{}, err
	}

	if err := c.repo.Save(ctx, order); err != nil {
		return ApplyResult{}, fmt.Errorf("save scanned order: %w", err)
	}
	if c.metrics != nil {
		c.metrics.ScanApplied()
		if completed {
			c.metrics.OrderCompleted()
		}
	}
	c.emit(ctx, order)
	return ApplyResult{Order: order, Completed: completed, Warned: warned}, nil
}

// SendToBilling promotes a completed order. Safe to repeat.
func (c *Controller) SendToBilling(ctx context.Context, orderID int64) (*orders.Order, error) {
	return c.transition(ctx, orderID, (*orders.Order).SendToBilling)
}

// Bill finalizes a ready_for_billing order.
func (c *Controller) Bill(ctx context.Context, orderID int64) (*orders.Order, error) {
	return c.transition(ctx, orderID, (*orders.Order).Bill)
}

// Cancel aborts an order still in the picking flow.
func (c *Controller) Cancel(ctx context.Context, orderID int64) (*orders.Order, error) {
	return c.transition(ctx, orderID, (*orders.Order).Cancel)
}

func (c *Controller) transition(ctx context.Context, orderID int64, fn func(*orders.Order) error) (*orders.Order, error) {
	order, err := c.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	before := order.Status
	if err := fn(order); err != nil {
		return nil, err
	}
	if order.Status == before {
		return order, nil
	}
	if err := c.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order transition: %w", err)
	}
	c.emit(ctx, order)
	return order, nil
}

func (c *Controller) emit(ctx context.Context, order *orders.Order) {
	if c.sink == nil {
		return
	}
	if err := c.sink.OrderUpdated(ctx, *order); err != nil && c.logger != nil {
		c.logger.Warn("order update sink", slog.Any("error", err), slog.Int64("order_id", order.ID))
	}
}

// IsUserFacing reports whether an error belongs to the recoverable,
// display-inline class rather than the contract-violation class.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrBarcodeMismatch) ||
		errors.Is(err, ErrUnknownBarcode) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrNotCandidate)
}
