package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/pickdesk/pickdesk/internal/catalog"
)

// Status represents the fulfillment lifecycle of an order.
type Status string

const (
	StatusPending         Status = "pending"
	StatusInProgress      Status = "in_progress"
	StatusCompleted       Status = "completed"
	StatusReadyForBilling Status = "ready_for_billing"
	StatusBilled          Status = "billed"
	StatusCancelled       Status = "cancelled"
)

// IsValid checks if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusReadyForBilling, StatusBilled, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanCancel reports whether an order in this status may still be cancelled.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusInProgress
}

// Customer identifies the order recipient.
type Customer struct {
	Name         string  `json:"name" db:"customer_name"`
	Phone        string  `json:"phone" db:"customer_phone"`
	Address      string  `json:"address" db:"customer_address"`
	DeliveryZone *string `json:"delivery_zone,omitempty" db:"delivery_zone"`
}

// Item is one product line within an order. ScannedQuantity never exceeds
// Quantity, and Scanned is true exactly when the two are equal.
type Item struct {
	ID              int64           `json:"id" db:"id"`
	OrderID         int64           `json:"order_id" db:"order_id"`
	ProductID       int64           `json:"product_id" db:"product_id"`
	Product         catalog.Product `json:"product" db:"-"`
	Quantity        int             `json:"quantity" db:"quantity"`
	ScannedQuantity int             `json:"scanned_quantity" db:"scanned_quantity"`
	Scanned         bool            `json:"scanned" db:"scanned"`
	ScannedAt       *time.Time      `json:"scanned_at,omitempty" db:"scanned_at"`
	LineOrder       int             `json:"line_order" db:"line_order"`
}

// Order is a customer purchase request being fulfilled by a picker. The order
// exclusively owns its items; they are only mutated through order methods.
type Order struct {
	ID          int64      `json:"id" db:"id"`
	OrderNumber string     `json:"order_number" db:"order_number"`
	Customer    Customer   `json:"customer"`
	Items       []Item     `json:"items" db:"-"`
	Status      Status     `json:"status" db:"status"`
	TotalValue  float64    `json:"total_value" db:"total_value"`
	AssignedTo  *string    `json:"assigned_to,omitempty" db:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty" db:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

var (
	// ErrNotFound indicates the order does not exist.
	ErrNotFound = errors.New("orders: order not found")
	// ErrItemNotFound indicates the item does not belong to the order.
	ErrItemNotFound = errors.New("orders: item not found")
	// ErrInvalidTransition signals a transition attempted from a state that
	// does not permit it. This is a contract violation, not a user mistake.
	ErrInvalidTransition = errors.New("orders: invalid status transition")
)

// Accept moves a pending order into progress and records the picker. Calling
// it on an order already past pending is a no-op; accepting a cancelled order
// is rejected.
func (o *Order) Accept(picker string, now time.Time) error {
	switch o.Status {
	case StatusPending:
		o.Status = StatusInProgress
		o.AssignedTo = &picker
		o.AssignedAt = &now
		return nil
	case StatusInProgress, StatusCompleted, StatusReadyForBilling, StatusBilled:
		return nil
	default:
		return fmt.Errorf("%w: cannot accept order in status %s", ErrInvalidTransition, o.Status)
	}
}

// ApplyScan adds a confirmed quantity delta to one item. The new scanned
// quantity is clamped to the requested quantity; excess is never an error.
// When every item is fully scanned the order flips to completed. Returns true
// when this call completed the order.
func (o *Order) ApplyScan(itemID int64, delta int, now time.Time) (bool, error) {
	if o.Status != StatusInProgress {
		return false, fmt.Errorf("%w: cannot apply scan in status %s", ErrInvalidTransition, o.Status)
	}
	if delta < 1 {
		return false, fmt.Errorf("orders: scan delta must be >= 1, got %d", delta)
	}

	idx := -1
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, ErrItemNotFound
	}

	item := &o.Items[idx]
	item.ScannedQuantity += delta
	if item.ScannedQuantity > item.Quantity {
		item.ScannedQuantity = item.Quantity
	}
	item.Scanned = item.ScannedQuantity == item.Quantity
	item.ScannedAt = &now

	// Completion is re-checked after every apply, not just the last expected one.
	if !o.allItemsScanned() {
		return false, nil
	}
	o.Status = StatusCompleted
	o.CompletedAt = &now
	return true, nil
}

// SendToBilling moves a completed order to ready_for_billing. Repeating the
// call while already ready is a no-op so no duplicate billing artifacts arise.
func (o *Order) SendToBilling() error {
	switch o.Status {
	case StatusCompleted:
		o.Status = StatusReadyForBilling
		return nil
	case StatusReadyForBilling:
		return nil
	default:
		return fmt.Errorf("%w: cannot send to billing in status %s", ErrInvalidTransition, o.Status)
	}
}

// Bill finalizes a ready_for_billing order. Terminal for this workflow.
func (o *Order) Bill() error {
	if o.Status != StatusReadyForBilling {
		return fmt.Errorf("%w: cannot bill order in status %s", ErrInvalidTransition, o.Status)
	}
	o.Status = StatusBilled
	return nil
}

// Cancel aborts an order that has not yet completed picking.
func (o *Order) Cancel() error {
	if !o.Status.CanCancel() {
		return fmt.Errorf("%w: cannot cancel order in status %s", ErrInvalidTransition, o.Status)
	}
	o.Status = StatusCancelled
	return nil
}

// Item returns the item with the given id.
func (o *Order) Item(itemID int64) (*Item, error) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, ErrItemNotFound
}

func (o *Order) allItemsScanned() bool {
	for i := range o.Items {
		if !o.Items[i].Scanned {
			return false
		}
	}
	return len(o.Items) > 0
}
