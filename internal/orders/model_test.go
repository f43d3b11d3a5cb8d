package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func twoLineOrder() *Order {
	return &Order{
		ID:          1,
		OrderNumber: "PD-2608-0001",
		Status:      StatusPending,
		Items: []Item{
			{ID: 1, OrderID: 1, ProductID: 10, Quantity: 3, LineOrder: 1},
			{ID: 2, OrderID: 1, ProductID: 11, Quantity: 1, LineOrder: 2},
		},
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted, StatusReadyForBilling, StatusBilled, StatusCancelled} {
		require.True(t, s.IsValid(), string(s))
	}
	require.False(t, Status("shipped").IsValid())
}

func TestAcceptTransitions(t *testing.T) {
	now := time.Now()

	order := twoLineOrder()
	require.NoError(t, order.Accept("maria", now))
	require.Equal(t, StatusInProgress, order.Status)
	require.Equal(t, "maria", *order.AssignedTo)
	require.Equal(t, now, *order.AssignedAt)

	// Accepting again keeps the original assignment.
	require.NoError(t, order.Accept("jorge", now.Add(time.Minute)))
	require.Equal(t, "maria", *order.AssignedTo)

	order = twoLineOrder()
	order.Status = StatusCancelled
	require.ErrorIs(t, order.Accept("maria", now), ErrInvalidTransition)
}

func TestApplyScanClampsToQuantity(t *testing.T) {
	now := time.Now()
	order := twoLineOrder()
	require.NoError(t, order.Accept("maria", now))

	completed, err := order.ApplyScan(1, 2, now)
	require.NoError(t, err)
	require.False(t, completed)
	require.Equal(t, 2, order.Items[0].ScannedQuantity)
	require.False(t, order.Items[0].Scanned)

	// Overshoot clamps to the requested quantity instead of erroring.
	completed, err = order.ApplyScan(1, 5, now)
	require.NoError(t, err)
	require.False(t, completed)
	require.Equal(t, 3, order.Items[0].ScannedQuantity)
	require.True(t, order.Items[0].Scanned)
	require.NotNil(t, order.Items[0].ScannedAt)
}

func TestApplyScanCompletesOrder(t *testing.T) {
	now := time.Now()
	order := twoLineOrder()
	require.NoError(t, order.Accept("maria", now))

	completed, err := order.ApplyScan(1, 3, now)
	require.NoError(t, err)
	require.False(t, completed)

	completed, err = order.ApplyScan(2, 1, now)
	require.NoError(t, err)
	require.True(t, completed)
	require.Equal(t, StatusCompleted, order.Status)
	require.Equal(t, now, *order.CompletedAt)
}

func TestApplyScanRejections(t *testing.T) {
	now := time.Now()

	order := twoLineOrder()
	_, err := order.ApplyScan(1, 1, now)
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, order.Accept("maria", now))
	_, err = order.ApplyScan(99, 1, now)
	require.ErrorIs(t, err, ErrItemNotFound)

	_, err = order.ApplyScan(1, 0, now)
	require.Error(t, err)
	require.Zero(t, order.Items[0].ScannedQuantity)
}

func TestBillingTransitions(t *testing.T) {
	order := twoLineOrder()
	order.Status = StatusCompleted

	require.NoError(t, order.SendToBilling())
	require.Equal(t, StatusReadyForBilling, order.Status)

	// Repeating is a no-op, never a duplicate promotion.
	require.NoError(t, order.SendToBilling())
	require.Equal(t, StatusReadyForBilling, order.Status)

	require.NoError(t, order.Bill())
	require.Equal(t, StatusBilled, order.Status)

	require.ErrorIs(t, order.Bill(), ErrInvalidTransition)
	require.ErrorIs(t, order.SendToBilling(), ErrInvalidTransition)
}

func TestSendToBillingRequiresCompleted(t *testing.T) {
	order := twoLineOrder()
	order.Status = StatusInProgress
	require.ErrorIs(t, order.SendToBilling(), ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	order := twoLineOrder()
	require.NoError(t, order.Cancel())
	require.Equal(t, StatusCancelled, order.Status)

	for _, s := range []Status{StatusCompleted, StatusReadyForBilling, StatusBilled, StatusCancelled} {
		order := twoLineOrder()
		order.Status = s
		require.ErrorIs(t, order.Cancel(), ErrInvalidTransition, string(s))
	}
}

func TestEmptyOrderNeverCompletes(t *testing.T) {
	order := &Order{ID: 1, Status: StatusInProgress}
	require.False(t, order.allItemsScanned())
}
