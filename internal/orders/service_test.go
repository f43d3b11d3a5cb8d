package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pickdesk/pickdesk/internal/catalog"
)

func newTestService(t *testing.T) (*Service, *catalog.MemoryRepository) {
	t.Helper()
	catalogRepo := catalog.NewMemoryRepository()
	seed := []catalog.Product{
		{Name: "Premium Dog Food 15kg", Category: catalog.CategoryFood, Stock: 10, Price: 58.9, Barcode: "7798123456789"},
		{Name: "Cat Litter 10L", Category: catalog.CategoryAccessories, Stock: 5, Price: 12.0, Barcode: "7791234500011"},
	}
	for _, p := range seed {
		_, err := catalogRepo.Add(p)
		require.NoError(t, err)
	}
	return NewService(NewMemoryRepository(catalogRepo), catalogRepo), catalogRepo
}

func TestCreateOrderComputesTotalAtCreation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreateOrderRequest{
		Customer: CreateCustomerRequest{Name: "Veterinaria San Martin", Phone: "555-0101", Address: "Av. Rivadavia 1200"},
		Items: []CreateOrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.True(t, strings.HasPrefix(order.OrderNumber, "PD-"))
	require.InDelta(t, 2*58.9+12.0, order.TotalValue, 0.001)
	require.Len(t, order.Items, 2)
	require.Equal(t, 1, order.Items[0].LineOrder)
	require.Equal(t, 2, order.Items[1].LineOrder)
	require.Equal(t, "Premium Dog Food 15kg", order.Items[0].Product.Name)
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Customer: CreateCustomerRequest{Name: "x", Phone: "y", Address: "z"},
		Items:    []CreateOrderItemRequest{{ProductID: 99, Quantity: 1}},
	})
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestListFiltersByStatusAndAssignee(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateOrderRequest{
		Customer: CreateCustomerRequest{Name: "a", Phone: "1", Address: "aa"},
		Items:    []CreateOrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateOrderRequest{
		Customer: CreateCustomerRequest{Name: "b", Phone: "2", Address: "bb"},
		Items:    []CreateOrderItemRequest{{ProductID: 2, Quantity: 1}},
	})
	require.NoError(t, err)

	pending := StatusPending
	result, total, err := svc.List(ctx, ListOrdersRequest{Status: &pending})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, result, 2)

	inProgress := StatusInProgress
	_, total, err = svc.List(ctx, ListOrdersRequest{Status: &inProgress})
	require.NoError(t, err)
	require.Zero(t, total)

	got, err := svc.GetByNumber(ctx, first.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)

	_, err = svc.GetByNumber(ctx, "PD-0000-9999")
	require.ErrorIs(t, err, ErrNotFound)
}
