package orders

import (
	"context"
	"fmt"
)

// SeedDemo creates a handful of pending orders over the demo catalog. Assumes
// the catalog was seeded first so the referenced product ids exist.
func SeedDemo(ctx context.Context, svc *Service) error {
	zone := "north"
	requests := []CreateOrderRequest{
		{
			Customer: CreateCustomerRequest{Name: "Clínica San Roque", Phone: "+54 911 4444 1001", Address: "Av. Rivadavia 2301", DeliveryZone: &zone},
			Items: []CreateOrderItemRequest{
				{ProductID: 1, Quantity: 3},
				{ProductID: 3, Quantity: 2},
				{ProductID: 4, Quantity: 6},
			},
		},
		{
			Customer: CreateCustomerRequest{Name: "Pet Shop Luna", Phone: "+54 911 4444 1002", Address: "Calle Belgrano 98"},
			Items: []CreateOrderItemRequest{
				{ProductID: 2, Quantity: 12},
				{ProductID: 5, Quantity: 4},
			},
		},
		{
			Customer: CreateCustomerRequest{Name: "Veterinaria del Parque", Phone: "+54 911 4444 1003", Address: "Av. del Libertador 450"},
			Items: []CreateOrderItemRequest{
				{ProductID: 7, Quantity: 2},
				{ProductID: 6, Quantity: 1},
				{ProductID: 8, Quantity: 5},
			},
		},
	}
	for i, req := range requests {
		if _, err := svc.Create(ctx, req); err != nil {
			return fmt.Errorf("seed order %d: %w", i+1, err)
		}
	}
	return nil
}
