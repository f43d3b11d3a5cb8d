package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/pickdesk/pickdesk/internal/catalog"
)

// Service coordinates order creation and reads. Status transitions during
// picking belong to the picking controller, not here.
type Service struct {
	repo    Repository
	catalog catalog.Repository
}

// NewService builds Service.
func NewService(repo Repository, catalogRepo catalog.Repository) *Service {
	return &Service{repo: repo, catalog: catalogRepo}
}

// Create builds a pending order. The total value is computed once, at
// creation time, from current item prices; later catalog price changes do not
// retroactively reprice the order.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	orderNumber, err := s.repo.NextOrderNumber(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	order := Order{
		OrderNumber: orderNumber,
		Customer: Customer{
			Name:         req.Customer.Name,
			Phone:        req.Customer.Phone,
			Address:      req.Customer.Address,
			DeliveryZone: req.Customer.DeliveryZone,
		},
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	for i, itemReq := range req.Items {
		product, err := s.catalog.Get(ctx, itemReq.ProductID)
		if err != nil {
			return nil, fmt.Errorf("verify product %d: %w", itemReq.ProductID, err)
		}
		lineOrder := itemReq.LineOrder
		if lineOrder == 0 {
			lineOrder = i + 1
		}
		order.Items = append(order.Items, Item{
			ProductID: product.ID,
			Product:   *product,
			Quantity:  itemReq.Quantity,
			LineOrder: lineOrder,
		})
		order.TotalValue += product.Price * float64(itemReq.Quantity)
	}

	return s.repo.Create(ctx, order)
}

// Get returns one order with items.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// GetByNumber returns one order by its human-facing number.
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return s.repo.GetByNumber(ctx, orderNumber)
}

// List returns orders matching the filter plus the total count.
func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, req)
}
