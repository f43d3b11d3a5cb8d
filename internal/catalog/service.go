package catalog

import (
	"context"
	"fmt"
)

// Service coordinates catalog reads.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns catalog products matching the filter plus the total count.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Product, int, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, 0, ErrInvalidCategory
	}
	return s.repo.List(ctx, filter)
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// FindByBarcode returns every product carrying the barcode, in catalog order.
// Zero, one, or several matches are all normal outcomes.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) ([]Product, error) {
	if barcode == "" {
		return nil, nil
	}
	return s.repo.FindByBarcode(ctx, barcode)
}

// LowStock returns products at or below their reorder threshold.
func (s *Service) LowStock(ctx context.Context) ([]Product, error) {
	return s.repo.LowStock(ctx)
}
