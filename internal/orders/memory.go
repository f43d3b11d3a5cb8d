package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pickdesk/pickdesk/internal/catalog"
)

// MemoryRepository is an in-memory order store used in demo mode and tests.
// A single mutex guards the map; multi-picker coordination beyond that is
// explicitly out of scope for this system.
type MemoryRepository struct {
	mu      sync.Mutex
	orders  map[int64]*Order
	catalog catalog.Repository
	nextID  int64
	nextItm int64
}

// NewMemoryRepository constructs an empty in-memory order repository.
func NewMemoryRepository(catalogRepo catalog.Repository) *MemoryRepository {
	return &MemoryRepository{orders: make(map[int64]*Order), catalog: catalogRepo}
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.clone(ctx, order)
}

func (r *MemoryRepository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return r.clone(ctx, order)
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*Order
	for _, order := range r.orders {
		if req.Status != nil && order.Status != *req.Status {
			continue
		}
		if req.AssignedTo != nil && (order.AssignedTo == nil || *order.AssignedTo != *req.AssignedTo) {
			continue
		}
		matched = append(matched, order)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	if req.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[req.Offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]Order, 0, len(matched))
	for _, order := range matched {
		cloned, err := r.clone(ctx, order)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *cloned)
	}
	return result, total, nil
}

func (r *MemoryRepository) Create(ctx context.Context, order Order) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	for i := range order.Items {
		r.nextItm++
		order.Items[i].ID = r.nextItm
		order.Items[i].OrderID = order.ID
		if order.Items[i].LineOrder == 0 {
			order.Items[i].LineOrder = i + 1
		}
	}
	stored := order
	r.orders[order.ID] = &stored
	return r.clone(ctx, &stored)
}

func (r *MemoryRepository) Save(ctx context.Context, order *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return ErrNotFound
	}
	stored := *order
	stored.Items = make([]Item, len(order.Items))
	copy(stored.Items, order.Items)
	r.orders[order.ID] = &stored
	return nil
}

func (r *MemoryRepository) StalePending(ctx context.Context, olderThanHours int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-time.Duration(olderThanHours) * time.Hour)
	var stale []Order
	for _, order := range r.orders {
		if order.Status == StatusPending && order.CreatedAt.Before(cutoff) {
			cloned, err := r.clone(ctx, order)
			if err != nil {
				return nil, err
			}
			stale = append(stale, *cloned)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].CreatedAt.Before(stale[j].CreatedAt) })
	return stale, nil
}

func (r *MemoryRepository) NextOrderNumber(ctx context.Context, date time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("PD-%s-%04d", date.Format("0601"), len(r.orders)+1), nil
}

// clone copies the order and hydrates item products from the catalog so
// callers never share memory with the store.
func (r *MemoryRepository) clone(ctx context.Context, order *Order) (*Order, error) {
	cloned := *order
	cloned.Items = make([]Item, len(order.Items))
	copy(cloned.Items, order.Items)
	for i := range cloned.Items {
		if cloned.Items[i].Product.ID == cloned.Items[i].ProductID && cloned.Items[i].Product.ID != 0 {
			continue
		}
		product, err := r.catalog.Get(ctx, cloned.Items[i].ProductID)
		if err != nil {
			return nil, fmt.Errorf("hydrate item product: %w", err)
		}
		cloned.Items[i].Product = *product
	}
	return &cloned, nil
}
