package catalog

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepository is an in-memory catalog used in demo mode and tests.
// Products keep their insertion order, which doubles as the catalog order
// exposed to barcode lookups.
type MemoryRepository struct {
	mu       sync.RWMutex
	products []Product
	nextID   int64
}

// NewMemoryRepository constructs an empty in-memory catalog.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Add inserts a product, assigning an id when absent.
func (r *MemoryRepository) Add(p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	} else if p.ID > r.nextID {
		r.nextID = p.ID
	}
	if p.LastUpdated.IsZero() {
		p.LastUpdated = time.Now()
	}
	r.products = append(r.products, p)
	return p, nil
}

func (r *MemoryRepository) List(ctx context.Context, filter ListFilter) ([]Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Product
	for _, p := range r.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) && p.Barcode != filter.Search {
				continue
			}
		}
		matched = append(matched, p)
	}

	total := len(matched)
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]Product, len(matched))
	copy(out, matched)
	return out, total, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) FindByBarcode(ctx context.Context, barcode string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []Product
	for _, p := range r.products {
		if p.Barcode == barcode {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (r *MemoryRepository) LowStock(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var low []Product
	for _, p := range r.products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}
