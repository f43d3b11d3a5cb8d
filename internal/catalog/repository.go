package catalog

import "context"

// Repository abstracts product catalog access. Implementations must keep a
// stable catalog iteration order: FindByBarcode returns matches in that order
// so ambiguous-barcode candidates present deterministically.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Product, int, error)
	Get(ctx context.Context, id int64) (*Product, error)
	FindByBarcode(ctx context.Context, barcode string) ([]Product, error)
	LowStock(ctx context.Context) ([]Product, error)
}

// ListFilter narrows catalog listings.
type ListFilter struct {
	Category *Category
	Search   string
	Limit    int
	Offset   int
}
