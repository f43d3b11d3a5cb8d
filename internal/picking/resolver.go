package picking

import (
	"context"
	"fmt"

	"github.com/pickdesk/pickdesk/internal/catalog"
)

// Resolution is the outcome of mapping a barcode to a catalog product.
type Resolution struct {
	// Product is set when the barcode resolved to exactly one product,
	// either trivially or through a remembered session default.
	Product *catalog.Product
	// Candidates holds all products sharing the barcode, in catalog order,
	// when the picker must choose. Empty unless NeedsChoice.
	Candidates []catalog.Product
	// NeedsChoice is true when the workflow must suspend for a user prompt.
	NeedsChoice bool
	// Remembered is true when a session default short-circuited the prompt.
	Remembered bool
}

// Resolver maps barcodes to products over a catalog that does not guarantee
// barcode uniqueness. Session defaults are an explicit injected dependency,
// never ambient state.
type Resolver struct {
	catalog  catalog.Repository
	sessions SessionStore
}

// NewResolver builds a Resolver.
func NewResolver(catalogRepo catalog.Repository, sessions SessionStore) *Resolver {
	return &Resolver{catalog: catalogRepo, sessions: sessions}
}

// Resolve determines the product a scanned barcode refers to.
//
// Zero matches return ErrUnknownBarcode. A single match resolves trivially.
// Multiple matches resolve through the session default when one is remembered
// and still among the matches; otherwise the caller must prompt with the
// returned candidates and come back through Choose.
func (r *Resolver) Resolve(ctx context.Context, sessionID, barcode string) (Resolution, error) {
	matches, err := r.catalog.FindByBarcode(ctx, barcode)
	if err != nil {
		return Resolution{}, fmt.Errorf("find by barcode: %w", err)
	}

	switch len(matches) {
	case 0:
		return Resolution{}, ErrUnknownBarcode
	case 1:
		product := matches[0]
		return Resolution{Product: &product}, nil
	}

	productID, ok, err := r.sessions.DefaultProduct(ctx, sessionID, barcode)
	if err != nil {
		return Resolution{}, fmt.Errorf("session default lookup: %w", err)
	}
	if ok {
		for i := range matches {
			if matches[i].ID == productID {
				product := matches[i]
				return Resolution{Product: &product, Remembered: true}, nil
			}
		}
		// Stale default: the remembered product no longer carries this
		// barcode, so fall through to the prompt.
	}

	return Resolution{Candidates: matches, NeedsChoice: true}, nil
}

// Choose records the picker's answer to an ambiguity prompt. The chosen
// product must be among the current matches for the barcode. With remember
// set, repeat scans of the same code in this session skip the prompt.
func (r *Resolver) Choose(ctx context.Context, sessionID, barcode string, productID int64, remember bool) (*catalog.Product, error) {
	matches, err := r.catalog.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("find by barcode: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrUnknownBarcode
	}

	for i := range matches {
		if matches[i].ID == productID {
			if remember {
				if err := r.sessions.RememberDefault(ctx, sessionID, barcode, productID); err != nil {
					return nil, fmt.Errorf("remember default: %w", err)
				}
			}
			product := matches[i]
			return &product, nil
		}
	}
	return nil, ErrNotCandidate
}
