package picking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pickdesk/pickdesk/internal/catalog"
)

const sharedBarcode = "9999999999999"

func newAmbiguousCatalog(t *testing.T) *catalog.MemoryRepository {
	t.Helper()
	repo := catalog.NewMemoryRepository()
	products := []catalog.Product{
		{Name: "Premium Dog Food 15kg", Category: catalog.CategoryFood, Stock: 10, Price: 58.9, Barcode: sharedBarcode},
		{Name: "Premium Dog Food 3kg", Category: catalog.CategoryFood, Stock: 20, Price: 16.5, Barcode: sharedBarcode},
		{Name: "Cat Litter 10L", Category: catalog.CategoryAccessories, Stock: 5, Price: 12.0, Barcode: "7791234500011"},
	}
	for _, p := range products {
		_, err := repo.Add(p)
		require.NoError(t, err)
	}
	return repo
}

func TestResolveUniqueBarcode(t *testing.T) {
	resolver := NewResolver(newAmbiguousCatalog(t), NewMemorySessionStore())

	res, err := resolver.Resolve(context.Background(), "sess-1", "7791234500011")
	require.NoError(t, err)
	require.False(t, res.NeedsChoice)
	require.NotNil(t, res.Product)
	require.Equal(t, "Cat Litter 10L", res.Product.Name)
}

func TestResolveUnknownBarcode(t *testing.T) {
	resolver := NewResolver(newAmbiguousCatalog(t), NewMemorySessionStore())

	_, err := resolver.Resolve(context.Background(), "sess-1", "1111111111111")
	require.ErrorIs(t, err, ErrUnknownBarcode)
}

func TestResolveAmbiguousPromptsInCatalogOrder(t *testing.T) {
	resolver := NewResolver(newAmbiguousCatalog(t), NewMemorySessionStore())

	res, err := resolver.Resolve(context.Background(), "sess-1", sharedBarcode)
	require.NoError(t, err)
	require.True(t, res.NeedsChoice)
	require.Nil(t, res.Product)
	require.Len(t, res.Candidates, 2)
	require.Equal(t, "Premium Dog Food 15kg", res.Candidates[0].Name)
	require.Equal(t, "Premium Dog Food 3kg", res.Candidates[1].Name)
}

func TestRememberedChoiceSkipsPrompt(t *testing.T) {
	catalogRepo := newAmbiguousCatalog(t)
	resolver := NewResolver(catalogRepo, NewMemorySessionStore())
	ctx := context.Background()

	res, err := resolver.Resolve(ctx, "sess-1", sharedBarcode)
	require.NoError(t, err)
	require.True(t, res.NeedsChoice)

	chosen, err := resolver.Choose(ctx, "sess-1", sharedBarcode, res.Candidates[1].ID, true)
	require.NoError(t, err)
	require.Equal(t, "Premium Dog Food 3kg", chosen.Name)

	// Second scan of the same code in the same session resolves directly.
	res, err = resolver.Resolve(ctx, "sess-1", sharedBarcode)
	require.NoError(t, err)
	require.False(t, res.NeedsChoice)
	require.True(t, res.Remembered)
	require.Equal(t, chosen.ID, res.Product.ID)

	// A different session still gets the prompt.
	res, err = resolver.Resolve(ctx, "sess-2", sharedBarcode)
	require.NoError(t, err)
	require.True(t, res.NeedsChoice)
}

func TestChooseWithoutRememberDoesNotPersist(t *testing.T) {
	resolver := NewResolver(newAmbiguousCatalog(t), NewMemorySessionStore())
	ctx := context.Background()

	res, err := resolver.Resolve(ctx, "sess-1", sharedBarcode)
	require.NoError(t, err)

	_, err = resolver.Choose(ctx, "sess-1", sharedBarcode, res.Candidates[0].ID, false)
	require.NoError(t, err)

	res, err = resolver.Resolve(ctx, "sess-1", sharedBarcode)
	require.NoError(t, err)
	require.True(t, res.NeedsChoice)
}

func TestChooseRejectsNonCandidate(t *testing.T) {
	catalogRepo := newAmbiguousCatalog(t)
	resolver := NewResolver(catalogRepo, NewMemorySessionStore())
	ctx := context.Background()

	// Product 3 exists but does not carry the shared barcode.
	_, err := resolver.Choose(ctx, "sess-1", sharedBarcode, 3, true)
	require.ErrorIs(t, err, ErrNotCandidate)
}

func TestStaleRememberedDefaultFallsBackToPrompt(t *testing.T) {
	catalogRepo := newAmbiguousCatalog(t)
	sessions := NewMemorySessionStore()
	resolver := NewResolver(catalogRepo, sessions)
	ctx := context.Background()

	// Remember a product id that is not among the current matches.
	require.NoError(t, sessions.RememberDefault(ctx, "sess-1", sharedBarcode, 999))

	res, err := resolver.Resolve(ctx, "sess-1", sharedBarcode)
	require.NoError(t, err)
	require.True(t, res.NeedsChoice)
}
