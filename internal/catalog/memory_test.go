package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func seededRepo(t *testing.T) *MemoryRepository {
	t.Helper()
	repo := NewMemoryRepository()
	seed := []Product{
		{Name: "Premium Dog Food 15kg", Category: CategoryFood, Stock: 10, MinStock: 3, Price: 58.9, Barcode: "7798123456789"},
		{Name: "Premium Dog Food 3kg", Category: CategoryFood, Stock: 20, MinStock: 5, Price: 16.5, Barcode: "7798123456789"},
		{Name: "Cat Litter 10L", Category: CategoryAccessories, Stock: 2, MinStock: 4, Price: 12.0, Barcode: "7791234500011"},
		{Name: "Flea Shampoo 250ml", Category: CategoryGrooming, Stock: 7, MinStock: 2, Price: 8.75, Barcode: "7791234500028"},
	}
	for _, p := range seed {
		_, err := repo.Add(p)
		require.NoError(t, err)
	}
	return repo
}

func TestAddValidatesProduct(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Add(Product{Name: "x", Category: "weapons", Stock: 1, Price: 1, Barcode: "1"})
	require.ErrorIs(t, err, ErrInvalidCategory)

	_, err = repo.Add(Product{Name: "x", Category: CategoryFood, Stock: -1, Price: 1, Barcode: "1"})
	require.ErrorIs(t, err, ErrNegativeStock)

	p, err := repo.Add(Product{Name: "x", Category: CategoryFood, Stock: 1, Price: 1, Barcode: "1"})
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)
	require.False(t, p.LastUpdated.IsZero())
}

func TestFindByBarcodeKeepsCatalogOrder(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	matches, err := repo.FindByBarcode(ctx, "7798123456789")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "Premium Dog Food 15kg", matches[0].Name)
	require.Equal(t, "Premium Dog Food 3kg", matches[1].Name)

	matches, err = repo.FindByBarcode(ctx, "0000000000000")
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestGet(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	p, err := repo.Get(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "Cat Litter 10L", p.Name)

	_, err = repo.Get(ctx, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	food := CategoryFood
	result, total, err := repo.List(ctx, ListFilter{Category: &food})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, result, 2)

	result, total, err = repo.List(ctx, ListFilter{Search: "litter"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Cat Litter 10L", result[0].Name)

	result, total, err = repo.List(ctx, ListFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Len(t, result, 2)
	require.Equal(t, "Cat Litter 10L", result[0].Name)
}

func TestLowStock(t *testing.T) {
	repo := seededRepo(t)

	low, err := repo.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "Cat Litter 10L", low[0].Name)
}
