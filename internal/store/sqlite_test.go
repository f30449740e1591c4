package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteProductRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, models.Product{
		Name:        "Blackberry Jam",
		Description: "Small-batch jam",
		Price:       8.5,
		Category:    "pantry",
		Image:       "/images/jam.jpg",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created, products[0])
}

func TestSQLiteProductIDsUnique(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		created, err := s.CreateProduct(ctx, models.Product{Name: "p"})
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "id %s assigned twice", created.ID)
		seen[created.ID] = true
	}
}

func TestSQLiteUpdateProductInPlace(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, models.Product{Name: "Soap", Price: 6})
	require.NoError(t, err)

	err = s.UpdateProduct(ctx, created.ID, models.Product{
		Name:     "Goat Milk Soap",
		Price:    7,
		Category: "bath",
	})
	require.NoError(t, err)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)
	assert.Equal(t, "Goat Milk Soap", products[0].Name)
	assert.Equal(t, 7.0, products[0].Price)
	assert.Equal(t, "bath", products[0].Category)
}

func TestSQLiteMissingIDsSurfaceNotFound(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.UpdateProduct(ctx, "999", models.Product{Name: "x"}), ErrNotFound)
	assert.ErrorIs(t, s.DeleteProduct(ctx, "999"), ErrNotFound)
	assert.ErrorIs(t, s.UpdateProduct(ctx, "not-a-number", models.Product{}), ErrNotFound)
}

func TestSQLiteDeleteProduct(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, models.Product{Name: "Candle"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(ctx, created.ID))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSQLiteOrdersNewestFirst(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.InsertOrder(ctx, models.Order{
			CustomerName:  "Customer",
			CustomerEmail: "c@example.com",
			Address:       "1 Farm Rd, Boone, NC, 28607",
			Items:         []models.OrderItem{{Name: "jam", Quantity: 1, Price: 8.5}},
			Total:         8.5,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 0; i < len(orders)-1; i++ {
		assert.True(t, !orders[i].CreatedAt.Before(orders[i+1].CreatedAt),
			"orders out of order at %d", i)
	}
}

func TestSQLiteOrderItemsSurviveBlobEncoding(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	items := []models.OrderItem{
		{Name: "jam", Quantity: 2, Price: 8.5},
		{Name: "soap", Quantity: 1, Price: 6},
	}
	stored, err := s.InsertOrder(ctx, models.Order{
		CustomerName:  "Tiffany",
		CustomerEmail: "t@example.com",
		Address:       "1 Farm Rd, Boone, NC, 28607",
		Items:         items,
		Total:         23,
		CreatedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, items, orders[0].Items)
	assert.Equal(t, 23.0, orders[0].Total)
}
