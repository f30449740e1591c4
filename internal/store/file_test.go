package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
)

func sampleOrder(ts time.Time) models.Order {
	return models.Order{
		CustomerName:  "Customer",
		CustomerEmail: "c@example.com",
		Address:       "1 Farm Rd, Boone, NC, 28607",
		Items:         []models.OrderItem{{Name: "jam", Quantity: 1, Price: 8.5}},
		Total:         8.5,
		CreatedAt:     ts,
	}
}

func TestFileOrdersEmptyWithoutFile(t *testing.T) {
	s := NewFileOrders(filepath.Join(t.TempDir(), "orders.json"))

	orders, err := s.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileOrdersAssignsUniqueIDs(t *testing.T) {
	s := NewFileOrders(filepath.Join(t.TempDir(), "orders.json"))
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		stored, err := s.InsertOrder(ctx, sampleOrder(time.Now().UTC()))
		require.NoError(t, err)
		require.NotEmpty(t, stored.ID)
		assert.False(t, seen[stored.ID], "id %s assigned twice", stored.ID)
		seen[stored.ID] = true
	}
}

func TestFileOrdersSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	ctx := context.Background()

	first := NewFileOrders(path)
	stored, err := first.InsertOrder(ctx, sampleOrder(time.Now().UTC()))
	require.NoError(t, err)

	second := NewFileOrders(path)
	orders, err := second.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, stored.ID, orders[0].ID)
}

func TestFileOrdersNewestFirst(t *testing.T) {
	s := NewFileOrders(filepath.Join(t.TempDir(), "orders.json"))
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.InsertOrder(ctx, sampleOrder(base.Add(time.Duration(i)*time.Hour)))
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

func TestFileOrdersConcurrentInsertsAllPersist(t *testing.T) {
	s := NewFileOrders(filepath.Join(t.TempDir(), "orders.json"))
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.InsertOrder(ctx, sampleOrder(time.Now().UTC()))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, writers)
}
