package store

import (
	"context"
	"errors"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
)

// ErrNotFound is returned when an update or delete references an
// identifier that no record carries.
var ErrNotFound = errors.New("record not found")

// Catalog is the product repository. The HTTP layer only ever sees
// this interface, never a concrete backend.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, p models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// Orders is the order repository. Implementations list orders newest
// first and never expose update or delete.
type Orders interface {
	InsertOrder(ctx context.Context, o models.Order) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}
