// Package catalog is the product catalog: reads, stock-manager writes and
// the authoritative stock decrement used by checkout.
package catalog

import (
	"context"
	"errors"

	"github.com/fitquality/storefront/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Repository interface {
	Products(ctx context.Context) ([]*domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)

	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	// CurrentStock reads the live stock for one product.
	CurrentStock(ctx context.Context, id int64) (int, error)

	// DecrementStock atomically reduces stock by quantity. It fails with
	// ErrInsufficientStock, without applying anything, when fewer than
	// quantity units remain.
	DecrementStock(ctx context.Context, id int64, quantity int) error
}
