// Package orders persists placed orders and their delivery state.
package orders

import (
	"context"
	"errors"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// ListByCustomer is the purchase history screen; ListAll backs the
	// stock-manager and delivery views.
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)

	// SetDeliveryProof records the proof reference and marks the order
	// delivered.
	SetDeliveryProof(ctx context.Context, id uuid.UUID, proofURI string) error
}
