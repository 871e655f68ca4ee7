package orders

import (
	"context"
	"time"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/google/uuid"
)

const currency = "CLP"

// Placer is the cart engine's order sink. It freezes the purchaser and item
// snapshots into a new order and hands it to the repository.
type Placer struct {
	repo Repository
	now  func() time.Time
}

func NewPlacer(repo Repository) *Placer {
	return &Placer{repo: repo, now: time.Now}
}

func (p *Placer) PlaceOrder(ctx context.Context, purchaser domain.Identity, shippingAddress string, items []domain.OrderItem) (*domain.Order, error) {
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}

	order := &domain.Order{
		ID:              uuid.New(),
		CustomerID:      purchaser.UserID,
		CustomerName:    purchaser.Name,
		CustomerEmail:   purchaser.Email,
		CustomerPhone:   purchaser.Phone,
		ShippingAddress: shippingAddress,
		TotalAmount:     total,
		Currency:        currency,
		Items:           items,
		CreatedAt:       p.now(),
	}

	if err := p.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
