package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitquality/storefront/internal/catalog"
	"github.com/fitquality/storefront/internal/domain"
	"github.com/fitquality/storefront/internal/session"
)

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Identity
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]domain.Identity)}
}

func (s *memorySessionStore) Save(_ context.Context, token string, identity domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = identity
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, token string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.sessions[token]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return &identity, nil
}

func (s *memorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

type memoryCatalog struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
}

func newMemoryCatalog(products ...*domain.Product) *memoryCatalog {
	c := &memoryCatalog{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *memoryCatalog) Products(_ context.Context) ([]*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := make([]*domain.Product, 0, len(c.products))
	for _, p := range c.products {
		copied := *p
		list = append(list, &copied)
	}
	return list, nil
}

func (c *memoryCatalog) Product(_ context.Context, id int64) (*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (c *memoryCatalog) CreateProduct(_ context.Context, p *domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p.ID = int64(len(c.products) + 1)
	p.CreatedAt = time.Now()
	copied := *p
	c.products[p.ID] = &copied
	return nil
}

func (c *memoryCatalog) UpdateProduct(_ context.Context, p *domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[p.ID]; !ok {
		return catalog.ErrProductNotFound
	}
	copied := *p
	c.products[p.ID] = &copied
	return nil
}

func (c *memoryCatalog) DeleteProduct(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(c.products, id)
	return nil
}

func (c *memoryCatalog) CurrentStock(_ context.Context, id int64) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return 0, catalog.ErrProductNotFound
	}
	return p.Stock, nil
}

func (c *memoryCatalog) DecrementStock(_ context.Context, id int64, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return catalog.ErrProductNotFound
	}
	if p.Stock < quantity {
		return catalog.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

type memoryOrderSink struct {
	mu     sync.Mutex
	placed []*domain.Order
}

func (s *memoryOrderSink) PlaceOrder(_ context.Context, purchaser domain.Identity, shippingAddress string, items []domain.OrderItem) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
		Currency:        "CLP",
		Items:           items,
		CreatedAt:       time.Now(),
	}
	s.placed = append(s.placed, order)
	return order, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (p *recordingPublisher) OrderPlaced(_ context.Context, order *domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.orders = append(p.orders, order)
	return nil
}
