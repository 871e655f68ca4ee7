package cart

import (
	"context"
	"errors"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/google/uuid"
)

// MockStockProvider implements StockProvider for testing
type MockStockProvider struct {
	Stock          map[int64]int
	StockErr       error
	DecrementErr   error
	StockCalls     int
	DecrementCalls int
	Decremented    map[int64]int
}

func (m *MockStockProvider) CurrentStock(_ context.Context, productID int64) (int, error) {
	m.StockCalls++
	if m.StockErr != nil {
		return 0, m.StockErr
	}
	stock, ok := m.Stock[productID]
	if !ok {
		return 0, errors.New("product not found")
	}
	return stock, nil
}

func (m *MockStockProvider) DecrementStock(_ context.Context, productID int64, quantity int) error {
	m.DecrementCalls++
	if m.DecrementErr != nil {
		return m.DecrementErr
	}
	if m.Decremented == nil {
		m.Decremented = make(map[int64]int)
	}
	m.Decremented[productID] += quantity
	m.Stock[productID] -= quantity
	return nil
}

// MockOrderSink implements OrderSink for testing
type MockOrderSink struct {
	Err         error
	PlacedCalls int
	Purchaser   *domain.Identity
	Address     string
	Items       []domain.OrderItem
}

func (m *MockOrderSink) PlaceOrder(_ context.Context, purchaser domain.Identity, shippingAddress string, items []domain.OrderItem) (*domain.Order, error) {
	m.PlacedCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	m.Purchaser = &purchaser
	m.Address = shippingAddress
	m.Items = items

	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	return &domain.Order{
		ID:              uuid.New(),
		CustomerID:      purchaser.UserID,
		CustomerName:    purchaser.Name,
		CustomerEmail:   purchaser.Email,
		ShippingAddress: shippingAddress,
		TotalAmount:     total,
		Currency:        "CLP",
		Items:           items,
	}, nil
}

// MockSessionAccessor implements SessionAccessor for testing
type MockSessionAccessor struct {
	Identity *domain.Identity
	Err      error
}

func (m *MockSessionAccessor) CurrentIdentity(_ context.Context) (*domain.Identity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Identity, nil
}

func testProduct(id int64, name string, price float64, stock int) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  name,
		Price: price,
		Stock: stock,
	}
}

func testEngine(stock *MockStockProvider, orders *MockOrderSink, session *MockSessionAccessor) *Engine {
	if stock == nil {
		stock = &MockStockProvider{Stock: map[int64]int{}}
	}
	if orders == nil {
		orders = &MockOrderSink{}
	}
	if session == nil {
		session = &MockSessionAccessor{
			Identity: &domain.Identity{UserID: 7, Name: "Ana", Email: "ana@example.com", Role: domain.RoleCustomer},
		}
	}
	return NewEngine(stock, orders, session)
}
