package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/fitquality/storefront/internal/domain"
)

// StockProvider is the engine's view of the catalog: authoritative stock
// reads and decrements. Implementations own atomicity of the decrement.
type StockProvider interface {
	CurrentStock(ctx context.Context, productID int64) (int, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) error
}

// OrderSink accepts a finalized order and returns the persisted record.
type OrderSink interface {
	PlaceOrder(ctx context.Context, purchaser domain.Identity, shippingAddress string, items []domain.OrderItem) (*domain.Order, error)
}

// SessionAccessor resolves the purchaser behind the active session.
type SessionAccessor interface {
	CurrentIdentity(ctx context.Context) (*domain.Identity, error)
}

// Engine holds one user session's cart and runs the validate-then-commit
// stock reservation at checkout. Callers must serialize AttemptAdd, Remove,
// Clear and Checkout for a given engine; the engine does no locking of its
// own. The observable holders are safe to read from anywhere.
type Engine struct {
	stock   StockProvider
	orders  OrderSink
	session SessionAccessor

	lines *Observable[[]domain.CartLine]
	total *Observable[float64]
}

func NewEngine(stock StockProvider, orders OrderSink, session SessionAccessor) *Engine {
	return &Engine{
		stock:   stock,
		orders:  orders,
		session: session,
		lines:   NewObservable[[]domain.CartLine](nil),
		total:   NewObservable[float64](0),
	}
}

// Lines returns the current cart lines in insertion order.
func (e *Engine) Lines() []domain.CartLine {
	return e.lines.Get()
}

// Total returns the current cart total.
func (e *Engine) Total() float64 {
	return e.total.Get()
}

// WatchLines subscribes to cart line updates.
func (e *Engine) WatchLines() (<-chan []domain.CartLine, func()) {
	return e.lines.Watch()
}

// WatchTotal subscribes to cart total updates.
func (e *Engine) WatchTotal() (<-chan float64, func()) {
	return e.total.Watch()
}

// AttemptAdd adds quantity units of the product to the cart after checking
// the stock carried by the product snapshot. The check is advisory: it never
// touches the catalog and does not reserve anything. Two sessions can both
// pass it for the last unit; the real decrement is enforced at checkout.
func (e *Engine) AttemptAdd(product domain.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	if product.Stock <= 0 {
		return ErrOutOfStock
	}

	current := e.lines.Get()
	alreadyInCart := 0
	for _, line := range current {
		if line.Product.ID == product.ID {
			alreadyInCart = line.Quantity
			break
		}
	}

	if alreadyInCart+quantity > product.Stock {
		return &InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock - alreadyInCart,
		}
	}

	next := make([]domain.CartLine, 0, len(current)+1)
	merged := false
	for _, line := range current {
		if line.Product.ID == product.ID {
			line.Quantity += quantity
			merged = true
		}
		next = append(next, line)
	}
	if !merged {
		next = append(next, domain.CartLine{Product: product, Quantity: quantity})
	}

	e.publish(next)
	return nil
}

// Remove decrements the matching line by one unit, dropping the line when it
// reaches zero. Unknown product ids are a no-op.
func (e *Engine) Remove(productID int64) {
	current := e.lines.Get()
	next := make([]domain.CartLine, 0, len(current))
	for _, line := range current {
		if line.Product.ID == productID {
			line.Quantity--
			if line.Quantity <= 0 {
				continue
			}
		}
		next = append(next, line)
	}
	e.publish(next)
}

// Clear empties the cart. The engine never calls this itself: the caller
// decides when "order placed" becomes "cart emptied".
func (e *Engine) Clear() {
	e.publish(nil)
}

// Checkout converts the current cart into a persisted order.
//
// Preconditions fail fast with no catalog or order I/O. The reservation then
// runs in two phases: every line is validated against live stock before any
// decrement happens, so a single short line aborts the whole checkout with
// the catalog untouched. The commit phase has no compensating rollback; the
// catalog's conditional decrement keeps stock non-negative regardless.
func (e *Engine) Checkout(ctx context.Context, shippingAddress string) (*domain.Order, error) {
	lines := e.lines.Get()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, ErrMissingShippingAddress
	}

	purchaser, err := e.session.CurrentIdentity(ctx)
	if err != nil || purchaser == nil {
		return nil, ErrNoActiveSession
	}

	// Validation phase: all lines checked before anything mutates.
	for _, line := range lines {
		stock, err := e.stock.CurrentStock(ctx, line.Product.ID)
		if err != nil {
			return nil, &CheckoutError{cause: err}
		}
		if stock < line.Quantity {
			return nil, ErrInsufficientStock
		}
	}

	// Commit phase: line-by-line decrement.
	for _, line := range lines {
		if err := e.stock.DecrementStock(ctx, line.Product.ID, line.Quantity); err != nil {
			return nil, &CheckoutError{cause: err}
		}
	}

	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
		}
	}

	order, err := e.orders.PlaceOrder(ctx, *purchaser, shippingAddress, items)
	if err != nil {
		return nil, &CheckoutError{cause: err}
	}
	return order, nil
}

func (e *Engine) publish(lines []domain.CartLine) {
	total := 0.0
	for _, line := range lines {
		total += line.Subtotal()
	}
	e.lines.Set(lines)
	e.total.Set(total)
}
