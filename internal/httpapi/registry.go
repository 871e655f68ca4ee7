package httpapi

import (
	"sync"

	"github.com/fitquality/storefront/internal/cart"
	"github.com/fitquality/storefront/internal/session"
)

// CartRegistry owns one cart engine per session token. The engine does no
// locking of its own, so every call goes through the entry mutex; that is
// the external serialization the engine requires.
type CartRegistry struct {
	mu      sync.Mutex
	entries map[string]*cartEntry

	stock    cart.StockProvider
	orders   cart.OrderSink
	sessions session.Store
}

type cartEntry struct {
	mu     sync.Mutex
	engine *cart.Engine
}

func NewCartRegistry(stock cart.StockProvider, orders cart.OrderSink, sessions session.Store) *CartRegistry {
	return &CartRegistry{
		entries:  make(map[string]*cartEntry),
		stock:    stock,
		orders:   orders,
		sessions: sessions,
	}
}

// With runs fn against the session's engine while holding its mutex.
func (r *CartRegistry) With(token string, fn func(*cart.Engine) error) error {
	entry := r.entry(token)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.engine)
}

// Drop discards the session's cart, used on logout.
func (r *CartRegistry) Drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, token)
}

func (r *CartRegistry) entry(token string) *cartEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[token]
	if !ok {
		engine := cart.NewEngine(r.stock, r.orders, session.NewAccessor(r.sessions, token))
		entry = &cartEntry{engine: engine}
		r.entries[token] = entry
	}
	return entry
}
