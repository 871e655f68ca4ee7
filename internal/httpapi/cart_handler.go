package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fitquality/storefront/internal/cart"
	"github.com/fitquality/storefront/internal/catalog"
	"github.com/fitquality/storefront/internal/domain"
	"github.com/fitquality/storefront/internal/events"
)

// CartHandler exposes the per-session cart engine over HTTP. Every call runs
// under the registry's per-session lock.
type CartHandler struct {
	registry *CartRegistry
	catalog  catalog.Repository
	events   events.Publisher
}

func NewCartHandler(registry *CartRegistry, catalogRepo catalog.Repository, publisher events.Publisher) *CartHandler {
	return &CartHandler{registry: registry, catalog: catalogRepo, events: publisher}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CheckoutRequestDTO struct {
	ShippingAddress string `json:"shipping_address"`
}

type CartResponseDTO struct {
	Lines []domain.CartLine `json:"lines"`
	Total float64           `json:"total"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	var resp CartResponseDTO
	_ = h.registry.With(tokenFrom(r.Context()), func(e *cart.Engine) error {
		resp = CartResponseDTO{Lines: e.Lines(), Total: e.Total()}
		return nil
	})
	if resp.Lines == nil {
		resp.Lines = []domain.CartLine{}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_input", "quantity must be positive")
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to load product %d: %v", req.ProductID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load product")
		return
	}

	err = h.registry.With(tokenFrom(r.Context()), func(e *cart.Engine) error {
		return e.AttemptAdd(*product, req.Quantity)
	})

	var insufficient *cart.InsufficientStockError
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	case errors.As(err, &insufficient):
		respondError(w, http.StatusConflict, "insufficient_stock", insufficient.Error())
		return
	case err != nil:
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	h.Get(w, r)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid product id")
		return
	}

	_ = h.registry.With(tokenFrom(r.Context()), func(e *cart.Engine) error {
		e.Remove(productID)
		return nil
	})
	h.Get(w, r)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	_ = h.registry.With(tokenFrom(r.Context()), func(e *cart.Engine) error {
		e.Clear()
		return nil
	})
	respondJSON(w, http.StatusNoContent, nil)
}

// Checkout runs the engine's validate-then-commit reservation. The cart is
// cleared only after the order is persisted, and the order.placed event is
// best-effort: a broker outage never fails a paid-for order.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var order *domain.Order
	err := h.registry.With(tokenFrom(r.Context()), func(e *cart.Engine) error {
		placed, err := e.Checkout(r.Context(), req.ShippingAddress)
		if err != nil {
			return err
		}
		order = placed
		e.Clear()
		return nil
	})

	var checkoutErr *cart.CheckoutError
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		return
	case errors.Is(err, cart.ErrMissingShippingAddress):
		respondError(w, http.StatusBadRequest, "missing_shipping_address", "shipping address is required")
		return
	case errors.Is(err, cart.ErrNoActiveSession):
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	case errors.Is(err, cart.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "insufficient_stock", "not enough stock to complete the order")
		return
	case errors.As(err, &checkoutErr):
		log.Printf("checkout failed: %v", checkoutErr.Unwrap())
		respondError(w, http.StatusServiceUnavailable, "checkout_failed", checkoutErr.Error())
		return
	case err != nil:
		log.Printf("checkout failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not complete checkout")
		return
	}

	if h.events != nil {
		if err := h.events.OrderPlaced(r.Context(), order); err != nil {
			log.Printf("failed to publish order.placed for %s: %v", order.ID, err)
		}
	}

	respondJSON(w, http.StatusCreated, order)
}
