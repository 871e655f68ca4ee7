package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/fitquality/storefront/internal/orders"
)

type OrdersHandler struct {
	repo orders.Repository
}

func NewOrdersHandler(repo orders.Repository) *OrdersHandler {
	return &OrdersHandler{repo: repo}
}

type DeliveryProofRequestDTO struct {
	ProofImageURI string `json:"proof_image_uri"`
}

// List returns the caller's own purchase history.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}

	list, err := h.repo.ListByCustomer(r.Context(), identity.UserID)
	if err != nil {
		log.Printf("failed to list orders for customer %d: %v", identity.UserID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load orders")
		return
	}
	if list == nil {
		list = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, list)
}

// ListAll backs the stock-manager and delivery views.
func (h *OrdersHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListAll(r.Context())
	if err != nil {
		log.Printf("failed to list orders: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load orders")
		return
	}
	if list == nil {
		list = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid order id")
		return
	}

	order, err := h.repo.GetOrderByID(r.Context(), id)
	if errors.Is(err, orders.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("failed to load order %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load order")
		return
	}

	// Customers only see their own orders; staff roles see everything.
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}
	if identity.Role == domain.RoleCustomer && order.CustomerID != identity.UserID {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// SetDeliveryProof records the delivery photo reference and marks the order
// delivered. Delivery staff only.
func (h *OrdersHandler) SetDeliveryProof(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid order id")
		return
	}

	var req DeliveryProofRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ProofImageURI) == "" {
		respondError(w, http.StatusBadRequest, "invalid_input", "proof_image_uri is required")
		return
	}

	err = h.repo.SetDeliveryProof(r.Context(), id, strings.TrimSpace(req.ProofImageURI))
	if errors.Is(err, orders.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("failed to set delivery proof on %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not record delivery proof")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
