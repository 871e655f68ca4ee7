package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fitquality/storefront/internal/catalog"
	"github.com/fitquality/storefront/internal/domain"
)

type ProductHandler struct {
	repo catalog.Repository
}

func NewProductHandler(repo catalog.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

type ProductRequestDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.Products(r.Context())
	if err != nil {
		log.Printf("failed to list products: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid product id")
		return
	}

	product, err := h.repo.Product(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to load product %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := validateProductRequest(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
	if err := h.repo.CreateProduct(r.Context(), product); err != nil {
		log.Printf("failed to create product: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid product id")
		return
	}

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := validateProductRequest(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	product := &domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
	err = h.repo.UpdateProduct(r.Context(), product)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to update product %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid product id")
		return
	}

	err = h.repo.DeleteProduct(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to delete product %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not delete product")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func validateProductRequest(req ProductRequestDTO) error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if req.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}
