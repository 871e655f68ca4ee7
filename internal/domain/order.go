package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a historical snapshot of a cart line taken at checkout time.
// It stays valid even if the catalog later changes price or name.
type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	CustomerID      int64       `json:"customer_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	ShippingAddress string      `json:"shipping_address"`
	TotalAmount     float64     `json:"total_amount"`
	Currency        string      `json:"currency"`
	ProofImageURI   string      `json:"proof_image_uri,omitempty"` // empty until a delivery proof is recorded
	Delivered       bool        `json:"delivered"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}
