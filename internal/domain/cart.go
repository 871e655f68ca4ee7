package domain

// CartLine is one row of a shopping cart: a product snapshot and how many
// units of it the customer wants. The cart holds at most one line per
// product id; repeated adds merge into the existing line.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is derived, never stored.
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}
