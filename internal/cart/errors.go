package cart

import (
	"errors"
	"fmt"
)

// All engine failures are returned as values; nothing below is ever allowed
// to escape as a raw lower-layer error.
var (
	ErrOutOfStock             = errors.New("product is out of stock")
	ErrInsufficientStock      = errors.New("insufficient stock for the requested quantity")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrMissingShippingAddress = errors.New("shipping address required")
	ErrNoActiveSession        = errors.New("no active session")
)

// InsufficientStockError is returned by AttemptAdd when the requested
// quantity exceeds what is still available on top of the cart's current
// contents. Available reports how many more units could be added.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d more units of %s available", e.Available, e.ProductName)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// CheckoutError wraps any transport or storage failure hit during the
// validate/commit/submit sequence behind a single user-facing message.
type CheckoutError struct {
	cause error
}

func (e *CheckoutError) Error() string {
	return "could not complete checkout: connection or storage failure"
}

func (e *CheckoutError) Unwrap() error {
	return e.cause
}
