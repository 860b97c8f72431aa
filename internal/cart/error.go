package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMissingSession  = errors.New("cart session key is required")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("product not in cart")
	ErrOutOfStock       = errors.New("not enough stock")
)
