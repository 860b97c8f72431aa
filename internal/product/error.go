package product

import "errors"

var (
	// -- Validation & Input --
	ErrMissingFields = errors.New("missing product fields")
	ErrInvalidPrice  = errors.New("price must not be negative")
	ErrInvalidStock  = errors.New("stock quantity must not be negative")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
)
