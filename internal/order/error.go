package order

import "errors"

var (
	// -- Validation & Input --
	ErrEmptySelection       = errors.New("no products selected for checkout")
	ErrMissingCustomerInfo  = errors.New("customer name, phone and address are required")
	ErrMissingPaymentMethod = errors.New("payment method is required")

	// -- Stock --
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")
	ErrDraftNotFound = errors.New("checkout draft not found")
	ErrDraftExpired  = errors.New("checkout draft expired")
	// ErrDraftConsumed doubles as the transaction-conflict signal: a
	// concurrent finalize already claimed the draft.
	ErrDraftConsumed = errors.New("checkout draft already consumed")

	// -- Status Engine --
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("status transition not allowed")

	// -- Authorization --
	ErrUnauthorized = errors.New("unauthorized: cannot access others' orders")
)
