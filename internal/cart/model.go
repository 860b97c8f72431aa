package cart

import "bloomshop-be/internal/product"

// Line is one rendered cart entry with live product data.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

// Snapshot is the cart as shown to the customer, after self-healing against
// live stock.
type Snapshot struct {
	Lines      []Line  `json:"lines"`
	TotalPrice float64 `json:"total_price"`
	TotalItems int     `json:"total_items"`
}

// UpdateResult tells the caller whether the requested quantity survived or
// was capped by live stock.
type UpdateResult struct {
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
	Capped   bool    `json:"capped"`
}
