package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is one of the five recognized labels.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusRejected:
		return true
	}
	return false
}

// transitions is the enforced status graph. delivered is terminal;
// rejected only permits the idempotent rejected -> rejected no-op.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusShipped, StatusRejected},
	StatusShipped:   {StatusDelivered, StatusRejected},
	StatusDelivered: {},
	StatusRejected:  {StatusRejected},
}

// CanTransitionTo reports whether the edge s -> target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
)

// CustomerInfo is the contact snapshot frozen onto an order at checkout.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Order struct {
	ID                   uint      `json:"id"`
	CustomerID           *uint     `json:"customer_id,omitempty"`
	CustomerName         string    `json:"customer_name"`
	CustomerPhone        string    `json:"customer_phone"`
	CustomerAddress      string    `json:"customer_address"`
	TotalPrice           float64   `json:"total_price"`
	PaymentMethod        string    `json:"payment_method"`
	Status               Status    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	PaymentProofFilename *string   `json:"payment_proof_filename,omitempty"`

	Items []OrderItem `json:"items"`
}

type OrderItem struct {
	ID              uint    `json:"id"`
	OrderID         uint    `json:"order_id"`
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

// ProductStat is one row of the per-product sales statistics.
type ProductStat struct {
	ProductName string  `json:"product_name"`
	UnitsSold   int     `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
}
