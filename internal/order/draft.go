package order

import (
	"time"

	"github.com/google/uuid"
)

type DraftStatus string

const (
	DraftStatusPending  DraftStatus = "PENDING"
	DraftStatusConsumed DraftStatus = "CONSUMED"
	DraftStatusExpired  DraftStatus = "EXPIRED"
)

// draftTTL bounds how long the hop between the selection page and the
// payment-detail submission may take.
const draftTTL = 30 * time.Minute

// Draft is the committed, re-validated subset of a cart selected for
// checkout. It is the source of truth for what gets purchased; client input
// is never trusted a second time. One-time consumption: finalize flips
// PENDING to CONSUMED exactly once.
type Draft struct {
	ID         uuid.UUID   `json:"id"`
	SessionKey string      `json:"-"`
	CustomerID *uint       `json:"customer_id,omitempty"`
	Status     DraftStatus `json:"status"`
	TotalPrice float64     `json:"total_price"`
	CreatedAt  time.Time   `json:"created_at"`
	ExpiresAt  time.Time   `json:"expires_at"`

	Items []DraftItem `json:"items"`
}

type DraftItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

func (d *Draft) Expired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}
