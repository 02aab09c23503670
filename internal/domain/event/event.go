// Package event defines the domain events emitted after order writes.
package event

import (
	"context"
	"time"

	"github.com/sangkips/boutique-api/pkg/money"
)

// Event types
const (
	OrderCreated                  = "order.created"
	OrderPaymentRecorded          = "order.payment_recorded"
	StitchingOrderCreated         = "stitching_order.created"
	StitchingOrderPaymentRecorded = "stitching_order.payment_recorded"
)

// Event is the JSON body published for an order change. Key is the bill number.
type Event struct {
	Type          string       `json:"type"`
	BillNo        int64        `json:"bill_no"`
	CustomerPhone string       `json:"customer_phone"`
	TotalAmount   money.Amount `json:"total_amount"`
	AmountPaid    money.Amount `json:"amount_paid"`
	Status        string       `json:"status"`
	Payment       money.Amount `json:"payment,omitempty"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

// Publisher delivers events to downstream consumers. Implementations must be
// safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}
