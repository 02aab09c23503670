package entity

import (
	"time"

	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/money"
)

// PaymentRecord is one instalment embedded in an order's payment history.
// The history is append-only.
type PaymentRecord struct {
	Amount  money.Amount       `json:"amount"`
	Date    time.Time          `json:"date"`
	Method  enum.PaymentMethod `json:"method"`
	Remarks string             `json:"remarks,omitempty"`
}

// PaymentHistory is the persisted form of an order's payments.
type PaymentHistory = JSONList[PaymentRecord]

// TotalPaid sums the recorded instalments.
func TotalPaid(history []PaymentRecord) money.Amount {
	var total money.Amount
	for _, p := range history {
		total += p.Amount
	}
	return total
}
