// Package billing derives order state from amounts and hand-over flags.
package billing

import (
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/money"
)

// AmountDue is total minus paid. It is negative when the customer overpaid.
func AmountDue(total, paid money.Amount) money.Amount {
	return total - paid
}

// AllGiven reports whether every flag is set. An empty list counts as all given.
func AllGiven(given []bool) bool {
	for _, g := range given {
		if !g {
			return false
		}
	}
	return true
}

// DeriveStatus returns completed only when nothing is due and every item has
// been handed over. Overpayment leaves the order pending. Stuck is never derived.
func DeriveStatus(total, paid money.Amount, given []bool) enum.OrderStatus {
	if AmountDue(total, paid) == 0 && AllGiven(given) {
		return enum.OrderStatusCompleted
	}
	return enum.OrderStatusPending
}
