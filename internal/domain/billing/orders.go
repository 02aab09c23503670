package billing

import (
	"github.com/sangkips/boutique-api/internal/domain/entity"
)

// GivenFlags extracts the hand-over flags of retail order lines.
func GivenFlags(items []entity.OrderItem) []bool {
	flags := make([]bool, len(items))
	for i, it := range items {
		flags[i] = it.Given
	}
	return flags
}

// StitchingGivenFlags extracts the hand-over flags of stitching order garments.
func StitchingGivenFlags(items []entity.StitchingItem) []bool {
	flags := make([]bool, len(items))
	for i, it := range items {
		flags[i] = it.Given
	}
	return flags
}

// Recompute refreshes a retail order's paid amount from its payment history
// and re-derives its status.
func Recompute(o *entity.Order) {
	o.AmountPaid = entity.TotalPaid(o.PaymentHistory.Items)
	o.Status = DeriveStatus(o.TotalAmount, o.AmountPaid, GivenFlags(o.Items.Items))
}

// RecomputeStitching does the same for a stitching order.
func RecomputeStitching(o *entity.StitchingOrder) {
	o.AmountPaid = entity.TotalPaid(o.PaymentHistory.Items)
	o.Status = DeriveStatus(o.TotalAmount, o.AmountPaid, StitchingGivenFlags(o.Items.Items))
}
