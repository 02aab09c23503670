package service

import (
	"context"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/event"
	"github.com/sangkips/boutique-api/pkg/money"
	"go.uber.org/zap"
)

// maxBillAttempts bounds how often a create is retried after a bill number collision.
const maxBillAttempts = 3

// publish sends e and only logs a failure; the write it describes already succeeded.
func publish(ctx context.Context, pub event.Publisher, log *zap.Logger, e event.Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	if err := pub.Publish(ctx, e); err != nil {
		log.Warn("event publish failed",
			zap.String("type", e.Type),
			zap.Int64("bill_no", e.BillNo),
			zap.Error(err),
		)
	}
}

func orderEvent(kind string, o *entity.Order, payment money.Amount) event.Event {
	return event.Event{
		Type:          kind,
		BillNo:        o.BillNo,
		CustomerPhone: o.CustomerPhone,
		TotalAmount:   o.TotalAmount,
		AmountPaid:    o.AmountPaid,
		Status:        string(o.Status),
		Payment:       payment,
	}
}

func stitchingEvent(kind string, o *entity.StitchingOrder, payment money.Amount) event.Event {
	return event.Event{
		Type:          kind,
		BillNo:        o.BillNo,
		CustomerPhone: o.CustomerPhone,
		TotalAmount:   o.TotalAmount,
		AmountPaid:    o.AmountPaid,
		Status:        string(o.Status),
		Payment:       payment,
	}
}

func newPaymentRecord(p *PaymentInput, at time.Time) entity.PaymentRecord {
	return entity.PaymentRecord{
		Amount:  p.Amount,
		Date:    at,
		Method:  p.Method,
		Remarks: p.Remarks,
	}
}
