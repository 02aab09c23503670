package billing

import (
	"testing"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		total money.Amount
		paid  money.Amount
		given []bool
		want  enum.OrderStatus
	}{
		{"paid and given", 100000, 100000, []bool{true}, enum.OrderStatusCompleted},
		{"paid but not given", 100000, 100000, []bool{false}, enum.OrderStatusPending},
		{"given but due", 100000, 60000, []bool{true, true}, enum.OrderStatusPending},
		{"overpaid", 100000, 120000, []bool{true}, enum.OrderStatusPending},
		{"no items nothing due", 0, 0, nil, enum.OrderStatusCompleted},
		{"no items but due", 5000, 0, []bool{}, enum.OrderStatusPending},
		{"one of many not given", 300000, 300000, []bool{true, false, true}, enum.OrderStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.total, tt.paid, tt.given))
		})
	}
}

func TestAmountDue(t *testing.T) {
	assert.Equal(t, money.Amount(40000), AmountDue(100000, 60000))
	assert.Equal(t, money.Amount(-20000), AmountDue(100000, 120000))
}

func TestAllGivenEmpty(t *testing.T) {
	assert.True(t, AllGiven(nil))
	assert.True(t, AllGiven([]bool{}))
}

func TestRecompute(t *testing.T) {
	o := &entity.Order{
		TotalAmount: 150000,
		Items: entity.NewJSONList(
			entity.OrderItem{ItemID: "A1", Given: true},
			entity.OrderItem{ItemID: "A2", Given: true},
		),
		PaymentHistory: entity.NewJSONList(
			entity.PaymentRecord{Amount: 100000, Method: enum.PaymentMethodCash},
			entity.PaymentRecord{Amount: 50000, Method: enum.PaymentMethodUPI},
		),
		Status: enum.OrderStatusStuck,
	}

	Recompute(o)

	assert.Equal(t, money.Amount(150000), o.AmountPaid)
	assert.Equal(t, enum.OrderStatusCompleted, o.Status)
}

func TestRecomputeClearsManualStuck(t *testing.T) {
	o := &entity.StitchingOrder{
		TotalAmount: 80000,
		Items:       entity.NewJSONList(entity.StitchingItem{Description: "Blouse", Quantity: 1}),
		Status:      enum.OrderStatusStuck,
	}

	RecomputeStitching(o)

	assert.Equal(t, enum.OrderStatusPending, o.Status)
}
