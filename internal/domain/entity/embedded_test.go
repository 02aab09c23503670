package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONListScanValid(t *testing.T) {
	var l JSONList[OrderItem]
	require.NoError(t, l.Scan(`[{"item_id":"K-1","title":"Kurti","selling_price":899.00,"cost_price":450,"given":true}]`))

	assert.True(t, l.Valid())
	require.Len(t, l.Items, 1)
	assert.Equal(t, "K-1", l.Items[0].ItemID)
	assert.EqualValues(t, 89900, l.Items[0].SellingPrice)
	assert.EqualValues(t, 44900, l.Items[0].Profit())
}

func TestJSONListScanMalformedDoesNotFail(t *testing.T) {
	var l JSONList[PaymentRecord]
	require.NoError(t, l.Scan([]byte(`[{"amount": 100,`)))

	assert.False(t, l.Valid())
	assert.Zero(t, l.Len())

	// writing back keeps the original text
	v, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, `[{"amount": 100,`, v)
}

func TestJSONListEmpty(t *testing.T) {
	var l JSONList[OrderItem]
	require.NoError(t, l.Scan(nil))
	assert.True(t, l.Valid())

	v, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestPaymentHistoryRoundTrip(t *testing.T) {
	when := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	h := NewJSONList(PaymentRecord{Amount: 50000, Date: when, Method: enum.PaymentMethodUPI, Remarks: "advance"})

	v, err := h.Value()
	require.NoError(t, err)

	back := DecodeJSONList[PaymentRecord](v.(string))
	require.True(t, back.Valid())
	assert.Equal(t, h.Items, back.Items)
	assert.EqualValues(t, 50000, TotalPaid(back.Items))
}

func TestOrderMalformed(t *testing.T) {
	o := Order{
		Items:          DecodeJSONList[OrderItem]("not json"),
		PaymentHistory: NewJSONList[PaymentRecord](),
	}
	assert.Equal(t, []string{"items"}, o.Malformed())
}

func TestItemListPrice(t *testing.T) {
	withMarked := Item{CostPrice: 300, MarkedPrice: 900}
	assert.EqualValues(t, 900, withMarked.ListPrice())

	sp := withMarked.CostPrice + 400
	withDefault := Item{CostPrice: 300, DefaultSellingPrice: &sp}
	assert.EqualValues(t, 700, withDefault.ListPrice())

	costOnly := Item{CostPrice: 300}
	assert.EqualValues(t, 300, costOnly.ListPrice())
}

func TestMaterialStockValue(t *testing.T) {
	s := MaterialStock{TotalQuantity: 10, UsedQuantity: 7.5, PurchaseRate: 20000}
	assert.InDelta(t, 2.5, s.Remaining(), 1e-9)
	assert.EqualValues(t, 50000, s.StockValue())

	over := MaterialStock{TotalQuantity: 1, UsedQuantity: 2, PurchaseRate: 100}
	assert.Zero(t, over.StockValue())
}
