package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPrinterFixture(p *recordingPrinter) (*PrinterService, *MockOrderRepository, *MockStitchingOrderRepository, *MockSettingsRepository) {
	orders := new(MockOrderRepository)
	stitching := new(MockStitchingOrderRepository)
	settings := new(MockSettingsRepository)
	svc := NewPrinterService(p, orders, stitching, settings, "network", time.UTC, zap.NewNop())
	return svc, orders, stitching, settings
}

func TestPrintOrderReceipt(t *testing.T) {
	p := &recordingPrinter{}
	svc, orders, _, settings := newPrinterFixture(p)
	ctx := context.Background()

	settings.On("Get", ctx).Return(&entity.ShopSettings{StoreName: "Rangoli", GSTIN: "29ABCDE1234F1Z5", ReceiptFooter: "Visit again"}, nil)
	order := storedOrder()
	order.CustomerName = "Meera"
	order.Items.Items[0].Title = "Kurti"
	orders.On("GetByBillNo", ctx, int64(12)).Return(order, nil)

	receipt, err := svc.PrintOrderReceipt(ctx, 12)
	require.NoError(t, err)

	assert.Equal(t, "12", receipt.BillNo)
	assert.Equal(t, "29ABCDE1234F1Z5", receipt.Header.GSTIN)
	assert.Equal(t, money.FromRupees(600), receipt.Due)
	assert.True(t, bytes.Contains(p.data, []byte("GSTIN: 29ABCDE1234F1Z5")))
	assert.True(t, bytes.Contains(p.data, []byte("Rs.600.00")))
	assert.True(t, bytes.Contains(p.data, []byte("Visit again")))
}

func TestStitchingReceiptOmitsAsterFabric(t *testing.T) {
	svc, _, _, settings := newPrinterFixture(&recordingPrinter{})
	settings.On("Get", mock.Anything).Return(nil, nil)

	receipt := svc.StitchingReceipt(context.Background(), &entity.StitchingOrder{
		BillNo:          5,
		Items:           entity.NewJSONList(entity.StitchingItem{Description: "Blouse", Quantity: 2, StitchingCharge: money.FromRupees(350)}),
		StitchingCharge: money.FromRupees(700),
		ShopFabricCost:  money.FromRupees(500),
		AsterFabricCost: money.FromRupees(200),
		TotalAmount:     money.FromRupees(1200),
		Status:          enum.OrderStatusPending,
	})

	assert.Equal(t, entity.DefaultShopSettings().StoreName, receipt.Header.StoreName)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, money.FromRupees(700), receipt.Items[0].Total)
	require.Len(t, receipt.Charges, 1)
	assert.Equal(t, "Fabric", receipt.Charges[0].Label)
	assert.Equal(t, money.FromRupees(1200), receipt.Due)
}

func TestPrintReceiptFailures(t *testing.T) {
	p := &recordingPrinter{err: errors.New("paper out")}
	svc, orders, stitching, settings := newPrinterFixture(p)
	ctx := context.Background()
	settings.On("Get", ctx).Return(nil, errors.New("db down"))
	orders.On("GetByBillNo", ctx, int64(12)).Return(storedOrder(), nil)
	stitching.On("GetByBillNo", ctx, int64(99)).Return(nil, nil)

	receipt, err := svc.PrintOrderReceipt(ctx, 12)
	assert.ErrorContains(t, err, "paper out")
	assert.NotNil(t, receipt)

	_, err = svc.PrintStitchingReceipt(ctx, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.False(t, svc.GetStatus().Connected)
	assert.True(t, svc.GetStatus().Configured)
}
