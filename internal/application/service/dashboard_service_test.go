package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dashboardFixture struct {
	orders      *MockOrderRepository
	stitching   *MockStitchingOrderRepository
	items       *MockItemRepository
	fabrics     *MockFabricRepository
	accessories *MockAccessoryRepository
	svc         *DashboardService
}

var dashboardNow = time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		orders:      new(MockOrderRepository),
		stitching:   new(MockStitchingOrderRepository),
		items:       new(MockItemRepository),
		fabrics:     new(MockFabricRepository),
		accessories: new(MockAccessoryRepository),
	}
	f.svc = NewDashboardService(f.orders, f.stitching, f.items, f.fabrics, f.accessories, time.UTC, zap.NewNop())
	f.svc.now = func() time.Time { return dashboardNow }
	return f
}

func retailOrder(billNo int64, phone string, total, paid money.Amount) entity.Order {
	return entity.Order{
		BillNo:        billNo,
		CustomerPhone: phone,
		TotalAmount:   total,
		AmountPaid:    paid,
		TotalProfit:   total / 2,
		Items:         entity.NewJSONList(entity.OrderItem{ItemID: "I"}),
		PaymentHistory: entity.NewJSONList(
			entity.PaymentRecord{Amount: paid, Method: enum.PaymentMethodCash},
		),
		Status:    enum.OrderStatusPending,
		CreatedAt: dashboardNow.Add(-time.Hour),
	}
}

func TestGetDashboardStats(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()

	broken := retailOrder(3, "9000000003", money.FromRupees(1000), money.FromRupees(200))
	broken.PaymentHistory = entity.DecodeJSONList[entity.PaymentRecord]("{oops")

	f.orders.On("ListSince", ctx, time.Time{}).Return([]entity.Order{
		retailOrder(1, "9000000001", money.FromRupees(500), money.FromRupees(500)),
		retailOrder(2, "9000000002", money.FromRupees(1500), money.FromRupees(1000)),
		broken,
	}, nil)
	f.stitching.On("ListSince", ctx, time.Time{}).Return([]entity.StitchingOrder{}, nil)
	f.items.On("ListAll", ctx).Return([]entity.Item{
		{ItemID: "A", CostPrice: money.FromRupees(100)},
		{ItemID: "B", CostPrice: money.FromRupees(200), Sold: true},
	}, nil)
	f.fabrics.On("ListAll", ctx).Return([]entity.Fabric{}, nil)
	f.accessories.On("ListAll", ctx).Return([]entity.Accessory{}, nil)

	stats, err := f.svc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, money.FromRupees(3000), stats.Revenue)
	assert.Equal(t, money.FromRupees(1500), stats.Payments.Cash)
	assert.Equal(t, money.FromRupees(100), stats.InventoryValue)
	require.Len(t, stats.Quarantined, 1)
	assert.Equal(t, int64(3), stats.Quarantined[0].BillNo)
	require.NotEmpty(t, stats.TopCustomers)
	assert.Equal(t, "9000000002", stats.TopCustomers[0].Phone)
	assert.Equal(t, dashboardNow, stats.GeneratedAt)
}

func TestGetDashboardStatsPropagatesStoreError(t *testing.T) {
	f := newDashboardFixture()
	f.orders.On("ListSince", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.svc.GetDashboardStats(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestGetChart(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()

	dailyStart := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	f.orders.On("ListSince", ctx, dailyStart).Return([]entity.Order{
		retailOrder(1, "9000000001", money.FromRupees(500), 0),
	}, nil)
	f.stitching.On("ListSince", ctx, dailyStart).Return(nil, nil)

	points, err := f.svc.GetChart(ctx, PeriodDaily)
	require.NoError(t, err)
	require.Len(t, points, 30)
	assert.Equal(t, money.FromRupees(500), points[len(points)-1].Revenue)

	monthlyStart := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	f.orders.On("ListSince", ctx, monthlyStart).Return(nil, nil)
	f.stitching.On("ListSince", ctx, monthlyStart).Return(nil, nil)

	points, err = f.svc.GetChart(ctx, PeriodMonthly)
	require.NoError(t, err)
	assert.Len(t, points, 6)

	_, err = f.svc.GetChart(ctx, "weekly")
	assert.Equal(t, http.StatusBadRequest, statusCode(err))
}

func TestGetTopCustomers(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()

	f.orders.On("ListSince", ctx, time.Time{}).Return([]entity.Order{
		retailOrder(1, "9000000001", money.FromRupees(500), 0),
		retailOrder(2, "9000000002", money.FromRupees(1500), 0),
		retailOrder(3, "9000000003", money.FromRupees(1000), 0),
	}, nil)
	f.stitching.On("ListSince", ctx, time.Time{}).Return(nil, nil)

	top, err := f.svc.GetTopCustomers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, money.FromRupees(1500), top[0].Revenue)
	assert.Equal(t, money.FromRupees(1000), top[1].Revenue)
}
