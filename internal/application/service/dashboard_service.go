package service

import (
	"context"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/metrics"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"go.uber.org/zap"
)

// Chart periods
const (
	PeriodDaily   = "daily"
	PeriodMonthly = "monthly"
)

const (
	defaultTopCustomers = 5
	maxTopCustomers     = 50
)

// DashboardService provides dashboard statistics. Every figure is
// recomputed from the stored records on each request.
type DashboardService struct {
	orderRepo     repository.OrderRepository
	stitchingRepo repository.StitchingOrderRepository
	itemRepo      repository.ItemRepository
	fabricRepo    repository.FabricRepository
	accessoryRepo repository.AccessoryRepository
	loc           *time.Location
	log           *zap.Logger
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service. loc is the shop's time
// zone used for day and month buckets.
func NewDashboardService(
	orderRepo repository.OrderRepository,
	stitchingRepo repository.StitchingOrderRepository,
	itemRepo repository.ItemRepository,
	fabricRepo repository.FabricRepository,
	accessoryRepo repository.AccessoryRepository,
	loc *time.Location,
	log *zap.Logger,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		orderRepo:     orderRepo,
		stitchingRepo: stitchingRepo,
		itemRepo:      itemRepo,
		fabricRepo:    fabricRepo,
		accessoryRepo: accessoryRepo,
		loc:           loc,
		log:           log,
		now:           time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	*metrics.Summary
	TopCustomers []metrics.CustomerRevenue `json:"top_customers"`
	GeneratedAt  time.Time                 `json:"generated_at"`
}

func (s *DashboardService) loadOrders(ctx context.Context, since time.Time) ([]entity.Order, []entity.StitchingOrder, error) {
	orders, err := s.orderRepo.ListSince(ctx, since)
	if err != nil {
		s.log.Error("loading orders failed", zap.Error(err))
		return nil, nil, err
	}
	stitching, err := s.stitchingRepo.ListSince(ctx, since)
	if err != nil {
		s.log.Error("loading stitching orders failed", zap.Error(err))
		return nil, nil, err
	}
	return orders, stitching, nil
}

// GetDashboardStats returns the headline figures over all orders and stock
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	orders, stitching, err := s.loadOrders(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	fabrics, err := s.fabricRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	accessories, err := s.accessoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := metrics.Summarize(metrics.Input{
		Orders:          orders,
		StitchingOrders: stitching,
		Items:           items,
		Fabrics:         fabrics,
		Accessories:     accessories,
	})
	for _, q := range summary.Quarantined {
		s.log.Warn("order skipped in aggregation",
			zap.String("kind", q.Kind),
			zap.Int64("bill_no", q.BillNo),
			zap.Strings("fields", q.Fields),
		)
	}

	return &DashboardStats{
		Summary:      summary,
		TopCustomers: metrics.TopCustomers(orders, stitching, defaultTopCustomers),
		GeneratedAt:  s.now(),
	}, nil
}

// GetChart returns the revenue and profit series for period (daily or monthly)
func (s *DashboardService) GetChart(ctx context.Context, period string) ([]metrics.SeriesPoint, error) {
	now := s.now().In(s.loc)

	switch period {
	case PeriodMonthly:
		since := time.Date(now.Year(), now.Month()-metrics.MonthlyWindow+1, 1, 0, 0, 0, 0, s.loc)
		orders, stitching, err := s.loadOrders(ctx, since)
		if err != nil {
			return nil, err
		}
		return metrics.MonthlySeries(orders, stitching, now, metrics.MonthlyWindow, s.loc), nil
	case PeriodDaily, "":
		since := time.Date(now.Year(), now.Month(), now.Day()-metrics.DailyWindow+1, 0, 0, 0, 0, s.loc)
		orders, stitching, err := s.loadOrders(ctx, since)
		if err != nil {
			return nil, err
		}
		return metrics.DailySeries(orders, stitching, now, metrics.DailyWindow, s.loc), nil
	default:
		return nil, fieldErrors{{Field: "period", Message: "must be daily or monthly"}}.err()
	}
}

// GetTopCustomers ranks customers by revenue across both order kinds
func (s *DashboardService) GetTopCustomers(ctx context.Context, limit int) ([]metrics.CustomerRevenue, error) {
	if limit <= 0 {
		limit = defaultTopCustomers
	}
	if limit > maxTopCustomers {
		limit = maxTopCustomers
	}

	orders, stitching, err := s.loadOrders(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	return metrics.TopCustomers(orders, stitching, limit), nil
}
