package service

import (
	"context"
	"io"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/internal/infrastructure/spreadsheet"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"go.uber.org/zap"
)

// ReportService exports bills to Excel
type ReportService struct {
	orderRepo     repository.OrderRepository
	stitchingRepo repository.StitchingOrderRepository
	loc           *time.Location
	log           *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	orderRepo repository.OrderRepository,
	stitchingRepo repository.StitchingOrderRepository,
	loc *time.Location,
	log *zap.Logger,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		orderRepo:     orderRepo,
		stitchingRepo: stitchingRepo,
		loc:           loc,
		log:           log,
	}
}

// ExportOrders writes every bill created in [from, to) as an xlsx workbook.
// A zero to means up to now.
func (s *ReportService) ExportOrders(ctx context.Context, w io.Writer, from, to time.Time) error {
	if !to.IsZero() && !from.Before(to) {
		return apperror.NewFieldError("to", "must be after from")
	}

	orders, err := s.orderRepo.ListSince(ctx, from)
	if err != nil {
		s.log.Error("report: orders fetch failed", zap.Error(err))
		return err
	}
	stitching, err := s.stitchingRepo.ListSince(ctx, from)
	if err != nil {
		s.log.Error("report: stitching orders fetch failed", zap.Error(err))
		return err
	}

	if !to.IsZero() {
		orders = filterBefore(orders, to, func(o entity.Order) time.Time { return o.CreatedAt })
		stitching = filterBefore(stitching, to, func(o entity.StitchingOrder) time.Time { return o.CreatedAt })
	}

	s.log.Info("exporting orders report",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("orders", len(orders)),
		zap.Int("stitching_orders", len(stitching)),
	)
	return spreadsheet.WriteOrdersReport(w, orders, stitching, s.loc)
}

func filterBefore[T any](list []T, end time.Time, created func(T) time.Time) []T {
	out := list[:0]
	for _, v := range list {
		if created(v).Before(end) {
			out = append(out, v)
		}
	}
	return out
}
