package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	domainRepo "github.com/sangkips/boutique-api/internal/domain/repository"
	"gorm.io/gorm"
)

// billRepository holds the queries shared by retail and stitching orders,
// which differ only in their row type and table.
type billRepository[T any] struct {
	db    *gorm.DB
	table string
}

func (r *billRepository[T]) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *billRepository[T]) Create(ctx context.Context, order *T) error {
	return translateError(r.query(ctx).Create(order).Error, "Bill number already in use")
}

func (r *billRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var order T
	err := r.query(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *billRepository[T]) GetByBillNo(ctx context.Context, billNo int64) (*T, error) {
	var order T
	err := r.query(ctx).First(&order, "bill_no = ?", billNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *billRepository[T]) Update(ctx context.Context, order *T) error {
	return r.query(ctx).Save(order).Error
}

func (r *billRepository[T]) UpdateStatus(ctx context.Context, id string, status enum.OrderStatus) error {
	return r.query(ctx).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

func (r *billRepository[T]) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]T, int64, error) {
	var orders []T
	var total int64

	query := r.query(ctx).Scopes(CreatedBetween(params.StartDate, params.EndDate))
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerPhone != "" {
		query = query.Where("customer_phone = ?", params.CustomerPhone)
	}
	if params.WithDues {
		query = query.Where("total_amount > amount_paid")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("bill_no DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *billRepository[T]) ListSince(ctx context.Context, since time.Time) ([]T, error) {
	var orders []T
	query := r.query(ctx)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	err := query.Order("bill_no ASC").Find(&orders).Error
	return orders, err
}

func (r *billRepository[T]) LatestBillNo(ctx context.Context) (int64, error) {
	var latest []int64
	err := r.query(ctx).Order("bill_no DESC").Limit(1).Pluck("bill_no", &latest).Error
	if err != nil {
		return 0, err
	}
	if len(latest) == 0 {
		return 0, nil
	}
	return latest[0], nil
}

type orderRepository struct {
	billRepository[entity.Order]
}

// NewOrderRepository creates a retail order repository backed by table
func NewOrderRepository(db *gorm.DB, table string) domainRepo.OrderRepository {
	return &orderRepository{billRepository[entity.Order]{db: db, table: table}}
}

type stitchingOrderRepository struct {
	billRepository[entity.StitchingOrder]
}

// NewStitchingOrderRepository creates a stitching order repository backed by table
func NewStitchingOrderRepository(db *gorm.DB, table string) domainRepo.StitchingOrderRepository {
	return &stitchingOrderRepository{billRepository[entity.StitchingOrder]{db: db, table: table}}
}
