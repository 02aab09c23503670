package repository

import (
	"context"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/pagination"
)

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Status        *enum.OrderStatus
	CustomerPhone string
	StartDate     *time.Time
	EndDate       *time.Time
	// WithDues keeps only orders with an outstanding amount.
	WithDues bool
}

// OrderRepository defines the interface for retail order data operations.
// Create returns an error matching apperror.ErrConflict when the bill number is taken.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByBillNo(ctx context.Context, billNo int64) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id string, status enum.OrderStatus) error
	// List returns orders newest bill first.
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListSince returns every order created at or after since (all orders for the zero time).
	ListSince(ctx context.Context, since time.Time) ([]entity.Order, error)
	// LatestBillNo returns the highest bill number, or 0 for an empty collection.
	LatestBillNo(ctx context.Context) (int64, error)
}

// StitchingOrderRepository defines the interface for stitching order data operations.
type StitchingOrderRepository interface {
	Create(ctx context.Context, order *entity.StitchingOrder) error
	GetByID(ctx context.Context, id string) (*entity.StitchingOrder, error)
	GetByBillNo(ctx context.Context, billNo int64) (*entity.StitchingOrder, error)
	Update(ctx context.Context, order *entity.StitchingOrder) error
	UpdateStatus(ctx context.Context, id string, status enum.OrderStatus) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.StitchingOrder, int64, error)
	ListSince(ctx context.Context, since time.Time) ([]entity.StitchingOrder, error)
	LatestBillNo(ctx context.Context) (int64, error)
}
