package repository

import (
	"context"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/pkg/pagination"
)

// MaterialUse is a quantity to draw from one fabric or accessory.
type MaterialUse struct {
	BusinessID string
	Quantity   float64
}

// FabricRepository defines the interface for fabric stock data operations
type FabricRepository interface {
	Create(ctx context.Context, fabric *entity.Fabric) error
	GetByID(ctx context.Context, id string) (*entity.Fabric, error)
	GetByBusinessID(ctx context.Context, businessID string) (*entity.Fabric, error)
	Update(ctx context.Context, fabric *entity.Fabric) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Fabric, int64, error)
	ListAll(ctx context.Context) ([]entity.Fabric, error)
	// ConsumeBatch raises used quantity for every use in one transaction. If
	// any row is missing or would exceed its total, nothing changes and the
	// offending business IDs are returned.
	ConsumeBatch(ctx context.Context, uses []MaterialUse) ([]string, error)
	// RestoreBatch gives back quantities taken by ConsumeBatch.
	RestoreBatch(ctx context.Context, uses []MaterialUse) error
}

// AccessoryRepository defines the interface for accessory stock data operations
type AccessoryRepository interface {
	Create(ctx context.Context, accessory *entity.Accessory) error
	GetByID(ctx context.Context, id string) (*entity.Accessory, error)
	GetByBusinessID(ctx context.Context, businessID string) (*entity.Accessory, error)
	Update(ctx context.Context, accessory *entity.Accessory) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Accessory, int64, error)
	ListAll(ctx context.Context) ([]entity.Accessory, error)
	ConsumeBatch(ctx context.Context, uses []MaterialUse) ([]string, error)
	RestoreBatch(ctx context.Context, uses []MaterialUse) error
}
