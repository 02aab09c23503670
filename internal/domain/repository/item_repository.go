package repository

import (
	"context"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/sangkips/boutique-api/pkg/pagination"
)

// ItemSale marks one item as sold on a bill.
type ItemSale struct {
	ItemID       string
	SellingPrice money.Amount
	BillNo       int64
	SoldAt       time.Time
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Sold       *bool
}

// ItemRepository defines the interface for inventory item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// CreateBatch inserts all items in one transaction.
	CreateBatch(ctx context.Context, items []entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByItemID(ctx context.Context, itemID string) (*entity.Item, error)
	GetByItemIDs(ctx context.Context, itemIDs []string) ([]entity.Item, error)
	// ExistingItemIDs returns which of itemIDs are already taken.
	ExistingItemIDs(ctx context.Context, itemIDs []string) ([]string, error)
	// Update saves an unsold item. A sold item is left untouched and
	// apperror.ErrConflict is returned.
	Update(ctx context.Context, item *entity.Item) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
	ListAll(ctx context.Context) ([]entity.Item, error)
	// MarkSoldBatch flips sold=false to sold=true for every sale in one
	// transaction. If any item is missing or already sold nothing changes and
	// the offending item IDs are returned.
	MarkSoldBatch(ctx context.Context, sales []ItemSale) ([]string, error)
	// ReleaseSoldBatch undoes MarkSoldBatch for a bill whose creation failed.
	ReleaseSoldBatch(ctx context.Context, billNo int64, itemIDs []string) error
}
