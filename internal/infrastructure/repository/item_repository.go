package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	domainRepo "github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"gorm.io/gorm"
)

type itemRepository struct {
	db    *gorm.DB
	table string
}

// NewItemRepository creates an item repository backed by table
func NewItemRepository(db *gorm.DB, table string) domainRepo.ItemRepository {
	return &itemRepository{db: db, table: table}
}

func (r *itemRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return translateError(r.query(ctx).Create(item).Error, "Item with this ID already exists")
}

func (r *itemRepository) CreateBatch(ctx context.Context, items []entity.Item) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(r.table).CreateInBatches(items, 100).Error
	})
	return translateError(err, "One or more item IDs already exist")
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	err := r.query(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) GetByItemID(ctx context.Context, itemID string) (*entity.Item, error) {
	var item entity.Item
	err := r.query(ctx).First(&item, "item_id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) GetByItemIDs(ctx context.Context, itemIDs []string) ([]entity.Item, error) {
	var items []entity.Item
	if len(itemIDs) == 0 {
		return items, nil
	}
	err := r.query(ctx).Where("item_id IN ?", itemIDs).Find(&items).Error
	return items, err
}

func (r *itemRepository) ExistingItemIDs(ctx context.Context, itemIDs []string) ([]string, error) {
	var existing []string
	if len(itemIDs) == 0 {
		return existing, nil
	}
	err := r.query(ctx).Where("item_id IN ?", itemIDs).Pluck("item_id", &existing).Error
	return existing, err
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	updates := map[string]interface{}{
		"title":                 item.Title,
		"color":                 item.Color,
		"size":                  item.Size,
		"cost_price":            item.CostPrice,
		"marked_price":          item.MarkedPrice,
		"default_selling_price": item.DefaultSellingPrice,
		"updated_at":            time.Now(),
	}

	result := r.query(ctx).Where("id = ? AND sold = ?", item.ID, false).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewConflictError("Sold items cannot be modified")
	}
	return nil
}

func (r *itemRepository) List(ctx context.Context, params *domainRepo.ItemFilterParams) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := r.query(ctx).Scopes(Search(params.Search, "item_id", "title", "color"))
	if params.Sold != nil {
		query = query.Where("sold = ?", *params.Sold)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("created_at DESC").
		Find(&items).Error

	return items, total, err
}

func (r *itemRepository) ListAll(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	err := r.query(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

// MarkSoldBatch flips every item in one transaction; a single failure rolls all back.
func (r *itemRepository) MarkSoldBatch(ctx context.Context, sales []domainRepo.ItemSale) ([]string, error) {
	if len(sales) == 0 {
		return nil, nil
	}

	var failed []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range sales {
			result := tx.Table(r.table).
				Where("item_id = ? AND sold = ?", s.ItemID, false).
				Updates(map[string]interface{}{
					"sold":          true,
					"selling_price": s.SellingPrice,
					"sold_bill_no":  s.BillNo,
					"sold_at":       s.SoldAt,
					"updated_at":    time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failed = append(failed, s.ItemID)
			}
		}
		if len(failed) > 0 {
			return errRollback
		}
		return nil
	})

	if errors.Is(err, errRollback) {
		return failed, nil
	}
	return failed, err
}

func (r *itemRepository) ReleaseSoldBatch(ctx context.Context, billNo int64, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.query(ctx).
		Where("item_id IN ? AND sold_bill_no = ?", itemIDs, billNo).
		Updates(map[string]interface{}{
			"sold":          false,
			"selling_price": nil,
			"sold_bill_no":  nil,
			"sold_at":       nil,
			"updated_at":    time.Now(),
		}).Error
}
