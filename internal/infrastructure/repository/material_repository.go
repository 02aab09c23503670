package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	domainRepo "github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/pagination"
	"gorm.io/gorm"
)

// materialRepository serves fabrics and accessories, which share stock columns.
type materialRepository[T any] struct {
	db    *gorm.DB
	table string
	// editable returns the row id and the columns an edit may write.
	editable func(m *T) (string, map[string]interface{})
}

func (r *materialRepository[T]) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *materialRepository[T]) Create(ctx context.Context, m *T) error {
	return translateError(r.query(ctx).Create(m).Error, "An entry with this business ID already exists")
}

func (r *materialRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var m T
	err := r.query(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

func (r *materialRepository[T]) GetByBusinessID(ctx context.Context, businessID string) (*T, error) {
	var m T
	err := r.query(ctx).First(&m, "business_id = ?", businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

// Update writes the editable columns. used_quantity is left to ConsumeBatch and
// RestoreBatch, and the total may not drop below what is already used.
func (r *materialRepository[T]) Update(ctx context.Context, m *T) error {
	id, updates := r.editable(m)
	updates["updated_at"] = time.Now()

	result := r.query(ctx).
		Where("id = ? AND used_quantity <= ? + ?", id, updates["total_quantity"], entity.QuantityEpsilon).
		Updates(updates)
	if err := translateError(result.Error, "An entry with this business ID already exists"); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return apperror.NewConflictError("Total quantity cannot be less than the quantity already used")
	}
	return nil
}

func (r *materialRepository[T]) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]T, int64, error) {
	var rows []T
	var total int64

	query := r.query(ctx).Scopes(Search(search, "business_id", "name"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("name ASC").
		Find(&rows).Error

	return rows, total, err
}

func (r *materialRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	var rows []T
	err := r.query(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// ConsumeBatch raises used_quantity only where the remaining stock covers it.
func (r *materialRepository[T]) ConsumeBatch(ctx context.Context, uses []domainRepo.MaterialUse) ([]string, error) {
	if len(uses) == 0 {
		return nil, nil
	}

	var failed []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range uses {
			result := tx.Table(r.table).
				Where("business_id = ? AND used_quantity + ? <= total_quantity + ?", u.BusinessID, u.Quantity, entity.QuantityEpsilon).
				Update("used_quantity", gorm.Expr("used_quantity + ?", u.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failed = append(failed, u.BusinessID)
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

func (r *materialRepository[T]) RestoreBatch(ctx context.Context, uses []domainRepo.MaterialUse) error {
	if len(uses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range uses {
			if err := tx.Table(r.table).
				Where("business_id = ?", u.BusinessID).
				Update("used_quantity", gorm.Expr("used_quantity - ?", u.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type fabricRepository struct {
	materialRepository[entity.Fabric]
}

// NewFabricRepository creates a fabric repository backed by table
func NewFabricRepository(db *gorm.DB, table string) domainRepo.FabricRepository {
	return &fabricRepository{materialRepository[entity.Fabric]{db: db, table: table, editable: fabricColumns}}
}

func fabricColumns(f *entity.Fabric) (string, map[string]interface{}) {
	return f.ID, map[string]interface{}{
		"name":           f.Name,
		"color":          f.Color,
		"total_quantity": f.Stock.TotalQuantity,
		"purchase_rate":  f.Stock.PurchaseRate,
		"selling_rate":   f.Stock.SellingRate,
	}
}

type accessoryRepository struct {
	materialRepository[entity.Accessory]
}

// NewAccessoryRepository creates an accessory repository backed by table
func NewAccessoryRepository(db *gorm.DB, table string) domainRepo.AccessoryRepository {
	return &accessoryRepository{materialRepository[entity.Accessory]{db: db, table: table, editable: accessoryColumns}}
}

func accessoryColumns(a *entity.Accessory) (string, map[string]interface{}) {
	return a.ID, map[string]interface{}{
		"name":           a.Name,
		"category":       a.Category,
		"total_quantity": a.Stock.TotalQuantity,
		"purchase_rate":  a.Stock.PurchaseRate,
		"selling_rate":   a.Stock.SellingRate,
	}
}
