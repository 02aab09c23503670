package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/internal/infrastructure/spreadsheet"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/sangkips/boutique-api/pkg/pagination"
	"go.uber.org/zap"
)

// ItemService handles ready-made stock items
type ItemService struct {
	itemRepo repository.ItemRepository
	log      *zap.Logger
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, log *zap.Logger) *ItemService {
	return &ItemService{itemRepo: itemRepo, log: log}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	ItemID              string
	Title               string
	Color               string
	Size                string
	CostPrice           money.Amount
	MarkedPrice         money.Amount
	DefaultSellingPrice *money.Amount
}

func (in *CreateItemInput) validate() error {
	var errs fieldErrors
	errs.required("item_id", in.ItemID)
	errs.required("title", in.Title)
	errs.nonNegative("cost_price", in.CostPrice)
	errs.nonNegative("marked_price", in.MarkedPrice)
	if in.DefaultSellingPrice != nil {
		errs.nonNegative("default_selling_price", *in.DefaultSellingPrice)
	}
	return errs.err()
}

func (in *CreateItemInput) toEntity() *entity.Item {
	return &entity.Item{
		ItemID:              in.ItemID,
		Title:               in.Title,
		Color:               in.Color,
		Size:                in.Size,
		CostPrice:           in.CostPrice,
		MarkedPrice:         in.MarkedPrice,
		DefaultSellingPrice: in.DefaultSellingPrice,
	}
}

// CreateItem adds one item to stock
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	input.ItemID = strings.TrimSpace(input.ItemID)
	input.Title = strings.TrimSpace(input.Title)
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.itemRepo.GetByItemID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Item %s already exists", input.ItemID))
	}

	item := input.toEntity()
	if err := s.itemRepo.Create(ctx, item); err != nil {
		s.log.Error("item create failed", zap.String("item_id", item.ItemID), zap.Error(err))
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item by its tag
func (s *ItemService) GetItem(ctx context.Context, itemID string) (*entity.Item, error) {
	item, err := s.itemRepo.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists items, optionally only sold or unsold ones
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	Title               *string
	Color               *string
	Size                *string
	CostPrice           *money.Amount
	MarkedPrice         *money.Amount
	DefaultSellingPrice *money.Amount
}

// UpdateItem edits an unsold item. Sold items are immutable.
func (s *ItemService) UpdateItem(ctx context.Context, itemID string, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Sold {
		return nil, apperror.NewConflictError("Sold items cannot be modified")
	}

	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.Color != nil {
		item.Color = *input.Color
	}
	if input.Size != nil {
		item.Size = *input.Size
	}
	if input.CostPrice != nil {
		item.CostPrice = *input.CostPrice
	}
	if input.MarkedPrice != nil {
		item.MarkedPrice = *input.MarkedPrice
	}
	if input.DefaultSellingPrice != nil {
		item.DefaultSellingPrice = input.DefaultSellingPrice
	}

	check := CreateItemInput{
		ItemID:              item.ItemID,
		Title:               item.Title,
		CostPrice:           item.CostPrice,
		MarkedPrice:         item.MarkedPrice,
		DefaultSellingPrice: item.DefaultSellingPrice,
	}
	if err := check.validate(); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ImportResult summarises a spreadsheet import
type ImportResult struct {
	Created int           `json:"created"`
	Items   []entity.Item `json:"items"`
}

// ImportItems creates every row of an xlsx sheet, or nothing if any row is
// invalid or its item ID is already taken.
func (s *ItemService) ImportItems(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	rows, rowErrors, err := spreadsheet.ParseItemRows(reader)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	var errs fieldErrors
	for _, re := range rowErrors {
		errs.add(fmt.Sprintf("row %d %s", re.Row, re.Column), re.Message)
	}

	seen := make(map[string]int, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if first, dup := seen[r.ItemID]; dup && r.ItemID != "" {
			errs.add(fmt.Sprintf("row %d item_id", r.Row), fmt.Sprintf("duplicates row %d", first))
			continue
		}
		seen[r.ItemID] = r.Row
		ids = append(ids, r.ItemID)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	existing, err := s.itemRepo.ExistingItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperror.NewConflictError("Items already exist: " + strings.Join(existing, ", "))
	}

	items := make([]entity.Item, len(rows))
	for i, r := range rows {
		items[i] = entity.Item{
			ItemID:              r.ItemID,
			Title:               r.Title,
			Color:               r.Color,
			Size:                r.Size,
			CostPrice:           r.CostPrice,
			MarkedPrice:         r.MarkedPrice,
			DefaultSellingPrice: r.DefaultSellingPrice,
		}
	}

	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		s.log.Error("item import failed", zap.Int("rows", len(items)), zap.Error(err))
		return nil, err
	}

	s.log.Info("items imported", zap.Int("count", len(items)))
	return &ImportResult{Created: len(items), Items: items}, nil
}
