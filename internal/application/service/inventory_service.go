package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/sangkips/boutique-api/pkg/pagination"
	"go.uber.org/zap"
)

// InventoryService manages fabric and accessory stock
type InventoryService struct {
	fabricRepo    repository.FabricRepository
	accessoryRepo repository.AccessoryRepository
	log           *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	fabricRepo repository.FabricRepository,
	accessoryRepo repository.AccessoryRepository,
	log *zap.Logger,
) *InventoryService {
	return &InventoryService{
		fabricRepo:    fabricRepo,
		accessoryRepo: accessoryRepo,
		log:           log,
	}
}

// MaterialInput is the create input shared by fabrics and accessories.
// Variant is the fabric colour or the accessory category.
type MaterialInput struct {
	BusinessID    string
	Name          string
	Variant       string
	TotalQuantity float64
	UsedQuantity  float64
	PurchaseRate  money.Amount
	SellingRate   money.Amount
}

func (in *MaterialInput) validate() error {
	var errs fieldErrors
	errs.required("business_id", in.BusinessID)
	errs.required("name", in.Name)
	if in.TotalQuantity < 0 {
		errs.add("total_quantity", "must not be negative")
	}
	if in.UsedQuantity < 0 {
		errs.add("used_quantity", "must not be negative")
	}
	if in.UsedQuantity > in.TotalQuantity+entity.QuantityEpsilon {
		errs.add("used_quantity", "must not exceed total quantity")
	}
	errs.nonNegative("purchase_rate", in.PurchaseRate)
	errs.nonNegative("selling_rate", in.SellingRate)
	return errs.err()
}

func (in *MaterialInput) stock() entity.MaterialStock {
	return entity.MaterialStock{
		TotalQuantity: in.TotalQuantity,
		UsedQuantity:  in.UsedQuantity,
		PurchaseRate:  in.PurchaseRate,
		SellingRate:   in.SellingRate,
	}
}

// MaterialUpdateInput holds optional changes to a fabric or accessory
type MaterialUpdateInput struct {
	Name          *string
	Variant       *string
	TotalQuantity *float64
	PurchaseRate  *money.Amount
	SellingRate   *money.Amount
}

func (in *MaterialUpdateInput) apply(name, variant *string, stock *entity.MaterialStock) error {
	if in.Name != nil {
		*name = strings.TrimSpace(*in.Name)
	}
	if in.Variant != nil {
		*variant = *in.Variant
	}
	if in.TotalQuantity != nil {
		stock.TotalQuantity = *in.TotalQuantity
	}
	if in.PurchaseRate != nil {
		stock.PurchaseRate = *in.PurchaseRate
	}
	if in.SellingRate != nil {
		stock.SellingRate = *in.SellingRate
	}

	var errs fieldErrors
	errs.required("name", *name)
	if stock.TotalQuantity+entity.QuantityEpsilon < stock.UsedQuantity {
		errs.add("total_quantity", fmt.Sprintf("must be at least the used quantity %.2f", stock.UsedQuantity))
	}
	errs.nonNegative("purchase_rate", stock.PurchaseRate)
	errs.nonNegative("selling_rate", stock.SellingRate)
	return errs.err()
}

func consumeOne(ctx context.Context, consume func(context.Context, []repository.MaterialUse) ([]string, error), businessID string, quantity float64) error {
	if quantity <= 0 {
		return apperror.NewFieldError("quantity", "must be greater than zero")
	}
	failed, err := consume(ctx, []repository.MaterialUse{{BusinessID: businessID, Quantity: quantity}})
	if err != nil {
		return err
	}
	if len(failed) > 0 {
		return apperror.NewFieldError("quantity", "exceeds remaining stock")
	}
	return nil
}

// CreateFabric adds a fabric bolt
func (s *InventoryService) CreateFabric(ctx context.Context, input *MaterialInput) (*entity.Fabric, error) {
	input.BusinessID = strings.TrimSpace(input.BusinessID)
	input.Name = strings.TrimSpace(input.Name)
	if err := input.validate(); err != nil {
		return nil, err
	}

	fabric := &entity.Fabric{
		BusinessID: input.BusinessID,
		Name:       input.Name,
		Color:      input.Variant,
		Stock:      input.stock(),
	}
	if err := s.fabricRepo.Create(ctx, fabric); err != nil {
		s.log.Error("fabric create failed", zap.String("business_id", fabric.BusinessID), zap.Error(err))
		return nil, err
	}
	return fabric, nil
}

// GetFabric retrieves a fabric by business ID
func (s *InventoryService) GetFabric(ctx context.Context, businessID string) (*entity.Fabric, error) {
	fabric, err := s.fabricRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if fabric == nil {
		return nil, apperror.NewNotFoundError("Fabric")
	}
	return fabric, nil
}

// ListFabrics lists fabrics matching search
func (s *InventoryService) ListFabrics(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Fabric], error) {
	params.Validate()
	fabrics, total, err := s.fabricRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(fabrics, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateFabric edits a fabric. Used quantity only changes through consumption.
func (s *InventoryService) UpdateFabric(ctx context.Context, businessID string, input *MaterialUpdateInput) (*entity.Fabric, error) {
	fabric, err := s.GetFabric(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := input.apply(&fabric.Name, &fabric.Color, &fabric.Stock); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Update(ctx, fabric); err != nil {
		return nil, err
	}
	return s.GetFabric(ctx, businessID)
}

// ConsumeFabric draws quantity metres from a fabric
func (s *InventoryService) ConsumeFabric(ctx context.Context, businessID string, quantity float64) (*entity.Fabric, error) {
	if _, err := s.GetFabric(ctx, businessID); err != nil {
		return nil, err
	}
	if err := consumeOne(ctx, s.fabricRepo.ConsumeBatch, businessID, quantity); err != nil {
		return nil, err
	}
	return s.GetFabric(ctx, businessID)
}

// CreateAccessory adds an accessory line
func (s *InventoryService) CreateAccessory(ctx context.Context, input *MaterialInput) (*entity.Accessory, error) {
	input.BusinessID = strings.TrimSpace(input.BusinessID)
	input.Name = strings.TrimSpace(input.Name)
	if err := input.validate(); err != nil {
		return nil, err
	}

	accessory := &entity.Accessory{
		BusinessID: input.BusinessID,
		Name:       input.Name,
		Category:   input.Variant,
		Stock:      input.stock(),
	}
	if err := s.accessoryRepo.Create(ctx, accessory); err != nil {
		s.log.Error("accessory create failed", zap.String("business_id", accessory.BusinessID), zap.Error(err))
		return nil, err
	}
	return accessory, nil
}

// GetAccessory retrieves an accessory by business ID
func (s *InventoryService) GetAccessory(ctx context.Context, businessID string) (*entity.Accessory, error) {
	accessory, err := s.accessoryRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if accessory == nil {
		return nil, apperror.NewNotFoundError("Accessory")
	}
	return accessory, nil
}

// ListAccessories lists accessories matching search
func (s *InventoryService) ListAccessories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Accessory], error) {
	params.Validate()
	accessories, total, err := s.accessoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(accessories, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateAccessory edits an accessory
func (s *InventoryService) UpdateAccessory(ctx context.Context, businessID string, input *MaterialUpdateInput) (*entity.Accessory, error) {
	accessory, err := s.GetAccessory(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := input.apply(&accessory.Name, &accessory.Category, &accessory.Stock); err != nil {
		return nil, err
	}
	if err := s.accessoryRepo.Update(ctx, accessory); err != nil {
		return nil, err
	}
	return s.GetAccessory(ctx, businessID)
}

// ConsumeAccessory draws quantity units from an accessory
func (s *InventoryService) ConsumeAccessory(ctx context.Context, businessID string, quantity float64) (*entity.Accessory, error) {
	if _, err := s.GetAccessory(ctx, businessID); err != nil {
		return nil, err
	}
	if err := consumeOne(ctx, s.accessoryRepo.ConsumeBatch, businessID, quantity); err != nil {
		return nil, err
	}
	return s.GetAccessory(ctx, businessID)
}
