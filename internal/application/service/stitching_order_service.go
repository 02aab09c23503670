package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/billing"
	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/internal/domain/event"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/sangkips/boutique-api/pkg/pagination"
	"github.com/sangkips/boutique-api/pkg/utils"
	"go.uber.org/zap"
)

// StitchingOrderService handles tailoring orders
type StitchingOrderService struct {
	orderRepo     repository.StitchingOrderRepository
	fabricRepo    repository.FabricRepository
	accessoryRepo repository.AccessoryRepository
	customers     *CustomerService
	sequence      repository.BillSequence
	publisher     event.Publisher
	log           *zap.Logger
	now           func() time.Time
}

// NewStitchingOrderService creates a new stitching order service
func NewStitchingOrderService(
	orderRepo repository.StitchingOrderRepository,
	fabricRepo repository.FabricRepository,
	accessoryRepo repository.AccessoryRepository,
	customers *CustomerService,
	sequence repository.BillSequence,
	publisher event.Publisher,
	log *zap.Logger,
) *StitchingOrderService {
	return &StitchingOrderService{
		orderRepo:     orderRepo,
		fabricRepo:    fabricRepo,
		accessoryRepo: accessoryRepo,
		customers:     customers,
		sequence:      sequence,
		publisher:     publisher,
		log:           log,
		now:           time.Now,
	}
}

// StitchingItemInput is one garment to tailor
type StitchingItemInput struct {
	Description     string
	Quantity        int
	StitchingCharge money.Amount
}

// MaterialUsageInput draws quantity from a fabric or accessory
type MaterialUsageInput struct {
	BusinessID string
	Quantity   float64
}

// CreateStitchingOrderInput represents the create stitching order input
type CreateStitchingOrderInput struct {
	UserID              string
	CustomerPhone       string
	CustomerName        string
	Items               []StitchingItemInput
	ShopFabricCost      money.Amount
	BilledAccessoryCost money.Amount
	AsterFabricCost     money.Amount
	FabricUsages        []MaterialUsageInput
	AccessoryUsages     []MaterialUsageInput
	DeliveryDate        *time.Time
	Notes               *string
	InitialPayment      *PaymentInput
}

func (in *CreateStitchingOrderInput) validate() error {
	var errs fieldErrors
	errs.phone("customer_phone", in.CustomerPhone)
	if len(in.Items) == 0 {
		errs.add("items", "at least one garment is required")
	}
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		errs.required(field+".description", it.Description)
		if it.Quantity < 0 {
			errs.add(field+".quantity", "must be positive")
		}
		errs.nonNegative(field+".stitching_charge", it.StitchingCharge)
	}
	errs.nonNegative("shop_fabric_cost", in.ShopFabricCost)
	errs.nonNegative("billed_accessory_cost", in.BilledAccessoryCost)
	errs.nonNegative("aster_fabric_cost", in.AsterFabricCost)
	for i, u := range in.FabricUsages {
		materialUsage(&errs, fmt.Sprintf("fabric_usages[%d]", i), u)
	}
	for i, u := range in.AccessoryUsages {
		materialUsage(&errs, fmt.Sprintf("accessory_usages[%d]", i), u)
	}
	if in.InitialPayment != nil {
		errs.payment("initial_payment.", in.InitialPayment)
	}
	return errs.err()
}

func materialUsage(errs *fieldErrors, field string, u MaterialUsageInput) {
	errs.required(field+".business_id", u.BusinessID)
	if u.Quantity <= 0 {
		errs.add(field+".quantity", "must be greater than zero")
	}
}

// mergeUsages sums repeated business IDs, keeping first-seen order.
func mergeUsages(in []MaterialUsageInput) []repository.MaterialUse {
	index := make(map[string]int, len(in))
	var out []repository.MaterialUse
	for _, u := range in {
		if i, ok := index[u.BusinessID]; ok {
			out[i].Quantity += u.Quantity
			continue
		}
		index[u.BusinessID] = len(out)
		out = append(out, repository.MaterialUse{BusinessID: u.BusinessID, Quantity: u.Quantity})
	}
	return out
}

func usageRecords(uses []repository.MaterialUse) entity.JSONList[entity.MaterialUsage] {
	records := make([]entity.MaterialUsage, len(uses))
	for i, u := range uses {
		records[i] = entity.MaterialUsage{BusinessID: u.BusinessID, Quantity: u.Quantity}
	}
	return entity.NewJSONList(records...)
}

// CreateStitchingOrder books a tailoring order and draws the listed fabric
// and accessories from stock.
func (s *StitchingOrderService) CreateStitchingOrder(ctx context.Context, input *CreateStitchingOrderInput) (*entity.StitchingOrder, error) {
	input.CustomerPhone = utils.NormalizePhone(input.CustomerPhone)
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	for i := range input.Items {
		input.Items[i].Description = strings.TrimSpace(input.Items[i].Description)
		if input.Items[i].Quantity == 0 {
			input.Items[i].Quantity = 1
		}
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer, err := s.customers.EnsureCustomer(ctx, input.CustomerPhone, input.CustomerName)
	if err != nil {
		return nil, err
	}
	name := input.CustomerName
	if name == "" {
		name = customer.Name
	}

	fabricUses := mergeUsages(input.FabricUsages)
	accessoryUses := mergeUsages(input.AccessoryUsages)
	if err := s.consume(ctx, fabricUses, accessoryUses); err != nil {
		return nil, err
	}

	now := s.now()
	garments := make([]entity.StitchingItem, len(input.Items))
	order := &entity.StitchingOrder{
		CustomerPhone:       customer.Phone,
		CustomerName:        name,
		ShopFabricCost:      input.ShopFabricCost,
		BilledAccessoryCost: input.BilledAccessoryCost,
		AsterFabricCost:     input.AsterFabricCost,
		FabricUsages:        usageRecords(fabricUses),
		AccessoryUsages:     usageRecords(accessoryUses),
		DeliveryDate:        input.DeliveryDate,
		Notes:               input.Notes,
	}
	for i, it := range input.Items {
		garments[i] = entity.StitchingItem{
			Description:     it.Description,
			Quantity:        it.Quantity,
			StitchingCharge: it.StitchingCharge,
		}
		order.StitchingCharge += it.StitchingCharge.MulQty(float64(it.Quantity))
	}
	order.Items = entity.NewJSONList(garments...)
	order.TotalAmount = order.BilledTotal()
	if input.InitialPayment != nil {
		order.PaymentHistory = entity.NewJSONList(newPaymentRecord(input.InitialPayment, now))
	}
	if input.UserID != "" {
		order.CreatedBy = &input.UserID
	}
	billing.RecomputeStitching(order)

	if err := s.createWithBillNo(ctx, order); err != nil {
		s.restore(ctx, fabricUses, accessoryUses)
		return nil, err
	}

	s.log.Info("stitching order created",
		zap.Int64("bill_no", order.BillNo),
		zap.String("phone", order.CustomerPhone),
		zap.Int("garments", len(garments)),
	)
	publish(ctx, s.publisher, s.log, stitchingEvent(event.StitchingOrderCreated, order, order.AmountPaid))
	return order, nil
}

// consume draws fabrics then accessories; a failure gives back what was taken.
func (s *StitchingOrderService) consume(ctx context.Context, fabrics, accessories []repository.MaterialUse) error {
	failed, err := s.fabricRepo.ConsumeBatch(ctx, fabrics)
	if err != nil {
		return err
	}
	if len(failed) > 0 {
		return apperror.NewFieldError("fabric_usages", "not enough stock for: "+strings.Join(failed, ", "))
	}

	failed, err = s.accessoryRepo.ConsumeBatch(ctx, accessories)
	if err == nil && len(failed) > 0 {
		err = apperror.NewFieldError("accessory_usages", "not enough stock for: "+strings.Join(failed, ", "))
	}
	if err != nil {
		if restoreErr := s.fabricRepo.RestoreBatch(ctx, fabrics); restoreErr != nil {
			s.log.Error("restoring fabric stock failed", zap.Error(restoreErr))
		}
		return err
	}
	return nil
}

func (s *StitchingOrderService) restore(ctx context.Context, fabrics, accessories []repository.MaterialUse) {
	if err := s.fabricRepo.RestoreBatch(ctx, fabrics); err != nil {
		s.log.Error("restoring fabric stock failed", zap.Error(err))
	}
	if err := s.accessoryRepo.RestoreBatch(ctx, accessories); err != nil {
		s.log.Error("restoring accessory stock failed", zap.Error(err))
	}
}

func (s *StitchingOrderService) createWithBillNo(ctx context.Context, order *entity.StitchingOrder) error {
	var lastErr error
	for attempt := 1; attempt <= maxBillAttempts; attempt++ {
		order.ID = ""
		order.BillNo = s.sequence.Next(ctx)

		err := s.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !apperror.IsConflict(err) {
			s.log.Error("stitching order create failed", zap.Int64("bill_no", order.BillNo), zap.Error(err))
			return err
		}

		s.log.Warn("bill number taken, retrying", zap.Int64("bill_no", order.BillNo), zap.Int("attempt", attempt))
		s.sequence.Resync(ctx)
		lastErr = err
	}
	return lastErr
}

// GetStitchingOrder retrieves a stitching order by ID
func (s *StitchingOrderService) GetStitchingOrder(ctx context.Context, id string) (*entity.StitchingOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Stitching order")
	}
	return order, nil
}

// GetStitchingOrderByBillNo retrieves a stitching order by bill number
func (s *StitchingOrderService) GetStitchingOrderByBillNo(ctx context.Context, billNo int64) (*entity.StitchingOrder, error) {
	order, err := s.orderRepo.GetByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Stitching order")
	}
	return order, nil
}

// ListStitchingOrders lists stitching orders with filtering, newest bill first
func (s *StitchingOrderService) ListStitchingOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.StitchingOrder], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	if params.CustomerPhone != "" {
		params.CustomerPhone = utils.NormalizePhone(params.CustomerPhone)
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// AddPayment appends an instalment and re-derives the status
func (s *StitchingOrderService) AddPayment(ctx context.Context, billNo int64, input *PaymentInput) (*entity.StitchingOrder, error) {
	var errs fieldErrors
	errs.payment("", input)
	if err := errs.err(); err != nil {
		return nil, err
	}

	order, err := s.GetStitchingOrderByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if err := editable(order.Malformed()); err != nil {
		return nil, err
	}

	order.PaymentHistory.Items = append(order.PaymentHistory.Items, newPaymentRecord(input, s.now()))
	billing.RecomputeStitching(order)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.log.Error("payment save failed", zap.Int64("bill_no", billNo), zap.Error(err))
		return nil, err
	}

	publish(ctx, s.publisher, s.log, stitchingEvent(event.StitchingOrderPaymentRecorded, order, input.Amount))
	return order, nil
}

// SetItemGiven marks the garment at index as handed over (or not)
func (s *StitchingOrderService) SetItemGiven(ctx context.Context, billNo int64, index int, given bool) (*entity.StitchingOrder, error) {
	order, err := s.GetStitchingOrderByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if err := editable(order.Malformed()); err != nil {
		return nil, err
	}
	if index < 0 || index >= order.Items.Len() {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Garment %d on bill %d", index, billNo))
	}

	order.Items.Items[index].Given = given
	billing.RecomputeStitching(order)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetStatus overrides the derived status by hand
func (s *StitchingOrderService) SetStatus(ctx context.Context, billNo int64, status enum.OrderStatus) (*entity.StitchingOrder, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of pending, completed, stuck")
	}

	order, err := s.GetStitchingOrderByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	s.log.Info("stitching order status overridden", zap.Int64("bill_no", billNo), zap.String("status", string(status)))

	order.Status = status
	return order, nil
}
