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

// OrderService handles retail orders
type OrderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	customers *CustomerService
	sequence  repository.BillSequence
	publisher event.Publisher
	log       *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	customers *CustomerService,
	sequence repository.BillSequence,
	publisher event.Publisher,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		customers: customers,
		sequence:  sequence,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// OrderItemInput represents an item in an order. SellingPrice defaults to
// the item's list price.
type OrderItemInput struct {
	ItemID       string
	SellingPrice *money.Amount
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID         string
	CustomerPhone  string
	CustomerName   string
	Items          []OrderItemInput
	InitialPayment *PaymentInput
}

func (in *CreateOrderInput) validate() error {
	var errs fieldErrors
	errs.phone("customer_phone", in.CustomerPhone)
	if len(in.Items) == 0 {
		errs.add("items", "at least one item is required")
	}
	seen := make(map[string]bool, len(in.Items))
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if it.ItemID == "" {
			errs.add(field+".item_id", "is required")
		} else if seen[it.ItemID] {
			errs.add(field+".item_id", "is listed twice")
		}
		seen[it.ItemID] = true
		if it.SellingPrice != nil {
			errs.nonNegative(field+".selling_price", *it.SellingPrice)
		}
	}
	if in.InitialPayment != nil {
		errs.payment("initial_payment.", in.InitialPayment)
	}
	return errs.err()
}

// CreateOrder bills unsold items to a customer. The customer is created if
// the phone is unknown; every item is marked sold atomically.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	input.CustomerPhone = utils.NormalizePhone(input.CustomerPhone)
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	if err := input.validate(); err != nil {
		return nil, err
	}

	ids := make([]string, len(input.Items))
	for i, it := range input.Items {
		ids[i] = it.ItemID
	}
	items, err := s.itemRepo.GetByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemMap := make(map[string]*entity.Item, len(items))
	for i := range items {
		itemMap[items[i].ItemID] = &items[i]
	}

	lines := make([]entity.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		item, ok := itemMap[in.ItemID]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Item %s", in.ItemID))
		}
		if item.Sold {
			return nil, apperror.NewConflictError(fmt.Sprintf("Item %s is already sold", in.ItemID))
		}
		price := item.ListPrice()
		if in.SellingPrice != nil {
			price = *in.SellingPrice
		}
		lines = append(lines, entity.OrderItem{
			ItemID:       item.ItemID,
			Title:        item.Title,
			SellingPrice: price,
			CostPrice:    item.CostPrice,
		})
	}

	customer, err := s.customers.EnsureCustomer(ctx, input.CustomerPhone, input.CustomerName)
	if err != nil {
		s.log.Error("customer upsert failed", zap.String("phone", input.CustomerPhone), zap.Error(err))
		return nil, err
	}
	name := input.CustomerName
	if name == "" {
		name = customer.Name
	}

	now := s.now()
	order := &entity.Order{
		CustomerPhone: customer.Phone,
		CustomerName:  name,
		Items:         entity.NewJSONList(lines...),
	}
	for _, l := range lines {
		order.TotalAmount += l.SellingPrice
		order.TotalProfit += l.Profit()
	}
	if input.InitialPayment != nil {
		order.PaymentHistory = entity.NewJSONList(newPaymentRecord(input.InitialPayment, now))
	}
	if input.UserID != "" {
		order.CreatedBy = &input.UserID
	}
	billing.Recompute(order)

	if err := s.createWithBillNo(ctx, order, now); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Int64("bill_no", order.BillNo),
		zap.String("phone", order.CustomerPhone),
		zap.Int("items", len(lines)),
	)
	publish(ctx, s.publisher, s.log, orderEvent(event.OrderCreated, order, order.AmountPaid))
	return order, nil
}

// createWithBillNo assigns a bill number, marks the items sold under it and
// stores the order, retrying with a fresh number when the number is taken.
func (s *OrderService) createWithBillNo(ctx context.Context, order *entity.Order, now time.Time) error {
	ids := make([]string, order.Items.Len())
	for i, it := range order.Items.Items {
		ids[i] = it.ItemID
	}

	var lastErr error
	for attempt := 1; attempt <= maxBillAttempts; attempt++ {
		order.ID = ""
		order.BillNo = s.sequence.Next(ctx)

		sales := make([]repository.ItemSale, len(order.Items.Items))
		for i, it := range order.Items.Items {
			sales[i] = repository.ItemSale{
				ItemID:       it.ItemID,
				SellingPrice: it.SellingPrice,
				BillNo:       order.BillNo,
				SoldAt:       now,
			}
		}

		failed, err := s.itemRepo.MarkSoldBatch(ctx, sales)
		if err != nil {
			s.log.Error("marking items sold failed", zap.Int64("bill_no", order.BillNo), zap.Error(err))
			return err
		}
		if len(failed) > 0 {
			return apperror.NewConflictError("Items already sold: " + strings.Join(failed, ", "))
		}

		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}

		if relErr := s.itemRepo.ReleaseSoldBatch(ctx, order.BillNo, ids); relErr != nil {
			s.log.Error("releasing items after failed order failed",
				zap.Int64("bill_no", order.BillNo),
				zap.Strings("items", ids),
				zap.Error(relErr),
			)
		}
		if !apperror.IsConflict(err) {
			s.log.Error("order create failed", zap.Int64("bill_no", order.BillNo), zap.Error(err))
			return err
		}

		s.log.Warn("bill number taken, retrying", zap.Int64("bill_no", order.BillNo), zap.Int("attempt", attempt))
		s.sequence.Resync(ctx)
		lastErr = err
	}
	return lastErr
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// GetOrderByBillNo retrieves an order by bill number
func (s *OrderService) GetOrderByBillNo(ctx context.Context, billNo int64) (*entity.Order, error) {
	order, err := s.orderRepo.GetByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering, newest bill first
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
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

// editable refuses changes to an order whose stored lists cannot be read,
// so that a save never replaces them with partial data.
func editable(malformed []string) error {
	if len(malformed) == 0 {
		return nil
	}
	return apperror.NewConflictError("Order has unreadable data in: " + strings.Join(malformed, ", "))
}

// AddPayment appends an instalment and re-derives the status
func (s *OrderService) AddPayment(ctx context.Context, billNo int64, input *PaymentInput) (*entity.Order, error) {
	var errs fieldErrors
	errs.payment("", input)
	if err := errs.err(); err != nil {
		return nil, err
	}

	order, err := s.GetOrderByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if err := editable(order.Malformed()); err != nil {
		return nil, err
	}

	order.PaymentHistory.Items = append(order.PaymentHistory.Items, newPaymentRecord(input, s.now()))
	billing.Recompute(order)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.log.Error("payment save failed", zap.Int64("bill_no", billNo), zap.Error(err))
		return nil, err
	}

	publish(ctx, s.publisher, s.log, orderEvent(event.OrderPaymentRecorded, order, input.Amount))
	return order, nil
}

// SetItemGiven toggles the hand-over flag of one line and re-derives the status
func (s *OrderService) SetItemGiven(ctx context.Context, billNo int64, itemID string, given bool) (*entity.Order, error) {
	order, err := s.GetOrderByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if err := editable(order.Malformed()); err != nil {
		return nil, err
	}

	found := false
	for i := range order.Items.Items {
		if order.Items.Items[i].ItemID == itemID {
			order.Items.Items[i].Given = given
			found = true
			break
		}
	}
	if !found {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Item %s on bill %d", itemID, billNo))
	}

	billing.Recompute(order)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetStatus overrides the derived status by hand, e.g. to flag an order as stuck.
// The next payment or hand-over recomputes it.
func (s *OrderService) SetStatus(ctx context.Context, billNo int64, status enum.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of pending, completed, stuck")
	}

	order, err := s.GetOrderByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	s.log.Info("order status overridden", zap.Int64("bill_no", billNo), zap.String("status", string(status)))

	order.Status = status
	return order, nil
}
