package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/request"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
	"github.com/sangkips/boutique-api/pkg/apperror"
)

// OrderHandler handles retail order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	loc          *time.Location
}

// NewOrderHandler creates a new order handler. loc interprets date filters.
func NewOrderHandler(orderService *service.OrderService, loc *time.Location) *OrderHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderHandler{orderService: orderService, loc: loc}
}

// orderFilter reads the list filters shared by retail and stitching orders.
// end_date is inclusive.
func orderFilter(c *gin.Context, loc *time.Location) (*repository.OrderFilterParams, error) {
	params := &repository.OrderFilterParams{
		Pagination:    paginationParams(c),
		CustomerPhone: c.Query("customer_phone"),
	}
	if raw := c.Query("status"); raw != "" {
		status := enum.OrderStatus(raw)
		if !status.IsValid() {
			return nil, apperror.NewFieldError("status", "must be one of pending completed stuck")
		}
		params.Status = &status
	}
	if dues, err := strconv.ParseBool(c.Query("with_dues")); err == nil {
		params.WithDues = dues
	}

	start, ok, err := dateQuery(c, "start_date", loc)
	if err != nil {
		return nil, err
	}
	if ok {
		params.StartDate = &start
	}
	end, ok, err := dateQuery(c, "end_date", loc)
	if err != nil {
		return nil, err
	}
	if ok {
		end = end.AddDate(0, 0, 1)
		params.EndDate = &end
	}
	return params, nil
}

func paymentInput(p *request.PaymentRequest) *service.PaymentInput {
	if p == nil {
		return nil
	}
	return &service.PaymentInput{Amount: p.Amount, Method: p.Method, Remarks: p.Remarks}
}

// List handles listing retail orders
func (h *OrderHandler) List(c *gin.Context) {
	params, err := orderFilter(c, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Orders retrieved successfully", result)
}

// Create handles creating a retail bill
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = service.OrderItemInput{ItemID: it.ItemID, SellingPrice: it.SellingPrice}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		UserID:         GetUserID(c),
		CustomerPhone:  req.CustomerPhone,
		CustomerName:   req.CustomerName,
		Items:          items,
		InitialPayment: paymentInput(req.InitialPayment),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order created successfully", order)
}

// Get handles fetching a retail order by bill number or record id
func (h *OrderHandler) Get(c *gin.Context) {
	if id, ok := recordID(c, "billNo"); ok {
		order, err := h.orderService.GetOrder(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Order retrieved successfully", order)
		return
	}

	billNo, err := billNoParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.GetOrderByBillNo(c.Request.Context(), billNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// AddPayment handles recording an instalment against a bill
func (h *OrderHandler) AddPayment(c *gin.Context) {
	billNo, err := billNoParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	order, err := h.orderService.AddPayment(c.Request.Context(), billNo, paymentInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment recorded successfully", order)
}

// SetItemGiven handles flagging an item as handed over
func (h *OrderHandler) SetItemGiven(c *gin.Context) {
	billNo, err := billNoParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.SetItemGivenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	order, err := h.orderService.SetItemGiven(c.Request.Context(), billNo, c.Param("itemId"), *req.Given)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order item updated successfully", order)
}

// SetStatus handles a manual status override
func (h *OrderHandler) SetStatus(c *gin.Context) {
	billNo, err := billNoParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	order, err := h.orderService.SetStatus(c.Request.Context(), billNo, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order status updated successfully", order)
}
