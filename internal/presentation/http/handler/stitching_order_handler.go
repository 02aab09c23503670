package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/request"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
	"github.com/sangkips/boutique-api/pkg/apperror"
)

// StitchingOrderHandler handles stitching order HTTP requests
type StitchingOrderHandler struct {
	stitchingService *service.StitchingOrderService
	loc              *time.Location
}

// NewStitchingOrderHandler creates a new stitching order handler
func NewStitchingOrderHandler(stitchingService *service.StitchingOrderService, loc *time.Location) *StitchingOrderHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &StitchingOrderHandler{stitchingService: stitchingService, loc: loc}
}

func usageInputs(in []request.MaterialUsageRequest) []service.MaterialUsageInput {
	out := make([]service.MaterialUsageInput, len(in))
	for i, u := range in {
		out[i] = service.MaterialUsageInput{BusinessID: u.BusinessID, Quantity: u.Quantity}
	}
	return out
}

// List handles listing stitching orders
func (h *StitchingOrderHandler) List(c *gin.Context) {
	params, err := orderFilter(c, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.stitchingService.ListStitchingOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Stitching orders retrieved successfully", result)
}

// Create handles creating a stitching bill
func (h *StitchingOrderHandler) Create(c *gin.Context) {
	var req request.CreateStitchingOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	items := make([]service.StitchingItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = service.StitchingItemInput{
			Description:     it.Description,
			Quantity:        it.Quantity,
			StitchingCharge: it.StitchingCharge,
		}
	}

	order, err := h.stitchingService.CreateStitchingOrder(c.Request.Context(), &service.CreateStitchingOrderInput{
		UserID:              GetUserID(c),
		CustomerPhone:       req.CustomerPhone,
		CustomerName:        req.CustomerName,
		Items:               items,
		ShopFabricCost:      req.ShopFabricCost,
		BilledAccessoryCost: req.BilledAccessoryCost,
		AsterFabricCost:     req.AsterFabricCost,
		FabricUsages:        usageInputs(req.FabricUsages),
		AccessoryUsages:     usageInputs(req.AccessoryUsages),
		DeliveryDate:        req.DeliveryDate,
		Notes:               req.Notes,
		InitialPayment:      paymentInput(req.InitialPayment),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Stitching order created successfully", order)
}

// Get handles fetching a stitching order by bill number or record id
func (h *StitchingOrderHandler) Get(c *gin.Context) {
	if id, ok := recordID(c, "billNo"); ok {
		order, err := h.stitchingService.GetStitchingOrder(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Stitching order retrieved successfully", order)
		return
	}

	billNo, err := billNoParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.stitchingService.GetStitchingOrderByBillNo(c.Request.Context(), billNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stitching order retrieved successfully", order)
}

// AddPayment handles recording an instalment against a stitching bill
func (h *StitchingOrderHandler) AddPayment(c *gin.Context) {
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

	order, err := h.stitchingService.AddPayment(c.Request.Context(), billNo, paymentInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment recorded successfully", order)
}

// SetItemGiven handles flagging a garment as delivered. Garments are
// addressed by their position on the bill.
func (h *StitchingOrderHandler) SetItemGiven(c *gin.Context) {
	billNo, err := billNoParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	index, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || index < 0 {
		response.Error(c, apperror.NewFieldError("item", "must be the item's position on the bill"))
		return
	}
	var req request.SetItemGivenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	order, err := h.stitchingService.SetItemGiven(c.Request.Context(), billNo, index, *req.Given)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stitching item updated successfully", order)
}

// SetStatus handles a manual status override
func (h *StitchingOrderHandler) SetStatus(c *gin.Context) {
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

	order, err := h.stitchingService.SetStatus(c.Request.Context(), billNo, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stitching order status updated successfully", order)
}
