package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/request"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers, optionally filtered by name or phone
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context(), paginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Customers retrieved successfully", result)
}

// Create handles registering a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Phone:        req.Phone,
		Name:         req.Name,
		Measurements: req.Measurements,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created successfully", customer)
}

// Get handles looking a customer up by phone or record id
func (h *CustomerHandler) Get(c *gin.Context) {
	var (
		customer *entity.Customer
		err      error
	)
	if id, ok := recordID(c, "phone"); ok {
		customer, err = h.customerService.GetCustomer(c.Request.Context(), id)
	} else {
		customer, err = h.customerService.GetCustomerByPhone(c.Request.Context(), c.Param("phone"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles changing a customer's name or measurements
func (h *CustomerHandler) Update(c *gin.Context) {
	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("phone"), &service.UpdateCustomerInput{
		Name:         req.Name,
		Measurements: req.Measurements,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated successfully", customer)
}
