package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/request"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles fabric and accessory HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func materialInput(req *request.CreateMaterialRequest) *service.MaterialInput {
	return &service.MaterialInput{
		BusinessID:    req.BusinessID,
		Name:          req.Name,
		Variant:       req.Variant,
		TotalQuantity: req.TotalQuantity,
		UsedQuantity:  req.UsedQuantity,
		PurchaseRate:  req.PurchaseRate,
		SellingRate:   req.SellingRate,
	}
}

func materialUpdate(req *request.UpdateMaterialRequest) *service.MaterialUpdateInput {
	return &service.MaterialUpdateInput{
		Name:          req.Name,
		Variant:       req.Variant,
		TotalQuantity: req.TotalQuantity,
		PurchaseRate:  req.PurchaseRate,
		SellingRate:   req.SellingRate,
	}
}

// ListFabrics handles listing fabrics
func (h *InventoryHandler) ListFabrics(c *gin.Context) {
	result, err := h.inventoryService.ListFabrics(c.Request.Context(), paginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Fabrics retrieved successfully", result)
}

// CreateFabric handles adding a fabric
func (h *InventoryHandler) CreateFabric(c *gin.Context) {
	var req request.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	fabric, err := h.inventoryService.CreateFabric(c.Request.Context(), materialInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Fabric created successfully", fabric)
}

// GetFabric handles fetching a fabric by business ID
func (h *InventoryHandler) GetFabric(c *gin.Context) {
	fabric, err := h.inventoryService.GetFabric(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fabric retrieved successfully", fabric)
}

// UpdateFabric handles editing a fabric
func (h *InventoryHandler) UpdateFabric(c *gin.Context) {
	var req request.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	fabric, err := h.inventoryService.UpdateFabric(c.Request.Context(), c.Param("businessId"), materialUpdate(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fabric updated successfully", fabric)
}

// ConsumeFabric handles drawing fabric from stock outside a stitching order
func (h *InventoryHandler) ConsumeFabric(c *gin.Context) {
	var req request.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	fabric, err := h.inventoryService.ConsumeFabric(c.Request.Context(), c.Param("businessId"), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fabric stock updated", fabric)
}

// ListAccessories handles listing accessories
func (h *InventoryHandler) ListAccessories(c *gin.Context) {
	result, err := h.inventoryService.ListAccessories(c.Request.Context(), paginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Accessories retrieved successfully", result)
}

// CreateAccessory handles adding an accessory
func (h *InventoryHandler) CreateAccessory(c *gin.Context) {
	var req request.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	accessory, err := h.inventoryService.CreateAccessory(c.Request.Context(), materialInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Accessory created successfully", accessory)
}

// GetAccessory handles fetching an accessory by business ID
func (h *InventoryHandler) GetAccessory(c *gin.Context) {
	accessory, err := h.inventoryService.GetAccessory(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Accessory retrieved successfully", accessory)
}

// UpdateAccessory handles editing an accessory
func (h *InventoryHandler) UpdateAccessory(c *gin.Context) {
	var req request.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	accessory, err := h.inventoryService.UpdateAccessory(c.Request.Context(), c.Param("businessId"), materialUpdate(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Accessory updated successfully", accessory)
}

// ConsumeAccessory handles drawing an accessory from stock
func (h *InventoryHandler) ConsumeAccessory(c *gin.Context) {
	var req request.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	accessory, err := h.inventoryService.ConsumeAccessory(c.Request.Context(), c.Param("businessId"), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Accessory stock updated", accessory)
}
