package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/request"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
)

// maxImportSize caps an uploaded item sheet
const maxImportSize = 10 << 20

// ItemHandler handles inventory item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List handles listing items. sold=true|false narrows to sold or unsold stock.
func (h *ItemHandler) List(c *gin.Context) {
	params := &repository.ItemFilterParams{
		Pagination: paginationParams(c),
		Search:     c.Query("search"),
	}
	if raw := c.Query("sold"); raw != "" {
		if sold, err := strconv.ParseBool(raw); err == nil {
			params.Sold = &sold
		}
	}

	result, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Items retrieved successfully", result)
}

// Create handles adding an item to stock
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		ItemID:              req.ItemID,
		Title:               req.Title,
		Color:               req.Color,
		Size:                req.Size,
		CostPrice:           req.CostPrice,
		MarkedPrice:         req.MarkedPrice,
		DefaultSellingPrice: req.DefaultSellingPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item created successfully", item)
}

// Get handles fetching an item by its item ID
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.itemService.GetItem(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item retrieved successfully", item)
}

// Update handles editing an unsold item
func (h *ItemHandler) Update(c *gin.Context) {
	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), c.Param("itemId"), &service.UpdateItemInput{
		Title:               req.Title,
		Color:               req.Color,
		Size:                req.Size,
		CostPrice:           req.CostPrice,
		MarkedPrice:         req.MarkedPrice,
		DefaultSellingPrice: req.DefaultSellingPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item updated successfully", item)
}

// Import handles a multipart xlsx upload in the "file" field
func (h *ItemHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "An .xlsx file is required in the \"file\" field")
		return
	}
	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	result, err := h.itemService.ImportItems(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Items imported successfully", result)
}
