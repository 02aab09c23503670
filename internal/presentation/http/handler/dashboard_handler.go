package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// GetChart handles the revenue series, ?period=daily|monthly
func (h *DashboardHandler) GetChart(c *gin.Context) {
	points, err := h.dashboardService.GetChart(c.Request.Context(), c.DefaultQuery("period", service.PeriodDaily))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Chart data retrieved successfully", points)
}

// GetTopCustomers handles the revenue ranking, ?limit=N
func (h *DashboardHandler) GetTopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	top, err := h.dashboardService.GetTopCustomers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Top customers retrieved successfully", top)
}
