package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles spreadsheet exports
type ReportHandler struct {
	reportService *service.ReportService
	loc           *time.Location
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{reportService: reportService, loc: loc}
}

// ExportOrders streams an xlsx workbook of retail and stitching orders.
// from and to are inclusive YYYY-MM-DD dates; both are optional.
func (h *ReportHandler) ExportOrders(c *gin.Context) {
	from, _, err := dateQuery(c, "from", h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, hasTo, err := dateQuery(c, "to", h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	if hasTo {
		to = to.AddDate(0, 0, 1)
	}

	// Buffer so a failed export can still answer with a JSON error.
	var buf bytes.Buffer
	if err := h.reportService.ExportOrders(c.Request.Context(), &buf, from, to); err != nil {
		response.Error(c, err)
		return
	}

	name := fmt.Sprintf("orders-%s.xlsx", time.Now().In(h.loc).Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
