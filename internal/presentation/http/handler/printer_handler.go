package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/request"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint(c.Request.Context())
	printed(c, "Test page sent to printer", receipt, err)
}

// PrintReceipt prints the receipt of a retail or stitching bill.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	var (
		receipt *entity.Receipt
		err     error
	)
	if req.Type == "stitching" {
		receipt, err = h.printerService.PrintStitchingReceipt(ctx, req.BillNo)
	} else {
		receipt, err = h.printerService.PrintOrderReceipt(ctx, req.BillNo)
	}
	printed(c, "Receipt printed successfully", receipt, err)
}

// printed reports a print job. When the receipt was built but the device
// failed, the receipt is still returned with a warning.
func printed(c *gin.Context, message string, receipt *entity.Receipt, err error) {
	if err != nil {
		if receipt == nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Receipt generated but printing failed", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}
	response.OK(c, message, gin.H{"receipt": receipt})
}
