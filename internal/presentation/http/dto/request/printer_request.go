package request

// PrintReceiptRequest is the request body for printing a receipt.
type PrintReceiptRequest struct {
	Type   string `json:"type" binding:"required,oneof=order stitching"`
	BillNo int64  `json:"bill_no" binding:"required,min=1"`
}
