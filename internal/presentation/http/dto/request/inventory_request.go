package request

import "github.com/sangkips/boutique-api/pkg/money"

// CreateMaterialRequest creates a fabric or an accessory. Variant is the
// fabric colour or the accessory category.
type CreateMaterialRequest struct {
	BusinessID    string       `json:"business_id" binding:"required,max=100"`
	Name          string       `json:"name" binding:"required,max=255"`
	Variant       string       `json:"variant" binding:"max=100"`
	TotalQuantity float64      `json:"total_quantity"`
	UsedQuantity  float64      `json:"used_quantity"`
	PurchaseRate  money.Amount `json:"purchase_rate"`
	SellingRate   money.Amount `json:"selling_rate"`
}

// UpdateMaterialRequest updates a fabric or an accessory
type UpdateMaterialRequest struct {
	Name          *string       `json:"name" binding:"omitempty,max=255"`
	Variant       *string       `json:"variant" binding:"omitempty,max=100"`
	TotalQuantity *float64      `json:"total_quantity"`
	PurchaseRate  *money.Amount `json:"purchase_rate"`
	SellingRate   *money.Amount `json:"selling_rate"`
}

// ConsumeRequest draws quantity from stock
type ConsumeRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
}
