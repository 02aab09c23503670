package request

import "github.com/sangkips/boutique-api/pkg/money"

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	ItemID              string        `json:"item_id" binding:"required,max=100"`
	Title               string        `json:"title" binding:"required,max=255"`
	Color               string        `json:"color" binding:"max=100"`
	Size                string        `json:"size" binding:"max=50"`
	CostPrice           money.Amount  `json:"cost_price"`
	MarkedPrice         money.Amount  `json:"marked_price"`
	DefaultSellingPrice *money.Amount `json:"default_selling_price"`
}

// UpdateItemRequest represents an item update request
type UpdateItemRequest struct {
	Title               *string       `json:"title" binding:"omitempty,max=255"`
	Color               *string       `json:"color" binding:"omitempty,max=100"`
	Size                *string       `json:"size" binding:"omitempty,max=50"`
	CostPrice           *money.Amount `json:"cost_price"`
	MarkedPrice         *money.Amount `json:"marked_price"`
	DefaultSellingPrice *money.Amount `json:"default_selling_price"`
}
