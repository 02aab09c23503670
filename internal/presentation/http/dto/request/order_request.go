package request

import (
	"time"

	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/money"
)

// PaymentRequest is one instalment
type PaymentRequest struct {
	Amount  money.Amount       `json:"amount"`
	Method  enum.PaymentMethod `json:"method" binding:"required"`
	Remarks string             `json:"remarks" binding:"max=500"`
}

// OrderItemRequest is one item sold on a retail bill
type OrderItemRequest struct {
	ItemID       string        `json:"item_id" binding:"required"`
	SellingPrice *money.Amount `json:"selling_price"`
}

// CreateOrderRequest represents a retail order creation request
type CreateOrderRequest struct {
	CustomerPhone  string             `json:"customer_phone" binding:"required"`
	CustomerName   string             `json:"customer_name" binding:"max=255"`
	Items          []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	InitialPayment *PaymentRequest    `json:"initial_payment"`
}

// StitchingItemRequest is one garment on a stitching bill
type StitchingItemRequest struct {
	Description     string       `json:"description" binding:"required"`
	Quantity        int          `json:"quantity" binding:"min=0"`
	StitchingCharge money.Amount `json:"stitching_charge"`
}

// MaterialUsageRequest draws stock from a fabric or accessory
type MaterialUsageRequest struct {
	BusinessID string  `json:"business_id" binding:"required"`
	Quantity   float64 `json:"quantity"`
}

// CreateStitchingOrderRequest represents a stitching order creation request
type CreateStitchingOrderRequest struct {
	CustomerPhone       string                 `json:"customer_phone" binding:"required"`
	CustomerName        string                 `json:"customer_name" binding:"max=255"`
	Items               []StitchingItemRequest `json:"items" binding:"required,min=1,dive"`
	ShopFabricCost      money.Amount           `json:"shop_fabric_cost"`
	BilledAccessoryCost money.Amount           `json:"billed_accessory_cost"`
	AsterFabricCost     money.Amount           `json:"aster_fabric_cost"`
	FabricUsages        []MaterialUsageRequest `json:"fabric_usages" binding:"dive"`
	AccessoryUsages     []MaterialUsageRequest `json:"accessory_usages" binding:"dive"`
	DeliveryDate        *time.Time             `json:"delivery_date"`
	Notes               *string                `json:"notes"`
	InitialPayment      *PaymentRequest        `json:"initial_payment"`
}

// SetItemGivenRequest flags whether an item has been handed over
type SetItemGivenRequest struct {
	Given *bool `json:"given" binding:"required"`
}

// SetStatusRequest manually overrides an order status
type SetStatusRequest struct {
	Status enum.OrderStatus `json:"status" binding:"required"`
}
