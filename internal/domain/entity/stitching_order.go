package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/money"
	"gorm.io/gorm"
)

// StitchingItem is one garment to be tailored.
type StitchingItem struct {
	Description     string       `json:"description"`
	Quantity        int          `json:"quantity"`
	StitchingCharge money.Amount `json:"stitching_charge"`
	Given           bool         `json:"given"`
}

// MaterialUsage records how much of a fabric or accessory an order consumed.
type MaterialUsage struct {
	BusinessID string  `json:"business_id"`
	Quantity   float64 `json:"quantity"`
}

// StitchingOrder is a tailoring bill. Aster fabric is tracked for internal
// costing only and is never billed to the customer.
type StitchingOrder struct {
	ID                  string                  `gorm:"size:36;primaryKey" json:"id"`
	BillNo              int64                   `gorm:"not null;uniqueIndex" json:"bill_no"`
	CustomerPhone       string                  `gorm:"size:15;not null;index" json:"customer_phone"`
	CustomerName        string                  `gorm:"size:255" json:"customer_name"`
	Items               JSONList[StitchingItem] `gorm:"column:items" json:"items"`
	StitchingCharge     money.Amount            `gorm:"not null;default:0" json:"stitching_charge"`
	ShopFabricCost      money.Amount            `gorm:"not null;default:0" json:"shop_fabric_cost"`
	BilledAccessoryCost money.Amount            `gorm:"not null;default:0" json:"billed_accessory_cost"`
	AsterFabricCost     money.Amount            `gorm:"not null;default:0" json:"aster_fabric_cost"`
	FabricUsages        JSONList[MaterialUsage] `gorm:"column:fabric_usages" json:"fabric_usages"`
	AccessoryUsages     JSONList[MaterialUsage] `gorm:"column:accessory_usages" json:"accessory_usages"`
	TotalAmount         money.Amount            `gorm:"not null;default:0" json:"total_amount"`
	AmountPaid          money.Amount            `gorm:"not null;default:0" json:"amount_paid"`
	PaymentHistory      PaymentHistory          `gorm:"column:payment_history" json:"payment_history"`
	Status              enum.OrderStatus        `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DeliveryDate        *time.Time              `json:"delivery_date,omitempty"`
	Notes               *string                 `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy           *string                 `gorm:"size:36" json:"created_by,omitempty"`
	CreatedAt           time.Time               `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new stitching order
func (o *StitchingOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// TableName returns the default table name for the StitchingOrder model
func (StitchingOrder) TableName() string {
	return "stitching_orders"
}

// BilledTotal is what the customer is charged.
func (o *StitchingOrder) BilledTotal() money.Amount {
	return o.StitchingCharge + o.ShopFabricCost + o.BilledAccessoryCost
}

// Profit counts stitching charge plus the shop fabric and accessories billed.
func (o *StitchingOrder) Profit() money.Amount {
	return o.StitchingCharge + o.ShopFabricCost + o.BilledAccessoryCost
}

// AmountDue is what the customer still owes; negative when overpaid.
func (o *StitchingOrder) AmountDue() money.Amount {
	return o.TotalAmount - o.AmountPaid
}

// Malformed lists the embedded columns that failed to decode.
func (o *StitchingOrder) Malformed() []string {
	var fields []string
	if !o.Items.Valid() {
		fields = append(fields, "items")
	}
	if !o.PaymentHistory.Valid() {
		fields = append(fields, "payment_history")
	}
	if !o.FabricUsages.Valid() {
		fields = append(fields, "fabric_usages")
	}
	if !o.AccessoryUsages.Valid() {
		fields = append(fields, "accessory_usages")
	}
	return fields
}
