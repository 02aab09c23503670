package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/money"
	"gorm.io/gorm"
)

// OrderItem is an item line embedded in a retail order.
type OrderItem struct {
	ItemID       string       `json:"item_id"`
	Title        string       `json:"title"`
	SellingPrice money.Amount `json:"selling_price"`
	CostPrice    money.Amount `json:"cost_price"`
	Given        bool         `json:"given"`
}

// Profit is the margin on this line.
func (i OrderItem) Profit() money.Amount {
	return i.SellingPrice - i.CostPrice
}

// Order is a retail bill. Orders are never deleted.
type Order struct {
	ID             string              `gorm:"size:36;primaryKey" json:"id"`
	BillNo         int64               `gorm:"not null;uniqueIndex" json:"bill_no"`
	CustomerPhone  string              `gorm:"size:15;not null;index" json:"customer_phone"`
	CustomerName   string              `gorm:"size:255" json:"customer_name"`
	Items          JSONList[OrderItem] `gorm:"column:items" json:"items"`
	TotalAmount    money.Amount        `gorm:"not null;default:0" json:"total_amount"`
	AmountPaid     money.Amount        `gorm:"not null;default:0" json:"amount_paid"`
	TotalProfit    money.Amount        `gorm:"not null;default:0" json:"total_profit"`
	PaymentHistory PaymentHistory      `gorm:"column:payment_history" json:"payment_history"`
	Status         enum.OrderStatus    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedBy      *string             `gorm:"size:36" json:"created_by,omitempty"`
	CreatedAt      time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// TableName returns the default table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// AmountDue is what the customer still owes; negative when overpaid.
func (o *Order) AmountDue() money.Amount {
	return o.TotalAmount - o.AmountPaid
}

// Malformed lists the embedded columns that failed to decode.
func (o *Order) Malformed() []string {
	var fields []string
	if !o.Items.Valid() {
		fields = append(fields, "items")
	}
	if !o.PaymentHistory.Valid() {
		fields = append(fields, "payment_history")
	}
	return fields
}
