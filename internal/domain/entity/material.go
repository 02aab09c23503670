package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boutique-api/pkg/money"
	"gorm.io/gorm"
)

// QuantityEpsilon absorbs float rounding when comparing metres or units, so
// 0.1 + 0.2 of a 0.3 bolt uses it up exactly.
const QuantityEpsilon = 1e-9

// MaterialStock holds the quantity and rate fields shared by fabrics and accessories.
type MaterialStock struct {
	TotalQuantity float64      `gorm:"not null;default:0" json:"total_quantity"`
	UsedQuantity  float64      `gorm:"not null;default:0" json:"used_quantity"`
	PurchaseRate  money.Amount `gorm:"not null;default:0" json:"purchase_rate"`
	SellingRate   money.Amount `gorm:"not null;default:0" json:"selling_rate"`
}

// Remaining is the unconsumed quantity.
func (m MaterialStock) Remaining() float64 {
	remaining := m.TotalQuantity - m.UsedQuantity
	if remaining < QuantityEpsilon && remaining > -QuantityEpsilon {
		return 0
	}
	return remaining
}

// StockValue values the remaining quantity at purchase rate.
func (m MaterialStock) StockValue() money.Amount {
	remaining := m.Remaining()
	if remaining <= 0 {
		return 0
	}
	return m.PurchaseRate.MulQty(remaining)
}

// Fabric is a bolt of cloth, measured in metres.
type Fabric struct {
	ID         string        `gorm:"size:36;primaryKey" json:"id"`
	BusinessID string        `gorm:"size:64;not null;uniqueIndex" json:"business_id"`
	Name       string        `gorm:"size:255;not null" json:"name"`
	Color      string        `gorm:"size:64" json:"color,omitempty"`
	Stock      MaterialStock `gorm:"embedded" json:"stock"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new fabric
func (f *Fabric) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// TableName returns the default table name for the Fabric model
func (Fabric) TableName() string {
	return "fabrics"
}

// Accessory is a countable trim item (buttons, lace, zips).
type Accessory struct {
	ID         string        `gorm:"size:36;primaryKey" json:"id"`
	BusinessID string        `gorm:"size:64;not null;uniqueIndex" json:"business_id"`
	Name       string        `gorm:"size:255;not null" json:"name"`
	Category   string        `gorm:"size:64" json:"category,omitempty"`
	Stock      MaterialStock `gorm:"embedded" json:"stock"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new accessory
func (a *Accessory) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// TableName returns the default table name for the Accessory model
func (Accessory) TableName() string {
	return "accessories"
}
