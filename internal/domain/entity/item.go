package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boutique-api/pkg/money"
	"gorm.io/gorm"
)

// Item is a single ready-made piece in stock, identified by its tag (ItemID).
// Once Sold is set the item no longer changes.
type Item struct {
	ID                  string        `gorm:"size:36;primaryKey" json:"id"`
	ItemID              string        `gorm:"size:64;not null;uniqueIndex" json:"item_id"`
	Title               string        `gorm:"size:255;not null" json:"title"`
	Color               string        `gorm:"size:64" json:"color,omitempty"`
	Size                string        `gorm:"size:32" json:"size,omitempty"`
	CostPrice           money.Amount  `gorm:"not null;default:0" json:"cost_price"`
	MarkedPrice         money.Amount  `gorm:"not null;default:0" json:"marked_price"`
	DefaultSellingPrice *money.Amount `json:"default_selling_price,omitempty"`
	Sold                bool          `gorm:"not null;default:false;index" json:"sold"`
	SellingPrice        *money.Amount `json:"selling_price,omitempty"`
	SoldBillNo          *int64        `json:"sold_bill_no,omitempty"`
	SoldAt              *time.Time    `json:"sold_at,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// TableName returns the default table name for the Item model
func (Item) TableName() string {
	return "items"
}

// ListPrice is the price an unsold item is expected to fetch:
// marked price, else default selling price, else cost.
func (i *Item) ListPrice() money.Amount {
	if i.MarkedPrice > 0 {
		return i.MarkedPrice
	}
	if i.DefaultSellingPrice != nil && *i.DefaultSellingPrice > 0 {
		return *i.DefaultSellingPrice
	}
	return i.CostPrice
}
