package entity

import "time"

// ShopSettingsID is the primary key of the single settings row.
const ShopSettingsID = 1

// ShopSettings holds shop-wide details printed on receipts.
type ShopSettings struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	StoreName     string    `gorm:"size:255;not null" json:"store_name"`
	Address       string    `gorm:"type:text" json:"address"`
	Phone         string    `gorm:"size:50" json:"phone"`
	GSTIN         string    `gorm:"size:20;column:gstin" json:"gstin"`
	Currency      string    `gorm:"size:10;default:'INR'" json:"currency"`
	Timezone      string    `gorm:"size:50;default:'Asia/Kolkata'" json:"timezone"`
	ReceiptFooter string    `gorm:"size:255" json:"receipt_footer"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for the ShopSettings model
func (ShopSettings) TableName() string {
	return "shop_settings"
}

// DefaultShopSettings is used until the owner saves their own.
func DefaultShopSettings() *ShopSettings {
	return &ShopSettings{
		ID:            ShopSettingsID,
		StoreName:     "Boutique",
		Currency:      "INR",
		Timezone:      "Asia/Kolkata",
		ReceiptFooter: "Thank you for shopping with us!",
	}
}
