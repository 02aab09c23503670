package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is keyed by phone number. Customers are never deleted.
type Customer struct {
	ID           string    `gorm:"size:36;primaryKey" json:"id"`
	Phone        string    `gorm:"size:15;not null;uniqueIndex" json:"phone"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Measurements *string   `gorm:"type:text" json:"measurements,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TableName returns the default table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
