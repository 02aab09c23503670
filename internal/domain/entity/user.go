package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a member of shop staff who can sign in to the API.
type User struct {
	ID          string     `gorm:"size:36;primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Email       string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string     `gorm:"size:255" json:"-"`
	Provider    string     `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID  *string    `gorm:"size:255" json:"-"`
	Role        enum.Role  `gorm:"size:20;not null;default:'staff'" json:"role"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasPermission checks if the user's role grants a permission
func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Role.Permissions() {
		if p == permission {
			return true
		}
	}
	return false
}

// GetPermissions returns all permission names for the user
func (u *User) GetPermissions() []string {
	return u.Role.Permissions()
}
