package model

import "time"

// UserRole classifies API callers. Account management lives in the external
// auth service; this table only anchors ownership foreign keys.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleInvestor UserRole = "INVESTOR"
	RoleAdmin    UserRole = "ADMIN"
)

// User is the local shadow of an externally managed account.
type User struct {
	ID        int64    `gorm:"primaryKey" json:"id"`
	Name      string   `gorm:"size:255" json:"name"`
	Phone     string   `gorm:"size:64" json:"phone"`
	Role      UserRole `gorm:"size:16;not null;index" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
