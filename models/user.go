package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values assignable to a User. EMPLOYEE is a doctor account,
// CLIENT is a patient account.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleClient   = "CLIENT"
)

// User represents a login account in the system
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	Password  string         `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Role      string         `gorm:"not null" json:"role"` // ADMIN, EMPLOYEE or CLIENT
	Active    bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasAnyRole reports whether the user's role is one of the given roles.
func (u *User) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}
