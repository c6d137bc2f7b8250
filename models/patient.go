package models

import (
	"time"

	"gorm.io/gorm"
)

// Patient represents a person who books appointments with doctors
type Patient struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FirstName   string         `gorm:"not null" json:"first_name"`
	LastName    string         `gorm:"not null" json:"last_name"`
	PhoneNumber string         `gorm:"not null" json:"phone_number"`
	CNP         string         `gorm:"column:cnp;uniqueIndex;not null" json:"cnp"` // national id
	UserID      *uint          `gorm:"uniqueIndex" json:"user_id"`                 // optional login account
	User        *User          `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}

// FullName returns the patient's display name as "first last".
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
