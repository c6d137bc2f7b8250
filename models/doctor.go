package models

import (
	"time"

	"gorm.io/gorm"
)

// Doctor represents a practitioner who can be booked for appointments
type Doctor struct {
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

// TableName specifies the table name for the Doctor model
func (Doctor) TableName() string {
	return "doctors"
}

// FullName returns the doctor's display name as "first last".
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
