package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment represents a booked time slot for a doctor and/or a patient.
// Both references are nullable at the schema level; the booking service
// always sets the doctor and sets the patient for patient-made bookings.
type Appointment struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	AppointmentDetails string         `gorm:"not null" json:"appointment_details"`
	AppointmentDate    time.Time      `gorm:"not null;index" json:"appointment_date"`
	DoctorID           *uint          `gorm:"index" json:"doctor_id"`
	Doctor             *Doctor        `gorm:"foreignKey:DoctorID" json:"-"`
	PatientID          *uint          `gorm:"index" json:"patient_id"`
	Patient            *Patient       `gorm:"foreignKey:PatientID" json:"-"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
