// Package dto holds the JSON shapes exposed by the API layer and the
// mapping from persistent models to those shapes.
package dto

import (
	"time"

	"github.com/smilecare/dental-scheduler-api/models"
)

// AppointmentDTO is the API representation of an appointment, enriched
// with the display names of the referenced doctor and patient.
type AppointmentDTO struct {
	ID                 uint      `json:"id"`
	AppointmentDetails string    `json:"appointment_details"`
	DoctorName         *string   `json:"doctor_name,omitempty"`
	DoctorID           *uint     `json:"doctor_id"`
	PatientName        *string   `json:"patient_name,omitempty"`
	PatientID          *uint     `json:"patient_id"`
	AppointmentDate    time.Time `json:"appointment_date"`
}

// CalendarView groups appointments by calendar date and then by the
// HH:mm time label. String keys serialize in sorted, hence
// chronological, order.
type CalendarView struct {
	Calendar map[string]map[string][]AppointmentDTO `json:"calendar"`
}

// DoctorDTO is the API representation of a doctor.
type DoctorDTO struct {
	ID          uint   `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	CNP         string `json:"cnp"`
}

// PatientDTO is the API representation of a patient.
type PatientDTO struct {
	ID          uint   `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	CNP         string `json:"cnp"`
}

// TokenDetails is returned by login and register endpoints.
type TokenDetails struct {
	Token          string    `json:"token"`
	Username       string    `json:"username"`
	IssuedAt       time.Time `json:"issued_at"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// FromAppointment maps an appointment to its DTO. Doctor and patient
// names are present only when the associated record is loaded.
func FromAppointment(a *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:                 a.ID,
		AppointmentDetails: a.AppointmentDetails,
		DoctorID:           a.DoctorID,
		PatientID:          a.PatientID,
		AppointmentDate:    a.AppointmentDate.UTC(),
	}
	if a.Doctor != nil {
		name := a.Doctor.FullName()
		out.DoctorName = &name
	}
	if a.Patient != nil {
		name := a.Patient.FullName()
		out.PatientName = &name
	}
	return out
}

// FromAppointments maps a slice of appointments preserving order.
func FromAppointments(appointments []models.Appointment) []AppointmentDTO {
	dtos := make([]AppointmentDTO, 0, len(appointments))
	for i := range appointments {
		dtos = append(dtos, FromAppointment(&appointments[i]))
	}
	return dtos
}

// FromDoctor maps a doctor to its DTO.
func FromDoctor(d *models.Doctor) DoctorDTO {
	return DoctorDTO{
		ID:          d.ID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		PhoneNumber: d.PhoneNumber,
		CNP:         d.CNP,
	}
}

// FromDoctors maps a slice of doctors preserving order.
func FromDoctors(doctors []models.Doctor) []DoctorDTO {
	dtos := make([]DoctorDTO, 0, len(doctors))
	for i := range doctors {
		dtos = append(dtos, FromDoctor(&doctors[i]))
	}
	return dtos
}

// FromPatient maps a patient to its DTO.
func FromPatient(p *models.Patient) PatientDTO {
	return PatientDTO{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
		CNP:         p.CNP,
	}
}

// FromPatients maps a slice of patients preserving order.
func FromPatients(patients []models.Patient) []PatientDTO {
	dtos := make([]PatientDTO, 0, len(patients))
	for i := range patients {
		dtos = append(dtos, FromPatient(&patients[i]))
	}
	return dtos
}
