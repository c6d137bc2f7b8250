package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/smilecare/dental-scheduler-api/dto"
	"github.com/smilecare/dental-scheduler-api/models"
	"gorm.io/gorm"
)

// bookingWindow is the exclusivity window around a requested slot. No
// two appointments for the same doctor, or the same patient, may have
// dates within this distance of each other (bounds inclusive).
const bookingWindow = 59 * time.Minute

// AppointmentService enforces the scheduling invariants and mediates
// the appointment lifecycle.
type AppointmentService struct {
	db *gorm.DB
}

// NewAppointmentService creates an appointment service backed by db.
func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// Create books an appointment with the given doctor on behalf of the
// caller's linked patient record. The caller must hold the ADMIN or
// CLIENT role and have a linked patient. The requested date must not be
// in the past and must not fall within the booking window of an
// existing appointment for either the doctor or the patient.
func (s *AppointmentService) Create(caller *models.User, doctorID uint, appointmentDate, details string) (*dto.AppointmentDTO, error) {
	date, err := parseAppointmentDate(appointmentDate)
	if err != nil {
		return nil, err
	}

	patient, err := s.patientForCaller(caller)
	if err != nil {
		return nil, err
	}

	booked, err := s.doctorBookedWithin(doctorID, date)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, NewConflictError("The doctor already has an appointment at this hour!")
	}

	booked, err = s.patientBookedWithin(patient.ID, date)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, NewConflictError("You already have another appointment at this hour!")
	}

	appointment := models.Appointment{
		AppointmentDetails: details,
		AppointmentDate:    date,
		DoctorID:           &doctorID,
		PatientID:          &patient.ID,
	}
	if err := s.db.Create(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return s.loadDTO(appointment.ID)
}

// CreateAsDoctor books an appointment slot for the caller's linked
// doctor record with no patient attached. The caller must hold the
// ADMIN or EMPLOYEE role. Only the doctor-side window is checked.
func (s *AppointmentService) CreateAsDoctor(caller *models.User, appointmentDate, details string) (*dto.AppointmentDTO, error) {
	date, err := parseAppointmentDate(appointmentDate)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorForCaller(caller)
	if err != nil {
		return nil, err
	}

	booked, err := s.doctorBookedWithin(doctor.ID, date)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, NewConflictError("You cannot reserve this slot!")
	}

	appointment := models.Appointment{
		AppointmentDetails: details,
		AppointmentDate:    date,
		DoctorID:           &doctor.ID,
	}
	if err := s.db.Create(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return s.loadDTO(appointment.ID)
}

// Edit updates the free-text details of an appointment. Date, doctor
// and patient are immutable here. A caller with a linked patient record
// may only edit appointments belonging to that patient.
func (s *AppointmentService) Edit(caller *models.User, id uint, details string) (*dto.AppointmentDTO, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Appointment does not exist!")
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	var patient models.Patient
	err := s.db.Where("user_id = ?", caller.ID).First(&patient).Error
	switch {
	case err == nil:
		if appointment.PatientID == nil || *appointment.PatientID != patient.ID {
			return nil, NewForbiddenError("Appointment is not included in your appointment list!")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// caller has no patient record, the ownership rule does not apply
	default:
		return nil, fmt.Errorf("failed to resolve caller's patient: %w", err)
	}

	appointment.AppointmentDetails = details
	if err := s.db.Save(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	return s.loadDTO(appointment.ID)
}

// Delete removes an appointment by id.
func (s *AppointmentService) Delete(id uint) error {
	var appointment models.Appointment
	if err := s.db.First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Appointment does not exist!")
		}
		return fmt.Errorf("failed to load appointment: %w", err)
	}

	if err := s.db.Delete(&appointment).Error; err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

// All returns every appointment.
func (s *AppointmentService) All() ([]dto.AppointmentDTO, error) {
	var appointments []models.Appointment
	if err := s.db.Preload("Doctor").Preload("Patient").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return dto.FromAppointments(appointments), nil
}

// AllForPatient returns every appointment of the given patient.
func (s *AppointmentService) AllForPatient(patientID uint) ([]dto.AppointmentDTO, error) {
	var appointments []models.Appointment
	if err := s.db.Preload("Doctor").Preload("Patient").
		Where("patient_id = ?", patientID).
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return dto.FromAppointments(appointments), nil
}

// AllForDoctor returns every appointment of the given doctor, ordered
// by appointment date ascending.
func (s *AppointmentService) AllForDoctor(doctorID uint) ([]dto.AppointmentDTO, error) {
	var appointments []models.Appointment
	if err := s.db.Preload("Doctor").Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date asc").
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return dto.FromAppointments(appointments), nil
}

// FindByID returns a single appointment by id.
func (s *AppointmentService) FindByID(id uint) (*dto.AppointmentDTO, error) {
	return s.loadDTO(id)
}

// parseAppointmentDate parses an ISO-8601 instant, normalizes it to
// UTC and rejects dates in the past.
func parseAppointmentDate(value string) (time.Time, error) {
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, NewValidationError("Invalid appointment date, expected an ISO-8601 timestamp")
	}
	date = date.UTC()

	if date.Before(time.Now().UTC()) {
		return time.Time{}, NewValidationError("You cannot create an appointment in the past!")
	}
	return date, nil
}

// doctorBookedWithin reports whether the doctor has any appointment
// with a date inside [date-59m, date+59m], bounds inclusive.
func (s *AppointmentService) doctorBookedWithin(doctorID uint, date time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date BETWEEN ? AND ?",
			doctorID, date.Add(-bookingWindow), date.Add(bookingWindow)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query doctor appointments: %w", err)
	}
	return count > 0, nil
}

// patientBookedWithin is the patient-side counterpart of
// doctorBookedWithin.
func (s *AppointmentService) patientBookedWithin(patientID uint, date time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Appointment{}).
		Where("patient_id = ? AND appointment_date BETWEEN ? AND ?",
			patientID, date.Add(-bookingWindow), date.Add(bookingWindow)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query patient appointments: %w", err)
	}
	return count > 0, nil
}

// patientForCaller resolves the caller's linked patient record.
func (s *AppointmentService) patientForCaller(caller *models.User) (*models.Patient, error) {
	if !caller.HasAnyRole(models.RoleAdmin, models.RoleClient) {
		return nil, NewForbiddenError("You are not allowed to do this action!")
	}

	var patient models.Patient
	if err := s.db.Where("user_id = ?", caller.ID).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Patient does not exist!")
		}
		return nil, fmt.Errorf("failed to resolve caller's patient: %w", err)
	}
	return &patient, nil
}

// doctorForCaller resolves the caller's linked doctor record.
func (s *AppointmentService) doctorForCaller(caller *models.User) (*models.Doctor, error) {
	if !caller.HasAnyRole(models.RoleAdmin, models.RoleEmployee) {
		return nil, NewForbiddenError("You are not allowed to do this action!")
	}

	var doctor models.Doctor
	if err := s.db.Where("user_id = ?", caller.ID).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Doctor does not exist!")
		}
		return nil, fmt.Errorf("failed to resolve caller's doctor: %w", err)
	}
	return &doctor, nil
}

// loadDTO fetches an appointment with its associations and maps it.
func (s *AppointmentService) loadDTO(id uint) (*dto.AppointmentDTO, error) {
	var appointment models.Appointment
	if err := s.db.Preload("Doctor").Preload("Patient").First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Appointment does not exist!")
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	result := dto.FromAppointment(&appointment)
	return &result, nil
}
