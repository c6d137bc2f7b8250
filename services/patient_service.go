package services

import (
	"errors"
	"fmt"

	"github.com/smilecare/dental-scheduler-api/dto"
	"github.com/smilecare/dental-scheduler-api/models"
	"gorm.io/gorm"
)

// PatientService manages patient records.
type PatientService struct {
	db *gorm.DB
}

// NewPatientService creates a patient service backed by db.
func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

// All returns every patient.
func (s *PatientService) All() ([]dto.PatientDTO, error) {
	var patients []models.Patient
	if err := s.db.Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return dto.FromPatients(patients), nil
}

// FindByID returns a single patient by id.
func (s *PatientService) FindByID(id uint) (*dto.PatientDTO, error) {
	var patient models.Patient
	if err := s.db.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Patient does not exist!")
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	result := dto.FromPatient(&patient)
	return &result, nil
}

// Create adds a patient. The CNP must not belong to an existing patient.
func (s *PatientService) Create(in dto.PatientDTO) (*dto.PatientDTO, error) {
	var existing models.Patient
	err := s.db.Where("cnp = ?", in.CNP).First(&existing).Error
	if err == nil {
		return nil, NewConflictError("This patient already exists!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check patient cnp: %w", err)
	}

	patient := models.Patient{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		CNP:         in.CNP,
	}
	if err := s.db.Create(&patient).Error; err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	result := dto.FromPatient(&patient)
	return &result, nil
}

// EditDetails updates a patient's personal details. A caller linked to
// a patient record may only edit their own record.
func (s *PatientService) EditDetails(caller *models.User, id uint, in dto.PatientDTO) (*dto.PatientDTO, error) {
	var patient models.Patient
	if err := s.db.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Patient does not exist!")
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	if caller == nil {
		return nil, NewUnauthorizedError("User not logged in!")
	}

	var own models.Patient
	err := s.db.Where("user_id = ?", caller.ID).First(&own).Error
	switch {
	case err == nil:
		if own.ID != patient.ID {
			return nil, NewForbiddenError("Can't change the details of another account.")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// caller has no patient record, the ownership rule does not apply
	default:
		return nil, fmt.Errorf("failed to resolve caller's patient: %w", err)
	}

	patient.FirstName = in.FirstName
	patient.LastName = in.LastName
	patient.PhoneNumber = in.PhoneNumber
	patient.CNP = in.CNP

	if err := s.db.Save(&patient).Error; err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	result := dto.FromPatient(&patient)
	return &result, nil
}

// Delete removes a patient and all of their appointments.
func (s *PatientService) Delete(id uint) error {
	var patient models.Patient
	if err := s.db.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Patient does not exist!")
		}
		return fmt.Errorf("failed to load patient: %w", err)
	}

	// the patient owns its appointments, so they go with it
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&patient).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}
