package services

import (
	"errors"
	"fmt"

	"github.com/smilecare/dental-scheduler-api/dto"
	"github.com/smilecare/dental-scheduler-api/models"
	"gorm.io/gorm"
)

// DoctorService manages doctor records.
type DoctorService struct {
	db *gorm.DB
}

// NewDoctorService creates a doctor service backed by db.
func NewDoctorService(db *gorm.DB) *DoctorService {
	return &DoctorService{db: db}
}

// All returns every doctor.
func (s *DoctorService) All() ([]dto.DoctorDTO, error) {
	var doctors []models.Doctor
	if err := s.db.Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return dto.FromDoctors(doctors), nil
}

// FindByID returns a single doctor by id.
func (s *DoctorService) FindByID(id uint) (*dto.DoctorDTO, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Doctor does not exist!")
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	result := dto.FromDoctor(&doctor)
	return &result, nil
}

// Create adds a doctor. The CNP must not belong to an existing doctor.
func (s *DoctorService) Create(in dto.DoctorDTO) (*dto.DoctorDTO, error) {
	var existing models.Doctor
	err := s.db.Where("cnp = ?", in.CNP).First(&existing).Error
	if err == nil {
		return nil, NewConflictError("This doctor already exists!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check doctor cnp: %w", err)
	}

	doctor := models.Doctor{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		CNP:         in.CNP,
	}
	if err := s.db.Create(&doctor).Error; err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	result := dto.FromDoctor(&doctor)
	return &result, nil
}

// EditDetails updates a doctor's personal details. A caller linked to a
// doctor record may only edit their own record.
func (s *DoctorService) EditDetails(caller *models.User, id uint, in dto.DoctorDTO) (*dto.DoctorDTO, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Doctor does not exist!")
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}

	if caller == nil {
		return nil, NewUnauthorizedError("Doctor not logged in!")
	}

	var own models.Doctor
	err := s.db.Where("user_id = ?", caller.ID).First(&own).Error
	switch {
	case err == nil:
		if own.ID != doctor.ID {
			return nil, NewForbiddenError("Doctor details not visible.")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// caller has no doctor record, the ownership rule does not apply
	default:
		return nil, fmt.Errorf("failed to resolve caller's doctor: %w", err)
	}

	doctor.FirstName = in.FirstName
	doctor.LastName = in.LastName
	doctor.PhoneNumber = in.PhoneNumber
	doctor.CNP = in.CNP

	if err := s.db.Save(&doctor).Error; err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	result := dto.FromDoctor(&doctor)
	return &result, nil
}

// Delete removes a doctor and all of their appointments.
func (s *DoctorService) Delete(id uint) error {
	var doctor models.Doctor
	if err := s.db.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Doctor does not exist!")
		}
		return fmt.Errorf("failed to load doctor: %w", err)
	}

	// the doctor owns its appointments, so they go with it
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doctor).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}
