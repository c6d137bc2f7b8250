package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/smilecare/dental-scheduler-api/auth"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/dto"
	"github.com/smilecare/dental-scheduler-api/models"
	"gorm.io/gorm"
)

// AuthService handles login, registration and the admin bootstrap.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthService creates an auth service backed by db.
func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login verifies the credentials and issues an access token.
func (s *AuthService) Login(username, password string) (*dto.TokenDetails, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("Bad username or password!")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, NewValidationError("Bad username or password!")
	}
	if !user.Active {
		return nil, NewForbiddenError("User is disabled!")
	}

	return s.issueToken(&user)
}

// RegisterDoctor creates an EMPLOYEE user with a linked doctor record
// and logs the new account in.
func (s *AuthService) RegisterDoctor(username, password string, in dto.DoctorDTO) (*dto.TokenDetails, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.createUser(tx, username, password, models.RoleEmployee)
		if err != nil {
			return err
		}

		doctor := models.Doctor{
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			PhoneNumber: in.PhoneNumber,
			CNP:         in.CNP,
			UserID:      &created.ID,
		}
		if err := tx.Create(&doctor).Error; err != nil {
			return fmt.Errorf("failed to create doctor: %w", err)
		}

		user = *created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(&user)
}

// RegisterPatient creates a CLIENT user with a linked patient record
// and logs the new account in.
func (s *AuthService) RegisterPatient(username, password string, in dto.PatientDTO) (*dto.TokenDetails, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.createUser(tx, username, password, models.RoleClient)
		if err != nil {
			return err
		}

		patient := models.Patient{
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			PhoneNumber: in.PhoneNumber,
			CNP:         in.CNP,
			UserID:      &created.ID,
		}
		if err := tx.Create(&patient).Error; err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}

		user = *created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(&user)
}

// EnsureAdminUser seeds the bootstrap admin account if it is missing.
func (s *AuthService) EnsureAdminUser() error {
	var existing models.User
	err := s.db.Where("username = ?", s.cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	hash, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Username: s.cfg.AdminUsername,
		Password: hash,
		Role:     models.RoleAdmin,
		Active:   true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("Seeded admin user %q", s.cfg.AdminUsername)
	return nil
}

// createUser inserts a new active user with a hashed password. The
// username must be unused.
func (s *AuthService) createUser(tx *gorm.DB, username, password, role string) (*models.User, error) {
	var existing models.User
	err := tx.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, NewConflictError("User already exists!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Password: hash,
		Role:     role,
		Active:   true,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// issueToken signs an access token for the user and wraps it in the
// response DTO.
func (s *AuthService) issueToken(user *models.User) (*dto.TokenDetails, error) {
	ttl := time.Duration(s.cfg.JWTTTLHours) * time.Hour
	token, claims, err := auth.GenerateToken(user.Username, user.Role, s.cfg.JWTSecret, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.TokenDetails{
		Token:          token,
		Username:       user.Username,
		IssuedAt:       claims.IssuedAt.Time,
		ExpirationDate: claims.ExpiresAt.Time,
	}, nil
}
