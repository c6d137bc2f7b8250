package testutil

import (
	"testing"
	"time"

	"github.com/smilecare/dental-scheduler-api/auth"
	"github.com/smilecare/dental-scheduler-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens an in-memory sqlite database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Doctor{}, &models.Patient{}, &models.Appointment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// SeedUser inserts an active user with the given role.
func SeedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := models.User{Username: username, Password: "unused", Role: role, Active: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %q: %v", username, err)
	}
	return &user
}

// TokenFor mints a valid access token for the given user.
func TokenFor(t *testing.T, username, role, secret string) string {
	t.Helper()

	token, _, err := auth.GenerateToken(username, role, secret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to mint token for %q: %v", username, err)
	}
	return token
}
