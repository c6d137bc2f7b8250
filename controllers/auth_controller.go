package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/services"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterDoctorRequest represents the request body for registering a
// doctor account
type RegisterDoctorRequest struct {
	Username string        `json:"username" binding:"required"`
	Password string        `json:"password" binding:"required,min=4"`
	Doctor   DoctorRequest `json:"doctor" binding:"required"`
}

// RegisterPatientRequest represents the request body for registering a
// patient account
type RegisterPatientRequest struct {
	Username string         `json:"username" binding:"required"`
	Password string         `json:"password" binding:"required,min=4"`
	Patient  PatientRequest `json:"patient" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewAuthService(config.GetDB(), config.GetConfig())
	details, err := svc.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, details)
}

// RegisterDoctor handles POST /api/v1/auth/register/doctor - creates an
// EMPLOYEE account with a linked doctor record and returns a token
func RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewAuthService(config.GetDB(), config.GetConfig())
	details, err := svc.RegisterDoctor(req.Username, req.Password, req.Doctor.toDTO())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, details)
}

// RegisterPatient handles POST /api/v1/auth/register/patient - creates
// a CLIENT account with a linked patient record and returns a token
func RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewAuthService(config.GetDB(), config.GetConfig())
	details, err := svc.RegisterPatient(req.Username, req.Password, req.Patient.toDTO())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, details)
}
