package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/dto"
	"github.com/smilecare/dental-scheduler-api/middleware"
	"github.com/smilecare/dental-scheduler-api/services"
)

// PatientRequest represents the request body for creating or editing a
// patient
type PatientRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	CNP         string `json:"cnp" binding:"required"`
}

func (r *PatientRequest) toDTO() dto.PatientDTO {
	return dto.PatientDTO{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		CNP:         r.CNP,
	}
}

// GetAllPatients handles GET /api/v1/patients (admins only)
func GetAllPatients(c *gin.Context) {
	svc := services.NewPatientService(config.GetDB())

	patients, err := svc.All()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, patients)
}

// GetPatient handles GET /api/v1/patients/:id
func GetPatient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewPatientService(config.GetDB())
	patient, err := svc.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, patient)
}

// CreatePatient handles POST /api/v1/patients
func CreatePatient(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewPatientService(config.GetDB())
	patient, err := svc.Create(req.toDTO())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, patient)
}

// EditPatient handles PUT /api/v1/patients/:id - patients may only
// edit their own record
func EditPatient(c *gin.Context) {
	caller, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, services.NewUnauthorizedError("Could not resolve the authenticated user"))
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewPatientService(config.GetDB())
	patient, err := svc.EditDetails(caller, id, req.toDTO())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, patient)
}

// DeletePatient handles DELETE /api/v1/patients/:id (admins only) -
// removes the patient together with their appointments
func DeletePatient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewPatientService(config.GetDB())
	if err := svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": id})
}
