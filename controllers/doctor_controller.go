package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/dto"
	"github.com/smilecare/dental-scheduler-api/middleware"
	"github.com/smilecare/dental-scheduler-api/services"
)

// DoctorRequest represents the request body for creating or editing a
// doctor
type DoctorRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	CNP         string `json:"cnp" binding:"required"`
}

func (r *DoctorRequest) toDTO() dto.DoctorDTO {
	return dto.DoctorDTO{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		CNP:         r.CNP,
	}
}

// GetAllDoctors handles GET /api/v1/doctors
func GetAllDoctors(c *gin.Context) {
	svc := services.NewDoctorService(config.GetDB())

	doctors, err := svc.All()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, doctors)
}

// GetDoctor handles GET /api/v1/doctors/:id
func GetDoctor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewDoctorService(config.GetDB())
	doctor, err := svc.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, doctor)
}

// CreateDoctor handles POST /api/v1/doctors (admins only)
func CreateDoctor(c *gin.Context) {
	var req DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewDoctorService(config.GetDB())
	doctor, err := svc.Create(req.toDTO())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, doctor)
}

// EditDoctor handles PUT /api/v1/doctors/:id - doctors may only edit
// their own record
func EditDoctor(c *gin.Context) {
	caller, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, services.NewUnauthorizedError("Could not resolve the authenticated user"))
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewDoctorService(config.GetDB())
	doctor, err := svc.EditDetails(caller, id, req.toDTO())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, doctor)
}

// DeleteDoctor handles DELETE /api/v1/doctors/:id (admins only) -
// removes the doctor together with their appointments
func DeleteDoctor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewDoctorService(config.GetDB())
	if err := svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": id})
}
