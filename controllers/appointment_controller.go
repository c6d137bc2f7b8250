package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/middleware"
	"github.com/smilecare/dental-scheduler-api/services"
)

// CreateAppointmentRequest represents the request body for booking an
// appointment with a doctor
type CreateAppointmentRequest struct {
	DoctorID           uint   `json:"doctor_id" binding:"required"`
	AppointmentDate    string `json:"appointment_date" binding:"required"`
	AppointmentDetails string `json:"appointment_details" binding:"required"`
}

// CreateAppointmentAsDoctorRequest represents the request body for a
// doctor reserving one of their own slots
type CreateAppointmentAsDoctorRequest struct {
	AppointmentDate    string `json:"appointment_date" binding:"required"`
	AppointmentDetails string `json:"appointment_details" binding:"required"`
}

// EditAppointmentRequest represents the request body for editing an
// appointment's details
type EditAppointmentRequest struct {
	AppointmentDetails string `json:"appointment_details" binding:"required"`
}

// GetAllAppointments handles GET /api/v1/appointments (admins only)
func GetAllAppointments(c *gin.Context) {
	svc := services.NewAppointmentService(config.GetDB())

	appointments, err := svc.All()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, appointments)
}

// GetAppointment handles GET /api/v1/appointments/:id
func GetAppointment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewAppointmentService(config.GetDB())
	appointment, err := svc.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, appointment)
}

// CreateAppointment handles POST /api/v1/appointments - books an
// appointment with a doctor for the caller's patient record
func CreateAppointment(c *gin.Context) {
	caller, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, services.NewUnauthorizedError("Could not resolve the authenticated user"))
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewAppointmentService(config.GetDB())
	appointment, err := svc.Create(caller, req.DoctorID, req.AppointmentDate, req.AppointmentDetails)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, appointment)
}

// CreateAppointmentAsDoctor handles POST /api/v1/appointments/as-doctor -
// reserves a slot for the caller's doctor record with no patient set
func CreateAppointmentAsDoctor(c *gin.Context) {
	caller, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, services.NewUnauthorizedError("Could not resolve the authenticated user"))
		return
	}

	var req CreateAppointmentAsDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewAppointmentService(config.GetDB())
	appointment, err := svc.CreateAsDoctor(caller, req.AppointmentDate, req.AppointmentDetails)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, appointment)
}

// EditAppointment handles PUT /api/v1/appointments/:id - updates the
// free-text details only
func EditAppointment(c *gin.Context) {
	caller, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, services.NewUnauthorizedError("Could not resolve the authenticated user"))
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	svc := services.NewAppointmentService(config.GetDB())
	appointment, err := svc.Edit(caller, id, req.AppointmentDetails)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, appointment)
}

// DeleteAppointment handles DELETE /api/v1/appointments/:id
func DeleteAppointment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewAppointmentService(config.GetDB())
	if err := svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": id})
}

// GetAppointmentsForPatient handles GET /api/v1/appointments/patient/:id
func GetAppointmentsForPatient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewAppointmentService(config.GetDB())
	appointments, err := svc.AllForPatient(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, appointments)
}

// GetAppointmentsForDoctor handles GET /api/v1/appointments/doctor/:id -
// returns the doctor's appointments ordered by date ascending
func GetAppointmentsForDoctor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewAppointmentService(config.GetDB())
	appointments, err := svc.AllForDoctor(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, appointments)
}
