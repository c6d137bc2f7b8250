package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/smilecare/dental-scheduler-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFullCalendarEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)

	admin := models.User{Username: "caladmin", Password: "x", Role: models.RoleAdmin, Active: true}
	require.NoError(t, db.Create(&admin).Error)
	doctor := seedDoctorRecord(t, db, "9000000000001", nil)

	morning := time.Date(2031, 3, 5, 9, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, 0, 4 * time.Hour} {
		appointment := models.Appointment{
			AppointmentDetails: fmt.Sprintf("Visit %d", i),
			AppointmentDate:    morning.Add(offset),
			DoctorID:           &doctor.ID,
		}
		require.NoError(t, db.Create(&appointment).Error)
	}

	router := setupTestRouter()
	router.GET("/calendar/full", mockAuthMiddleware(&admin), GetFullCalendar)

	status, response := doJSON(t, router, http.MethodGet, "/calendar/full", nil)
	require.Equal(t, http.StatusOK, status)

	data := response["data"].(map[string]interface{})
	calendar := data["calendar"].(map[string]interface{})
	require.Contains(t, calendar, "2031-03-05")

	day := calendar["2031-03-05"].(map[string]interface{})
	require.Len(t, day, 2, "two distinct time slots")
	assert.Len(t, day["09:00"], 2, "two appointments share the 09:00 slot")
	assert.Len(t, day["13:00"], 1)
}

func TestGetCalendarForDoctorEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)

	admin := models.User{Username: "caladmin2", Password: "x", Role: models.RoleAdmin, Active: true}
	require.NoError(t, db.Create(&admin).Error)
	doctor := seedDoctorRecord(t, db, "9000000000002", nil)

	date := time.Date(2031, 4, 1, 10, 30, 0, 0, time.UTC)
	appointment := models.Appointment{AppointmentDetails: "Checkup", AppointmentDate: date, DoctorID: &doctor.ID}
	require.NoError(t, db.Create(&appointment).Error)

	router := setupTestRouter()
	router.GET("/calendar/doctor/:id", mockAuthMiddleware(&admin), GetCalendarForDoctor)

	status, response := doJSON(t, router, http.MethodGet, fmt.Sprintf("/calendar/doctor/%d", doctor.ID), nil)
	require.Equal(t, http.StatusOK, status)

	data := response["data"].(map[string]interface{})
	calendar := data["calendar"].(map[string]interface{})
	day := calendar["2031-04-01"].(map[string]interface{})
	assert.Len(t, day["10:30"], 1)

	// unknown doctor
	status, response = doJSON(t, router, http.MethodGet, "/calendar/doctor/9999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(response))
}
