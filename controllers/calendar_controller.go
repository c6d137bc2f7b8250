package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/services"
)

// GetFullCalendar handles GET /api/v1/calendar/full - all appointments
// grouped by date and time slot (admins only)
func GetFullCalendar(c *gin.Context) {
	svc := services.NewCalendarService(config.GetDB())

	calendar, err := svc.FullCalendar()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, calendar)
}

// GetCalendarForDoctor handles GET /api/v1/calendar/doctor/:id - one
// doctor's appointments grouped by date and time slot
func GetCalendarForDoctor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewCalendarService(config.GetDB())
	calendar, err := svc.ForDoctor(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, calendar)
}
