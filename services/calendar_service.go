package services

import (
	"errors"
	"fmt"

	"github.com/smilecare/dental-scheduler-api/dto"
	"github.com/smilecare/dental-scheduler-api/models"
	"gorm.io/gorm"
)

// Key formats for the nested calendar grouping. Both are fixed-width,
// so lexicographic key order is chronological order.
const (
	calendarDateFormat = "2006-01-02"
	calendarTimeFormat = "15:04"
)

// CalendarService builds the nested date -> time -> appointments view.
type CalendarService struct {
	db *gorm.DB
}

// NewCalendarService creates a calendar service backed by db.
func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{db: db}
}

// FullCalendar returns all appointments grouped into a calendar view.
func (s *CalendarService) FullCalendar() (*dto.CalendarView, error) {
	var appointments []models.Appointment
	if err := s.db.Preload("Doctor").Preload("Patient").
		Order("appointment_date asc").
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return buildCalendar(appointments), nil
}

// ForDoctor returns the given doctor's appointments grouped into a
// calendar view.
func (s *CalendarService) ForDoctor(doctorID uint) (*dto.CalendarView, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Doctor does not exist!")
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}

	var appointments []models.Appointment
	if err := s.db.Preload("Doctor").Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date asc").
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return buildCalendar(appointments), nil
}

// buildCalendar groups appointments by calendar date, then by HH:mm
// time label. Input order is preserved inside each bucket, so every
// appointment lands in exactly one bucket and the buckets partition
// the input.
func buildCalendar(appointments []models.Appointment) *dto.CalendarView {
	calendar := make(map[string]map[string][]dto.AppointmentDTO)

	for i := range appointments {
		date := appointments[i].AppointmentDate
		day := date.Format(calendarDateFormat)
		slot := date.Format(calendarTimeFormat)

		if calendar[day] == nil {
			calendar[day] = make(map[string][]dto.AppointmentDTO)
		}
		calendar[day][slot] = append(calendar[day][slot], dto.FromAppointment(&appointments[i]))
	}

	return &dto.CalendarView{Calendar: calendar}
}
