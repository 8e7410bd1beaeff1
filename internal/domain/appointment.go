package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/EMR-AppointmentService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusUpcoming  AppointmentStatus = "upcoming"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentMode represents how the appointment is conducted
type AppointmentMode string

const (
	ModeInPerson AppointmentMode = "in-person"
	ModeVideo    AppointmentMode = "video"
	ModePhone    AppointmentMode = "phone"
)

// statusTransitions defines the allowed status graph.
// "scheduled" and "upcoming" are two labels of the same pending state class.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusUpcoming:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusUpcoming, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive returns true if the status occupies the doctor's schedule
// for conflict purposes
func (s AppointmentStatus) IsActive() bool {
	return s == StatusScheduled || s == StatusUpcoming || s == StatusConfirmed
}

// IsTerminal returns true if no further transitions are permitted
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsInitial returns true if the status may be assigned at creation
func (s AppointmentStatus) IsInitial() bool {
	return s == StatusScheduled || s == StatusUpcoming
}

// CanTransitionTo returns true if the transition s -> target is allowed
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid returns true if the mode is one of the known values
func (m AppointmentMode) IsValid() bool {
	switch m {
	case ModeInPerson, ModeVideo, ModePhone:
		return true
	}
	return false
}

// Appointment represents a scheduled consultation between a patient and a doctor.
// The doctor is identified by the display name string; appointments with equal
// DoctorName values share one schedule.
type Appointment struct {
	ID              string
	PatientName     string
	DoctorName      string
	Date            time.Time // calendar date, midnight UTC
	StartTime       types.TimeString
	DurationMinutes int
	Mode            AppointmentMode
	Status          AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the half-open occupation interval [start, start+duration).
// Appointments that run past midnight spill into the following date.
func (a *Appointment) Interval() (start, end time.Time, err error) {
	mins, err := a.StartTime.Minutes()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = a.Date.Add(time.Duration(mins) * time.Minute)
	end = start.Add(time.Duration(a.DurationMinutes) * time.Minute)
	return start, end, nil
}

// IsActive returns true if the appointment occupies the doctor's schedule
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// IntervalsOverlap reports whether two half-open intervals [start1, end1) and
// [start2, end2) intersect. Touching boundaries do not overlap.
func IntervalsOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// NewAppointmentID returns a fresh appointment identifier, e.g. "apt-3f2a9c1d"
func NewAppointmentID() string {
	return IDPrefix + uuid.New().String()[:8]
}
