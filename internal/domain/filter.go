package domain

import "time"

// AppointmentsFilter is the storage-level filter: every set field is ANDed.
// Date matches exactly, Status matches exactly, DoctorNameContains is a
// case-insensitive substring test.
type AppointmentsFilter struct {
	Date               *time.Time
	Status             *AppointmentStatus
	DoctorNameContains *string
}

// Tab is a named query refinement applied on top of the base filter
type Tab string

const (
	TabToday    Tab = "today"
	TabUpcoming Tab = "upcoming"
	TabPast     Tab = "past"
	TabAll      Tab = "all"
)

// ParseTab converts a raw tab value; empty input means TabAll
func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabToday, TabUpcoming, TabPast, TabAll:
		return Tab(s), true
	case "":
		return TabAll, true
	}
	return "", false
}
