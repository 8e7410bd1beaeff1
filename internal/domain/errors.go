package domain

import "errors"

// Storage-level sentinel errors shared by every AppointmentRepository
// implementation, so callers match one error set regardless of backend.
var (
	// ErrAppointmentNotFound is returned when no appointment has the given id
	ErrAppointmentNotFound = errors.New("domain: appointment not found")

	// ErrStatusConflict is returned by compare-and-set status updates when
	// the stored status no longer matches the expected one
	ErrStatusConflict = errors.New("domain: appointment status changed concurrently")
)
