package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IDPrefix prepended to generated appointment identifiers
const IDPrefix = "apt-"

// ActiveStatuses список статусов, занимающих расписание врача.
// Используется при выборке записей для проверки конфликтов.
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusUpcoming,
	StatusConfirmed,
}

// TerminalStatuses список статусов без дальнейших переходов
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}
