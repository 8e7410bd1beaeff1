package create_appointment

import (
	"time"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
	"github.com/m04kA/EMR-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи на приём.
// Поля намеренно приходят сырыми строками: use case сам разбирает
// и валидирует их в фиксированном порядке.
type Request struct {
	PatientName     string
	Date            string // формат YYYY-MM-DD
	Time            string // формат HH:MM
	DurationMinutes int
	DoctorName      string
	Mode            string
	Status          string // опционально; пустая строка трактуется как scheduled
}

// Response модель ответа с созданной записью
type Response struct {
	ID              string
	PatientName     string
	DoctorName      string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Mode            string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// validatedInput разобранные значения полей запроса после валидации
type validatedInput struct {
	date      time.Time
	startTime types.TimeString
	mode      domain.AppointmentMode
	status    domain.AppointmentStatus
}
