package create_appointment

import (
	"strings"
	"time"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
	"github.com/m04kA/EMR-AppointmentService/pkg/types"
)

// validateRequest валидирует поля запроса в фиксированном порядке:
// patientName, date, time, duration, doctorName, mode, status.
// Возвращается ошибка первого непрошедшего поля, остальные не проверяются.
func validateRequest(req *Request) (*validatedInput, error) {
	if strings.TrimSpace(req.PatientName) == "" {
		return nil, &ValidationError{Field: "patientName", Reason: "must not be empty"}
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be a date in YYYY-MM-DD format"}
	}

	startTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return nil, &ValidationError{Field: "time", Reason: "must be a time in HH:MM format"}
	}

	if req.DurationMinutes <= 0 {
		return nil, &ValidationError{Field: "duration", Reason: "must be a positive number of minutes"}
	}

	if strings.TrimSpace(req.DoctorName) == "" {
		return nil, &ValidationError{Field: "doctorName", Reason: "must not be empty"}
	}

	mode := domain.AppointmentMode(req.Mode)
	if !mode.IsValid() {
		return nil, &ValidationError{Field: "mode", Reason: "must be one of: in-person, video, phone"}
	}

	// Статус опционален: по умолчанию новая запись создаётся в scheduled
	status := domain.StatusScheduled
	if req.Status != "" {
		status = domain.AppointmentStatus(req.Status)
		if !status.IsInitial() {
			return nil, &ValidationError{Field: "status", Reason: "must be an initial status: scheduled or upcoming"}
		}
	}

	return &validatedInput{
		date:      date,
		startTime: startTime,
		mode:      mode,
		status:    status,
	}, nil
}

// findConflict ищет первую запись врача, интервал которой пересекается
// с интервалом кандидата. Сравнение полуоткрытое: записи, идущие встык,
// конфликтом не считаются.
func findConflict(candidate *domain.Appointment, existing []*domain.Appointment) (*domain.Appointment, error) {
	candStart, candEnd, err := candidate.Interval()
	if err != nil {
		return nil, err
	}

	for _, apt := range existing {
		start, end, err := apt.Interval()
		if err != nil {
			// Если не можем вычислить интервал записи, пропускаем её
			continue
		}

		if domain.IntervalsOverlap(start, end, candStart, candEnd) {
			return apt, nil
		}
	}

	return nil, nil
}
