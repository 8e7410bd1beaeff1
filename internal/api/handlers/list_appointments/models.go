package list_appointments

import (
	"time"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
	"github.com/m04kA/EMR-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Если опорная дата не передана, вкладки считаются относительно now.
func ToServiceRequest(
	dateStr string,
	statusStr string,
	doctorNameStr string,
	tabStr string,
	referenceDateStr string,
	now time.Time,
) (*models.QueryAppointmentsRequest, error) {
	req := &models.QueryAppointmentsRequest{
		Tab: tabStr,
	}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим doctorName если указан
	if doctorNameStr != "" {
		req.DoctorName = &doctorNameStr
	}

	// Парсим referenceDate если указана, иначе берём текущий день
	refDate := now
	if referenceDateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, referenceDateStr)
		if err != nil {
			return nil, err
		}
		refDate = parsed
	}
	req.ReferenceDate = &refDate

	return req, nil
}
