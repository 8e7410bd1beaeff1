package create_appointment

import (
	"time"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/EMR-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientName string `json:"patientName"`
	Date        string `json:"date"`     // "2024-12-29"
	Time        string `json:"time"`     // "09:00"
	Duration    int    `json:"duration"` // Длительность приёма в минутах
	DoctorName  string `json:"doctorName"`
	Mode        string `json:"mode"`             // in-person | video | phone
	Status      string `json:"status,omitempty"` // Опционально: scheduled | upcoming
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
	DoctorName  string `json:"doctorName"`
	Status      string `json:"status"`
	Mode        string `json:"mode"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Поля передаются сырыми строками: валидацию и разбор выполняет use case.
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		PatientName:     r.PatientName,
		Date:            r.Date,
		Time:            r.Time,
		DurationMinutes: r.Duration,
		DoctorName:      r.DoctorName,
		Mode:            r.Mode,
		Status:          r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		PatientName: resp.PatientName,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.StartTime.String(),
		Duration:    resp.DurationMinutes,
		DoctorName:  resp.DoctorName,
		Status:      resp.Status,
		Mode:        resp.Mode,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
