package models

import (
	"errors"
	"time"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// QueryAppointmentsRequest запрос на выборку записей с фильтрацией
type QueryAppointmentsRequest struct {
	Date          *time.Time `json:"date,omitempty"`          // Фильтр по дате приёма (опционально)
	Status        *string    `json:"status,omitempty"`        // Фильтр по статусу (опционально)
	DoctorName    *string    `json:"doctorName,omitempty"`    // Подстрока имени врача без учёта регистра (опционально)
	Tab           string     `json:"tab,omitempty"`           // Вкладка: today | upcoming | past | all (пустая строка трактуется как all)
	ReferenceDate *time.Time `json:"referenceDate,omitempty"` // Опорная дата для вкладок today/upcoming/past
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *QueryAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		Date:               r.Date,
		DoctorNameContains: r.DoctorName,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи на приём
type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`     // "2024-12-29"
	Time        string `json:"time"`     // "09:00"
	Duration    int    `json:"duration"` // Длительность приёма в минутах
	DoctorName  string `json:"doctorName"`
	Status      string `json:"status"`
	Mode        string `json:"mode"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:          a.ID,
		PatientName: a.PatientName,
		Date:        a.Date.Format(domain.DateFormat),
		Time:        a.StartTime.String(),
		Duration:    a.DurationMinutes,
		DoctorName:  a.DoctorName,
		Status:      string(a.Status),
		Mode:        string(a.Mode),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, apt := range appointments {
		if aptResp := FromDomainAppointment(apt); aptResp != nil {
			resp.Appointments[i] = *aptResp
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
