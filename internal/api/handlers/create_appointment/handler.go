package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/EMR-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/EMR-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPatientName = "имя пациента не может быть пустым"
	msgInvalidDate        = "некорректный формат даты приёма, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени приёма, ожидается HH:MM"
	msgInvalidDuration    = "длительность приёма должна быть положительным числом минут"
	msgInvalidDoctorName  = "имя врача не может быть пустым"
	msgInvalidMode        = "некорректный формат приёма, ожидается in-person, video или phone"
	msgInvalidStatus      = "некорректный начальный статус, ожидается scheduled или upcoming"
	msgInvalidInput       = "некорректные входные данные"
	msgTimeConflict       = "выбранное время пересекается с другой записью врача"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case (валидация полей выполняется внутри)
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var vErr *createAppointment.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("POST /appointments - Validation failed: field=%s, reason=%s", vErr.Field, vErr.Reason)
			handlers.RespondBadRequest(w, validationMessage(vErr))

		case errors.Is(err, createAppointment.ErrTimeConflict):
			h.logger.Warn("POST /appointments - Time conflict: doctor=%s, date=%s, time=%s",
				req.DoctorName, req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgTimeConflict)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: doctor=%s, error=%v",
				req.DoctorName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, doctor=%s, date=%s",
		result.ID, result.DoctorName, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// validationMessage подбирает сообщение под поле, не прошедшее валидацию
func validationMessage(vErr *createAppointment.ValidationError) string {
	switch vErr.Field {
	case "patientName":
		return msgInvalidPatientName
	case "date":
		return msgInvalidDate
	case "time":
		return msgInvalidTime
	case "duration":
		return msgInvalidDuration
	case "doctorName":
		return msgInvalidDoctorName
	case "mode":
		return msgInvalidMode
	case "status":
		return msgInvalidStatus
	default:
		return msgInvalidInput
	}
}
