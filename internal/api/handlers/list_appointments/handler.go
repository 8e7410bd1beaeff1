package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/EMR-AppointmentService/internal/api/handlers"
	"github.com/m04kA/EMR-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: date, status, doctorName, tab, referenceDate (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем опциональные query параметры
	dateStr := r.URL.Query().Get("date")
	statusStr := r.URL.Query().Get("status")
	doctorNameStr := r.URL.Query().Get("doctorName")
	tabStr := r.URL.Query().Get("tab")
	referenceDateStr := r.URL.Query().Get("referenceDate")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(dateStr, statusStr, doctorNameStr, tabStr, referenceDateStr, time.Now())
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем записи с фильтрацией
	result, err := h.service.Query(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /appointments - Failed to get appointments: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: count=%d", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
