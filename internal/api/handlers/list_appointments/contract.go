package list_appointments

import (
	"context"

	"github.com/m04kA/EMR-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	Query(ctx context.Context, req *models.QueryAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
