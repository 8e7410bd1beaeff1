package appointments

import (
	"context"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus) error
	Delete(ctx context.Context, id string) error
}

// ScheduleLocker взаимное исключение мутаций расписания одного врача
type ScheduleLocker interface {
	Lock(doctorName string)
	Unlock(doctorName string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
