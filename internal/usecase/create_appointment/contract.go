package create_appointment

import (
	"context"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс для работы с хранилищем записей на приём
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorName string, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
