package create_appointment

import (
	"context"
	"fmt"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	scheduleLock    ScheduleLocker
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	scheduleLock ScheduleLocker,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		scheduleLock:    scheduleLock,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи на приём.
// Расписание врача блокируется на время проверки конфликтов и вставки,
// а работа с БД идёт в сериализуемой транзакции для предотвращения гонки данных.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%s, doctor=%s, date=%s, time=%s, duration=%d",
		req.PatientName, req.DoctorName, req.Date, req.Time, req.DurationMinutes)

	// 1. Валидация входных данных в фиксированном порядке полей
	input, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	candidate := &domain.Appointment{
		PatientName:     req.PatientName,
		DoctorName:      req.DoctorName,
		Date:            input.date,
		StartTime:       input.startTime,
		DurationMinutes: req.DurationMinutes,
		Mode:            input.mode,
		Status:          input.status,
	}

	// 2. Сериализуем мутации расписания этого врача
	uc.scheduleLock.Lock(candidate.DoctorName)
	defer uc.scheduleLock.Unlock(candidate.DoctorName)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 3. Проверка конфликтов и вставка атомарны
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем активные записи врача с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.ListByDoctor(txCtx, candidate.DoctorName, domain.ActiveStatuses)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments for doctor=%s: %v",
				candidate.DoctorName, err)
			return fmt.Errorf("%w: failed to list doctor appointments: %v", ErrInternal, err)
		}

		// 3.2. Первое пересечение интервалов прерывает сценарий
		conflict, err := findConflict(candidate, existing)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to compute appointment interval: %v", err)
			return fmt.Errorf("%w: failed to compute appointment interval: %v", ErrInternal, err)
		}
		if conflict != nil {
			uc.logger.Warn("CreateAppointment: conflict for doctor=%s with appointment id=%s at %s %s",
				candidate.DoctorName, conflict.ID, conflict.Date.Format(domain.DateFormat), conflict.StartTime)
			return &ConflictError{
				DoctorName:      conflict.DoctorName,
				ConflictingDate: conflict.Date.Format(domain.DateFormat),
				ConflictingTime: conflict.StartTime.String(),
			}
		}

		// 3.3. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, candidate)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		PatientName:     result.PatientName,
		DoctorName:      result.DoctorName,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Mode:            string(result.Mode),
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
