package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
	"github.com/m04kA/EMR-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями на приём
type Service struct {
	appointmentRepo AppointmentRepository
	scheduleLock    ScheduleLocker
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	scheduleLock ScheduleLocker,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		scheduleLock:    scheduleLock,
		logger:          logger,
	}
}

// GetByID получает запись на приём по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(apt), nil
}

// Query получает записи на приём с гибкой фильтрацией
// Поддерживает фильтры по дате, статусу и подстроке имени врача,
// а также вкладки today/upcoming/past/all относительно опорной даты
//
// Примеры использования:
// - Все записи: Query(ctx, &QueryAppointmentsRequest{})
// - Записи на дату: указать Date
// - Записи врача: указать DoctorName (подстрока, без учёта регистра)
// - Сегодняшние записи: Tab = "today" и ReferenceDate
func (s *Service) Query(ctx context.Context, req *models.QueryAppointmentsRequest) (*models.AppointmentListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := "Query: fetching appointments"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.DoctorName != nil {
		logMsg += fmt.Sprintf(", doctor=%s", *req.DoctorName)
	}
	if req.Tab != "" {
		logMsg += fmt.Sprintf(", tab=%s", req.Tab)
	}
	s.logger.Info(logMsg)

	// Разбираем вкладку
	tab, ok := domain.ParseTab(req.Tab)
	if !ok {
		s.logger.Warn("Query: unknown tab=%s", req.Tab)
		return nil, fmt.Errorf("%w: unknown tab %q", ErrInvalidInput, req.Tab)
	}

	// Вкладкам, зависящим от текущего дня, нужна опорная дата
	if tab != domain.TabAll && req.ReferenceDate == nil {
		s.logger.Warn("Query: reference date is required for tab=%s", tab)
		return nil, fmt.Errorf("%w: reference date is required for tab %q", ErrInvalidInput, tab)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("Query: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Получаем записи с фильтрацией
	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("Query: repository error: %v", err)
		return nil, fmt.Errorf("%w: Query - repository error: %v", ErrInternal, err)
	}

	// Уточняем выборку вкладкой и сортируем по дате и времени
	appointments = applyTab(appointments, tab, req.ReferenceDate)
	sortAppointments(appointments)

	s.logger.Info("Query: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus переводит запись в новый статус
// Переход проверяется по таблице допустимых переходов между статусами
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s", id, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	// Получаем запись, чтобы узнать врача для блокировки расписания
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Мутации расписания этого врача сериализованы
	s.scheduleLock.Lock(apt.DoctorName)
	defer s.scheduleLock.Unlock(apt.DoctorName)

	// Перечитываем под блокировкой: статус мог измениться, пока мы её ждали
	apt, err = s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем переход по таблице допустимых переходов
	if !apt.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%s",
			apt.Status, newStatus, id)
		return nil, &TransitionError{From: apt.Status, To: newStatus}
	}

	// Обновляем статус строго от прочитанного значения (compare-and-set)
	if err := s.appointmentRepo.UpdateStatus(ctx, id, apt.Status, newStatus); err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			s.logger.Warn("UpdateStatus: appointment id=%s not found during update", id)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, domain.ErrStatusConflict):
			// Статус изменили в обход нашего процесса: переигрываем отказ от свежего значения
			fresh, getErr := s.appointmentRepo.GetByID(ctx, id)
			if getErr != nil {
				if errors.Is(getErr, domain.ErrAppointmentNotFound) {
					return nil, ErrAppointmentNotFound
				}
				s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, getErr)
				return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, getErr)
			}
			s.logger.Warn("UpdateStatus: concurrent status change for appointment id=%s, current status=%s",
				id, fresh.Status)
			return nil, &TransitionError{From: fresh.Status, To: newStatus}
		default:
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	// Перечитываем обновлённую запись для ответа
	updated, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - failed to reload appointment: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", id, newStatus)
	return models.FromDomainAppointment(updated), nil
}

// Delete удаляет запись на приём
// Удаление безусловное: статус записи не проверяется
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting appointment id=%s", id)

	// Получаем запись, чтобы узнать врача для блокировки расписания
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// Мутации расписания этого врача сериализованы
	s.scheduleLock.Lock(apt.DoctorName)
	defer s.scheduleLock.Unlock(apt.DoctorName)

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			// Запись удалили, пока мы ждали блокировку
			s.logger.Warn("Delete: appointment id=%s not found during deletion", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%s", id)
	return nil
}

// Вспомогательные функции

// applyTab уточняет выборку вкладкой поверх базового фильтра
func applyTab(appointments []*domain.Appointment, tab domain.Tab, referenceDate *time.Time) []*domain.Appointment {
	if tab == domain.TabAll {
		return appointments
	}

	ref := dateOnly(*referenceDate)

	result := make([]*domain.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if matchesTab(apt, tab, ref) {
			result = append(result, apt)
		}
	}

	return result
}

// matchesTab проверяет попадание записи во вкладку относительно опорной даты
func matchesTab(apt *domain.Appointment, tab domain.Tab, ref time.Time) bool {
	date := dateOnly(apt.Date)

	switch tab {
	case domain.TabToday:
		return date.Equal(ref)
	case domain.TabUpcoming:
		// Сегодняшние и будущие записи в активных статусах
		return !date.Before(ref) && apt.Status.IsActive()
	case domain.TabPast:
		// Прошедшие по дате записи, а также все завершённые
		return date.Before(ref) || apt.Status == domain.StatusCompleted
	default:
		return true
	}
}

// sortAppointments сортирует записи по дате, затем по времени начала.
// При полном совпадении даты и времени порядок фиксируется идентификатором.
func sortAppointments(appointments []*domain.Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		a, b := appointments[i], appointments[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.ID < b.ID
	})
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
