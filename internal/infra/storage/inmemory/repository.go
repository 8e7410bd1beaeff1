package inmemory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
)

// ErrDuplicateID возвращается при вставке с уже занятым идентификатором
var ErrDuplicateID = errors.New("inmemory.repository: duplicate appointment id")

// Repository хранилище записей на приём в памяти процесса.
// Методы повторяют контракт PostgreSQL-репозитория: те же сигнатуры,
// те же доменные sentinel-ошибки. Наружу отдаются только копии записей,
// поэтому читатели видят консистентный снимок.
type Repository struct {
	mu           sync.RWMutex
	appointments map[string]*domain.Appointment
}

// NewRepository создает пустое in-memory хранилище
func NewRepository() *Repository {
	return &Repository{
		appointments: make(map[string]*domain.Appointment),
	}
}

// Create сохраняет новую запись. Если идентификатор не задан,
// генерирует свежий; при коллизии сгенерированного id пробует ещё раз.
func (r *Repository) Create(_ context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if apt.ID == "" {
		id := domain.NewAppointmentID()
		for r.appointments[id] != nil {
			id = domain.NewAppointmentID()
		}
		apt.ID = id
	} else if r.appointments[apt.ID] != nil {
		return nil, ErrDuplicateID
	}

	now := time.Now().UTC()
	apt.CreatedAt = now
	apt.UpdatedAt = now

	stored := *apt
	r.appointments[apt.ID] = &stored

	result := *apt
	return &result, nil
}

// GetByID получает запись по идентификатору
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apt, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	result := *apt
	return &result, nil
}

// ListByDoctor получает записи врача, опционально ограниченные набором статусов
func (r *Repository) ListByDoctor(_ context.Context, doctorName string, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, apt := range r.appointments {
		if apt.DoctorName != doctorName {
			continue
		}
		if len(statuses) > 0 && !statusIn(apt.Status, statuses) {
			continue
		}
		cloned := *apt
		result = append(result, &cloned)
	}

	return result, nil
}

// ListWithFilter получает записи по набору необязательных условий
func (r *Repository) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, apt := range r.appointments {
		if filter.Date != nil && !apt.Date.Equal(*filter.Date) {
			continue
		}
		if filter.Status != nil && apt.Status != *filter.Status {
			continue
		}
		if filter.DoctorNameContains != nil {
			needle := strings.ToLower(*filter.DoctorNameContains)
			if !strings.Contains(strings.ToLower(apt.DoctorName), needle) {
				continue
			}
		}
		cloned := *apt
		result = append(result, &cloned)
	}

	return result, nil
}

// UpdateStatus обновляет статус записи по схеме compare-and-set
func (r *Repository) UpdateStatus(_ context.Context, id string, from, to domain.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.appointments[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	if apt.Status != from {
		return domain.ErrStatusConflict
	}

	apt.Status = to
	apt.UpdatedAt = time.Now().UTC()

	return nil
}

// Delete удаляет запись безусловно, вне зависимости от статуса
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return domain.ErrAppointmentNotFound
	}

	delete(r.appointments, id)
	return nil
}

func statusIn(status domain.AppointmentStatus, set []domain.AppointmentStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
