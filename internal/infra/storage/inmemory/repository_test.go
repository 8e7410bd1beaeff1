package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
	"github.com/m04kA/EMR-AppointmentService/pkg/ptr"
	"github.com/m04kA/EMR-AppointmentService/pkg/types"
)

func seedAppointment(t *testing.T, repo *Repository, patient, doctor, date, startTime string, duration int, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()

	d, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	ts, err := types.NewTimeStringFromString(startTime)
	require.NoError(t, err)

	created, err := repo.Create(context.Background(), &domain.Appointment{
		PatientName:     patient,
		DoctorName:      doctor,
		Date:            d,
		StartTime:       ts,
		DurationMinutes: duration,
		Mode:            domain.ModeInPerson,
		Status:          status,
	})
	require.NoError(t, err)
	return created
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := NewRepository()

	created := seedAppointment(t, repo, "John Smith", "Dr. Sarah Johnson", "2024-12-29", "09:00", 30, domain.StatusScheduled)

	assert.NotEmpty(t, created.ID)
	assert.Contains(t, created.ID, domain.IDPrefix)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created := seedAppointment(t, repo, "John Smith", "Dr. Sarah Johnson", "2024-12-29", "09:00", 30, domain.StatusScheduled)

	_, err := repo.Create(ctx, &domain.Appointment{
		ID:              created.ID,
		PatientName:     "Emma Davis",
		DoctorName:      "Dr. Michael Chen",
		Date:            created.Date,
		StartTime:       created.StartTime,
		DurationMinutes: 30,
		Mode:            domain.ModeVideo,
		Status:          domain.StatusScheduled,
	})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestGetByIDReturnsCopy(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created := seedAppointment(t, repo, "John Smith", "Dr. Sarah Johnson", "2024-12-29", "09:00", 30, domain.StatusScheduled)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Мутация полученной копии не должна менять хранилище.
	got.Status = domain.StatusCancelled

	fresh, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, fresh.Status)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetByID(context.Background(), "apt-missing1")
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestListByDoctorFiltersByStatusSet(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	seedAppointment(t, repo, "John Smith", "Dr. Sarah Johnson", "2024-12-29", "09:00", 30, domain.StatusScheduled)
	seedAppointment(t, repo, "Emma Davis", "Dr. Sarah Johnson", "2024-12-29", "10:00", 30, domain.StatusCancelled)
	seedAppointment(t, repo, "Robert Wilson", "Dr. Michael Chen", "2024-12-29", "09:00", 30, domain.StatusScheduled)

	active, err := repo.ListByDoctor(ctx, "Dr. Sarah Johnson", domain.ActiveStatuses)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "John Smith", active[0].PatientName)

	all, err := repo.ListByDoctor(ctx, "Dr. Sarah Johnson", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Совпадение имени врача точное, не подстрочное.
	none, err := repo.ListByDoctor(ctx, "Dr. Sarah", nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListWithFilter(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	seedAppointment(t, repo, "John Smith", "Dr. Sarah Johnson", "2024-12-29", "09:00", 30, domain.StatusScheduled)
	seedAppointment(t, repo, "Emma Davis", "Dr. Michael Chen", "2024-12-29", "10:00", 30, domain.StatusConfirmed)
	seedAppointment(t, repo, "Robert Wilson", "Dr. Sarah Johnson", "2024-12-30", "09:00", 30, domain.StatusCompleted)

	date := mustParseDate(t, "2024-12-29")

	byDate, err := repo.ListWithFilter(ctx, domain.AppointmentsFilter{Date: &date})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	status := domain.StatusConfirmed
	byStatus, err := repo.ListWithFilter(ctx, domain.AppointmentsFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Emma Davis", byStatus[0].PatientName)

	// Подстрока имени врача ищется без учёта регистра.
	byDoctor, err := repo.ListWithFilter(ctx, domain.AppointmentsFilter{DoctorNameContains: ptr.Ptr("sarah")})
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	combined, err := repo.ListWithFilter(ctx, domain.AppointmentsFilter{
		Date:               &date,
		DoctorNameContains: ptr.Ptr("johnson"),
	})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "John Smith", combined[0].PatientName)

	everything, err := repo.ListWithFilter(ctx, domain.AppointmentsFilter{})
	require.NoError(t, err)
	assert.Len(t, everything, 3)
}

func TestUpdateStatusCompareAndSet(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created := seedAppointment(t, repo, "John Smith", "Dr. Sarah Johnson", "2024-12-29", "09:00", 30, domain.StatusScheduled)

	err := repo.UpdateStatus(ctx, created.ID, domain.StatusScheduled, domain.StatusConfirmed)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))

	// Ожидаемый статус уже не совпадает.
	err = repo.UpdateStatus(ctx, created.ID, domain.StatusScheduled, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrStatusConflict)

	err = repo.UpdateStatus(ctx, "apt-missing1", domain.StatusScheduled, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestUpdateStatusMutatesOnlyStatus(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created := seedAppointment(t, repo, "John Smith", "Dr. Sarah Johnson", "2024-12-29", "09:00", 30, domain.StatusScheduled)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.StatusScheduled, domain.StatusConfirmed))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.PatientName, got.PatientName)
	assert.Equal(t, created.DoctorName, got.DoctorName)
	assert.Equal(t, created.Date, got.Date)
	assert.Equal(t, created.StartTime, got.StartTime)
	assert.Equal(t, created.DurationMinutes, got.DurationMinutes)
	assert.Equal(t, created.Mode, got.Mode)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestDelete(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created := seedAppointment(t, repo, "John Smith", "Dr. Sarah Johnson", "2024-12-29", "09:00", 30, domain.StatusCompleted)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)

	// Повторное удаление возвращает NotFound, не панику.
	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, value)
	require.NoError(t, err)
	return d
}
