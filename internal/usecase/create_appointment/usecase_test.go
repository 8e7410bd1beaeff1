package create_appointment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMR-AppointmentService/internal/domain"
	"github.com/m04kA/EMR-AppointmentService/internal/infra/storage/inmemory"
	"github.com/m04kA/EMR-AppointmentService/pkg/keymutex"
)

// nopLogger логгер-заглушка для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase() (*UseCase, *inmemory.Repository) {
	repo := inmemory.NewRepository()
	uc := NewUseCase(repo, inmemory.NewTransactionManager(), keymutex.New(), nopLogger{})
	return uc, repo
}

func validRequest() *Request {
	return &Request{
		PatientName:     "John Smith",
		Date:            "2024-12-29",
		Time:            "09:00",
		DurationMinutes: 30,
		DoctorName:      "Dr. Sarah Johnson",
		Mode:            "in-person",
	}
}

func TestExecuteCreatesAppointment(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Contains(t, resp.ID, domain.IDPrefix)
	assert.Equal(t, "John Smith", resp.PatientName)
	assert.Equal(t, "Dr. Sarah Johnson", resp.DoctorName)
	assert.Equal(t, "2024-12-29", resp.Date.Format(domain.DateFormat))
	assert.Equal(t, "09:00", resp.StartTime.String())
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "in-person", resp.Mode)
	assert.Equal(t, "scheduled", resp.Status)
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestExecuteAcceptsInitialStatus(t *testing.T) {
	uc, _ := newTestUseCase()

	req := validRequest()
	req.Status = "upcoming"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "upcoming", resp.Status)
}

func TestExecuteNormalizesStartTime(t *testing.T) {
	uc, _ := newTestUseCase()

	req := validRequest()
	req.Time = "9:05"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "09:05", resp.StartTime.String())
}

func TestExecuteValidationOrder(t *testing.T) {
	// Каждый запрос ломает несколько полей сразу: ошибка должна
	// указывать на первое по порядку проверки поле.
	tests := []struct {
		name      string
		mutate    func(req *Request)
		wantField string
	}{
		{
			name: "everything broken reports patientName first",
			mutate: func(req *Request) {
				req.PatientName = "   "
				req.Date = "29-12-2024"
				req.Time = "25:00"
				req.DurationMinutes = -10
				req.DoctorName = ""
				req.Mode = "telepathy"
			},
			wantField: "patientName",
		},
		{
			name: "date checked before time",
			mutate: func(req *Request) {
				req.Date = "tomorrow"
				req.Time = "25:00"
				req.DurationMinutes = 0
			},
			wantField: "date",
		},
		{
			name: "time checked before duration",
			mutate: func(req *Request) {
				req.Time = "10:61"
				req.DurationMinutes = 0
			},
			wantField: "time",
		},
		{
			name: "duration checked before doctorName",
			mutate: func(req *Request) {
				req.DurationMinutes = 0
				req.DoctorName = ""
			},
			wantField: "duration",
		},
		{
			name: "doctorName checked before mode",
			mutate: func(req *Request) {
				req.DoctorName = " "
				req.Mode = "carrier-pigeon"
			},
			wantField: "doctorName",
		},
		{
			name: "mode checked before status",
			mutate: func(req *Request) {
				req.Mode = "carrier-pigeon"
				req.Status = "completed"
			},
			wantField: "mode",
		},
		{
			name: "terminal initial status rejected",
			mutate: func(req *Request) {
				req.Status = "completed"
			},
			wantField: "status",
		},
		{
			name: "non-initial active status rejected",
			mutate: func(req *Request) {
				req.Status = "confirmed"
			},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase()

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestExecuteRejectsOverlappingAppointment(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	// 09:15 попадает внутрь интервала [09:00, 09:30)
	req := validRequest()
	req.PatientName = "Emma Davis"
	req.Time = "09:15"

	_, err = uc.Execute(ctx, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeConflict))

	var cErr *ConflictError
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, "Dr. Sarah Johnson", cErr.DoctorName)
	assert.Equal(t, "2024-12-29", cErr.ConflictingDate)
	assert.Equal(t, "09:00", cErr.ConflictingTime)
}

func TestExecuteAllowsAdjacentAppointment(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	// Интервалы полуоткрытые: запись встык с [09:00, 09:30) допустима
	req := validRequest()
	req.PatientName = "Emma Davis"
	req.Time = "09:30"

	resp, err := uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "09:30", resp.StartTime.String())
}

func TestExecuteAllowsSameSlotForAnotherDoctor(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.PatientName = "Emma Davis"
	req.DoctorName = "Dr. Michael Chen"

	_, err = uc.Execute(ctx, req)
	require.NoError(t, err)
}

func TestExecuteIgnoresTerminalAppointments(t *testing.T) {
	// Отменённая или завершённая запись не блокирует слот
	for _, status := range []string{"cancelled", "completed"} {
		t.Run(status, func(t *testing.T) {
			uc, repo := newTestUseCase()
			ctx := context.Background()

			resp, err := uc.Execute(ctx, validRequest())
			require.NoError(t, err)

			from := domain.StatusScheduled
			to := domain.AppointmentStatus(status)
			if to == domain.StatusCompleted {
				// completed достижим только из confirmed
				require.NoError(t, repo.UpdateStatus(ctx, resp.ID, from, domain.StatusConfirmed))
				from = domain.StatusConfirmed
			}
			require.NoError(t, repo.UpdateStatus(ctx, resp.ID, from, to))

			req := validRequest()
			req.PatientName = "Emma Davis"

			_, err = uc.Execute(ctx, req)
			require.NoError(t, err)
		})
	}
}

func TestExecuteConcurrentSameSlot(t *testing.T) {
	uc, repo := newTestUseCase()

	const workers = 20

	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := uc.Execute(context.Background(), validRequest())
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrTimeConflict):
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()

	// Слот достаётся ровно одному, остальные получают конфликт
	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())

	appointments, err := repo.ListByDoctor(context.Background(), "Dr. Sarah Johnson", nil)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}
