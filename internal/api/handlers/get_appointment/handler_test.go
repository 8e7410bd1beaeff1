package get_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMR-AppointmentService/internal/api/handlers"
	"github.com/m04kA/EMR-AppointmentService/internal/domain"
	"github.com/m04kA/EMR-AppointmentService/internal/infra/storage/inmemory"
	"github.com/m04kA/EMR-AppointmentService/internal/service/appointments"
	"github.com/m04kA/EMR-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/EMR-AppointmentService/pkg/keymutex"
	"github.com/m04kA/EMR-AppointmentService/pkg/types"
)

// nopLogger логгер-заглушка для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()

	repo := inmemory.NewRepository()
	service := appointments.NewService(repo, keymutex.New(), nopLogger{})

	date, err := time.Parse(domain.DateFormat, "2024-12-29")
	require.NoError(t, err)

	apt, err := repo.Create(context.Background(), &domain.Appointment{
		PatientName:     "Emma Davis",
		Date:            date,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 45,
		DoctorName:      "Dr. Michael Chen",
		Mode:            domain.ModeVideo,
		Status:          domain.StatusScheduled,
	})
	require.NoError(t, err)

	handler := NewHandler(service, nopLogger{})

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}", handler.Handle).Methods(http.MethodGet)

	return router, apt.ID
}

func performGet(router *mux.Router, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleReturnsAppointment(t *testing.T) {
	router, id := newTestRouter(t)

	rec := performGet(router, id)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "Emma Davis", resp.PatientName)
	assert.Equal(t, "2024-12-29", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, 45, resp.Duration)
	assert.Equal(t, "Dr. Michael Chen", resp.DoctorName)
	assert.Equal(t, "video", resp.Mode)
	assert.Equal(t, "scheduled", resp.Status)
}

func TestHandleNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := performGet(router, "apt-ffffffff")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, msgNotFound, errResp.Error)
}
