package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bosco250/uruti-schedule-service/internal/config"
	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/services/schedule_service"
	"github.com/bosco250/uruti-schedule-service/internal/core/services/worklog_service"
)

type fakeScheduleUseCase struct {
	slots      []domain.TimeSlot
	slotsErr   error
	validation *domain.ValidationResult
}

func (f *fakeScheduleUseCase) GenerateSlots(ctx context.Context, employeeID string, date time.Time, durationMinutes int, serviceID string) ([]domain.TimeSlot, error) {
	return f.slots, f.slotsErr
}

func (f *fakeScheduleUseCase) GenerateBatchSlots(ctx context.Context, employeeIDs []string, date time.Time, durationMinutes int, serviceID string) (map[string][]domain.TimeSlot, error) {
	result := make(map[string][]domain.TimeSlot, len(employeeIDs))
	for _, id := range employeeIDs {
		result[id] = f.slots
	}
	return result, f.slotsErr
}

func (f *fakeScheduleUseCase) ValidateBooking(ctx context.Context, req domain.BookingRequest) (*domain.ValidationResult, error) {
	return f.validation, nil
}

func (f *fakeScheduleUseCase) InvalidateEmployeeSlots(ctx context.Context, employeeID string) {}
func (f *fakeScheduleUseCase) InvalidateAllSlots(ctx context.Context)                        {}

type fakeWorkLogUseCase struct {
	day        *domain.WorkLogDay
	summary    *domain.WorkLogSummary
	summaryErr error
}

func (f *fakeWorkLogUseCase) AggregateDay(ctx context.Context, employeeID string, date time.Time) (*domain.WorkLogDay, error) {
	return f.day, nil
}

func (f *fakeWorkLogUseCase) Summarize(ctx context.Context, employeeID string, period domain.SummaryPeriod, start, end *time.Time) (*domain.WorkLogSummary, error) {
	return f.summary, f.summaryErr
}

func newTestRouter(t *testing.T, schedule *fakeScheduleUseCase, worklog *fakeWorkLogUseCase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Location: time.UTC}
	cfg.Schedule.DefaultDurationMinutes = 30
	cfg.Auth.BasicClients = []config.ConfigBasicClient{
		{Username: "client", Password: "secret"},
	}

	router := gin.New()
	NewScheduleController(schedule, worklog, cfg).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.SetBasicAuth("client", "secret")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRoutesRequireBasicAuth(t *testing.T) {
	router := newTestRouter(t, &fakeScheduleUseCase{}, &fakeWorkLogUseCase{})

	resp := doRequest(router, http.MethodGet, "/api/v1/employees/emp-1/slots?date=2024-06-01", "", false)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Header().Get("WWW-Authenticate"), "Basic")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/emp-1/slots?date=2024-06-01", nil)
	req.SetBasicAuth("client", "wrong")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetSlots(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	schedule := &fakeScheduleUseCase{
		slots: []domain.TimeSlot{
			{StartTime: start, EndTime: start.Add(30 * time.Minute), Available: true},
		},
	}
	router := newTestRouter(t, schedule, &fakeWorkLogUseCase{})

	resp := doRequest(router, http.MethodGet, "/api/v1/employees/emp-1/slots?date=2024-06-01", "", true)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		EmployeeID string            `json:"employeeId"`
		Date       string            `json:"date"`
		Slots      []domain.TimeSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, "emp-1", payload.EmployeeID)
	assert.Equal(t, "2024-06-01", payload.Date)
	require.Len(t, payload.Slots, 1)
	assert.True(t, payload.Slots[0].Available)
}

func TestGetSlots_BadRequests(t *testing.T) {
	router := newTestRouter(t, &fakeScheduleUseCase{}, &fakeWorkLogUseCase{})

	resp := doRequest(router, http.MethodGet, "/api/v1/employees/emp-1/slots?date=not-a-date", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/v1/employees/emp-1/slots?date=2024-06-01&duration=abc", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetSlots_ServiceErrorMapping(t *testing.T) {
	schedule := &fakeScheduleUseCase{
		slotsErr: fmt.Errorf("%w: durationMinutes must be positive", schedule_service.ErrInvalidInput),
	}
	router := newTestRouter(t, schedule, &fakeWorkLogUseCase{})

	resp := doRequest(router, http.MethodGet, "/api/v1/employees/emp-1/slots?date=2024-06-01", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	schedule.slotsErr = fmt.Errorf("%w: backend down", schedule_service.ErrFetchSlots)
	resp = doRequest(router, http.MethodGet, "/api/v1/employees/emp-1/slots?date=2024-06-01", "", true)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestBatchSlots(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	schedule := &fakeScheduleUseCase{
		slots: []domain.TimeSlot{{StartTime: start, EndTime: start.Add(30 * time.Minute), Available: true}},
	}
	router := newTestRouter(t, schedule, &fakeWorkLogUseCase{})

	body := `{"employeeIds":["emp-1","emp-2"],"date":"2024-06-01"}`
	resp := doRequest(router, http.MethodPost, "/api/v1/slots/batch", body, true)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Results map[string][]domain.TimeSlot `json:"results"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Len(t, payload.Results, 2)

	// Empty employee list fails binding
	resp = doRequest(router, http.MethodPost, "/api/v1/slots/batch", `{"employeeIds":[],"date":"2024-06-01"}`, true)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestValidateBookingEndpoint(t *testing.T) {
	schedule := &fakeScheduleUseCase{
		validation: &domain.ValidationResult{Valid: false, Reason: "Time range conflicts with existing appointments"},
	}
	router := newTestRouter(t, schedule, &fakeWorkLogUseCase{})

	body := `{"employeeId":"emp-1","startTime":"2024-06-01T10:00:00Z","endTime":"2024-06-01T11:00:00Z"}`
	resp := doRequest(router, http.MethodPost, "/api/v1/bookings/validate", body, true)
	require.Equal(t, http.StatusOK, resp.Code)

	var result domain.ValidationResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, "Time range conflicts with existing appointments", result.Reason)

	// Missing required fields fail binding
	resp = doRequest(router, http.MethodPost, "/api/v1/bookings/validate", `{"employeeId":"emp-1"}`, true)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestWorkLogSummary_PeriodValidation(t *testing.T) {
	worklog := &fakeWorkLogUseCase{
		summaryErr: fmt.Errorf("%w: %q", worklog_service.ErrInvalidPeriod, "year"),
	}
	router := newTestRouter(t, &fakeScheduleUseCase{}, worklog)

	resp := doRequest(router, http.MethodGet, "/api/v1/employees/emp-1/worklog/summary?period=year", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRequestIDHeader(t *testing.T) {
	worklog := &fakeWorkLogUseCase{summary: &domain.WorkLogSummary{Period: domain.SummaryPeriodWeek}}
	router := newTestRouter(t, &fakeScheduleUseCase{}, worklog)

	resp := doRequest(router, http.MethodGet, "/api/v1/employees/emp-1/worklog/summary", "", true)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/emp-1/worklog/summary", nil)
	req.SetBasicAuth("client", "secret")
	req.Header.Set("X-Request-Id", "fixed-id")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, "fixed-id", recorder.Header().Get("X-Request-Id"))
}
