package worklog_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bosco250/uruti-schedule-service/internal/config"
	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/json_types"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakeSalonPort serves per-day fixtures keyed by the date of the "from" bound.
type fakeSalonPort struct {
	appointments    map[string][]domain.Appointment
	attendance      map[string][]domain.AttendanceLog
	sales           map[string][]domain.Sale
	current         *domain.AttendanceLog
	appointmentsErr error
	attendanceErr   error
	salesErr        error
	currentErr      error
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func (f *fakeSalonPort) FetchAppointments(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Appointment, error) {
	if f.appointmentsErr != nil {
		return nil, f.appointmentsErr
	}
	return f.appointments[dayKey(from)], nil
}

func (f *fakeSalonPort) FetchSlots(ctx context.Context, employeeID string, date time.Time, durationMinutes int, serviceID string) ([]domain.TimeSlot, error) {
	return nil, nil
}

func (f *fakeSalonPort) ValidateBooking(ctx context.Context, req domain.BookingRequest) (*domain.ValidationResult, error) {
	return nil, nil
}

func (f *fakeSalonPort) FetchAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceLog, error) {
	if f.attendanceErr != nil {
		return nil, f.attendanceErr
	}
	return f.attendance[dayKey(from)], nil
}

func (f *fakeSalonPort) FetchCurrentAttendance(ctx context.Context, employeeID string) (*domain.AttendanceLog, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.current, nil
}

func (f *fakeSalonPort) FetchSales(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Sale, error) {
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	return f.sales[dayKey(from)], nil
}

func newService(port *fakeSalonPort, now time.Time) *WorkLogService {
	return NewWorkLogService(port, fixedClock{now: now}, &config.Config{}, nopLogger{})
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func clockLog(id string, logType domain.AttendanceType, ts time.Time) domain.AttendanceLog {
	return domain.AttendanceLog{
		ID:        id,
		Type:      logType,
		Timestamp: json_types.DateTime{Date: ts},
	}
}

func completedAppointment(id string, start time.Time, amount float64) domain.Appointment {
	return domain.Appointment{
		ID:            id,
		Status:        domain.AppointmentStatusCompleted,
		StartTime:     json_types.DateTime{Date: start},
		EndTime:       json_types.DateTime{Date: start.Add(30 * time.Minute)},
		ServiceAmount: amount,
	}
}

func TestAggregateDay_WorkingToday(t *testing.T) {
	today := day(1)
	now := today.Add(14 * time.Hour)

	port := &fakeSalonPort{
		appointments: map[string][]domain.Appointment{
			dayKey(today): {completedAppointment("ap-1", today.Add(10*time.Hour), 5000)},
		},
		attendance: map[string][]domain.AttendanceLog{
			dayKey(today): {clockLog("att-1", domain.AttendanceClockIn, today.Add(8*time.Hour))},
		},
	}
	svc := newService(port, now)

	result, err := svc.AggregateDay(context.Background(), "emp-1", today)
	require.NoError(t, err)

	assert.Equal(t, domain.WorkLogStatusWorking, result.Status)
	require.NotNil(t, result.ClockIn)
	assert.Equal(t, today.Add(8*time.Hour), *result.ClockIn)
	assert.Nil(t, result.ClockOut)
	assert.Equal(t, 360, result.TotalMinutes)
	assert.InDelta(t, 6.0, result.TotalHours, 0.001)
	assert.Equal(t, 5000.0, result.Earnings)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, domain.WorkLogEntryAttendance, result.Entries[0].Kind)
	assert.Equal(t, domain.WorkLogEntryAppointment, result.Entries[1].Kind)
}

func TestAggregateDay_CompletedDay(t *testing.T) {
	date := day(1)
	now := day(3).Add(12 * time.Hour)

	port := &fakeSalonPort{
		attendance: map[string][]domain.AttendanceLog{
			dayKey(date): {
				clockLog("att-1", domain.AttendanceClockIn, date.Add(9*time.Hour)),
				clockLog("att-2", domain.AttendanceClockOut, date.Add(17*time.Hour+30*time.Minute)),
			},
		},
	}
	svc := newService(port, now)

	result, err := svc.AggregateDay(context.Background(), "emp-1", date)
	require.NoError(t, err)

	assert.Equal(t, domain.WorkLogStatusCompleted, result.Status)
	assert.Equal(t, 510, result.TotalMinutes)
	require.NotNil(t, result.ClockOut)
	assert.Equal(t, date.Add(17*time.Hour+30*time.Minute), *result.ClockOut)
}

func TestAggregateDay_OpenClockInOnPastDay(t *testing.T) {
	date := day(1)
	now := day(3).Add(12 * time.Hour)

	port := &fakeSalonPort{
		attendance: map[string][]domain.AttendanceLog{
			dayKey(date): {clockLog("att-1", domain.AttendanceClockIn, date.Add(8*time.Hour))},
		},
	}
	svc := newService(port, now)

	result, err := svc.AggregateDay(context.Background(), "emp-1", date)
	require.NoError(t, err)

	// A missing clock-out on a past day never accrues time
	assert.Equal(t, 0, result.TotalMinutes)
	assert.Equal(t, domain.WorkLogStatusNotWorked, result.Status)
	require.NotNil(t, result.ClockIn)
	assert.Nil(t, result.ClockOut)
}

func TestAggregateDay_CurrentAttendanceFallback(t *testing.T) {
	today := day(1)
	now := today.Add(11 * time.Hour)

	current := clockLog("att-cur", domain.AttendanceClockIn, today.Add(9*time.Hour))
	port := &fakeSalonPort{current: &current}
	svc := newService(port, now)

	result, err := svc.AggregateDay(context.Background(), "emp-1", today)
	require.NoError(t, err)

	assert.Equal(t, domain.WorkLogStatusWorking, result.Status)
	require.NotNil(t, result.ClockIn)
	assert.Equal(t, today.Add(9*time.Hour), *result.ClockIn)
	assert.Equal(t, 120, result.TotalMinutes)
}

func TestAggregateDay_CurrentAttendanceIgnoredOnPastDay(t *testing.T) {
	date := day(1)
	now := day(5).Add(11 * time.Hour)

	current := clockLog("att-cur", domain.AttendanceClockIn, now.Add(-2*time.Hour))
	port := &fakeSalonPort{current: &current}
	svc := newService(port, now)

	result, err := svc.AggregateDay(context.Background(), "emp-1", date)
	require.NoError(t, err)

	assert.Equal(t, domain.WorkLogStatusNotWorked, result.Status)
	assert.Nil(t, result.ClockIn)
}

func TestAggregateDay_SourceFailureDegradesToEmpty(t *testing.T) {
	today := day(1)
	now := today.Add(14 * time.Hour)

	port := &fakeSalonPort{
		appointmentsErr: errors.New("appointments down"),
		salesErr:        errors.New("sales down"),
		currentErr:      errors.New("attendance down"),
		attendance: map[string][]domain.AttendanceLog{
			dayKey(today): {clockLog("att-1", domain.AttendanceClockIn, today.Add(8*time.Hour))},
		},
	}
	svc := newService(port, now)

	result, err := svc.AggregateDay(context.Background(), "emp-1", today)
	require.NoError(t, err)

	assert.Equal(t, domain.WorkLogStatusWorking, result.Status)
	assert.Empty(t, result.Appointments)
	assert.Zero(t, result.Earnings)
	assert.Zero(t, result.Commission)
}

func TestAggregateDay_CommissionFromSales(t *testing.T) {
	today := day(1)
	now := today.Add(18 * time.Hour)

	port := &fakeSalonPort{
		sales: map[string][]domain.Sale{
			dayKey(today): {
				{ID: "s-1", Commission: 300, CreatedAt: json_types.DateTime{Date: today.Add(10 * time.Hour)}},
				{ID: "s-2", Commission: 450, CreatedAt: json_types.DateTime{Date: today.Add(15 * time.Hour)}},
			},
		},
	}
	svc := newService(port, now)

	result, err := svc.AggregateDay(context.Background(), "emp-1", today)
	require.NoError(t, err)

	assert.Equal(t, 750.0, result.Commission)
	// Sales contribute to totals only, never to the timeline
	assert.Empty(t, result.Entries)
}

func TestAggregateDay_EntriesSortedChronologically(t *testing.T) {
	date := day(1)
	now := day(2)

	port := &fakeSalonPort{
		appointments: map[string][]domain.Appointment{
			dayKey(date): {
				completedAppointment("ap-late", date.Add(15*time.Hour), 1000),
				completedAppointment("ap-early", date.Add(10*time.Hour), 2000),
			},
		},
		attendance: map[string][]domain.AttendanceLog{
			dayKey(date): {
				clockLog("att-out", domain.AttendanceClockOut, date.Add(17*time.Hour)),
				clockLog("att-in", domain.AttendanceClockIn, date.Add(8*time.Hour)),
			},
		},
	}
	svc := newService(port, now)

	result, err := svc.AggregateDay(context.Background(), "emp-1", date)
	require.NoError(t, err)

	require.Len(t, result.Entries, 4)
	assert.Equal(t, "attendance-in-att-in", result.Entries[0].ID)
	assert.Equal(t, "appointment-ap-early", result.Entries[1].ID)
	assert.Equal(t, "appointment-ap-late", result.Entries[2].ID)
	assert.Equal(t, "attendance-out-att-out", result.Entries[3].ID)
}

func TestAggregateDay_InvalidInput(t *testing.T) {
	svc := newService(&fakeSalonPort{}, day(1))

	_, err := svc.AggregateDay(context.Background(), "", day(1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AggregateDay(context.Background(), "emp-1", time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
