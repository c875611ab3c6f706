package schedule_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
)

func bookingRequest(t *testing.T, start, end time.Time) domain.BookingRequest {
	t.Helper()
	return domain.BookingRequest{
		EmployeeID: "emp-1",
		ServiceID:  "svc-1",
		StartTime:  start,
		EndTime:    end,
	}
}

func TestValidateBooking_ConflictDetected(t *testing.T) {
	port := &fakeSalonPort{
		appointments: []domain.Appointment{
			appointment(t, "ap-1", domain.AppointmentStatusConfirmed, at(t, 10, 0), at(t, 11, 0)),
		},
		validation: &domain.ValidationResult{Valid: true},
	}
	svc := newService(port, at(t, 8, 0))

	result, err := svc.ValidateBooking(context.Background(), bookingRequest(t, at(t, 10, 30), at(t, 11, 30)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "ap-1", result.Conflicts[0].AppointmentID)
	assert.Equal(t, "Time range conflicts with existing appointments", result.Reason)
}

func TestValidateBooking_TouchingRangesDoNotConflict(t *testing.T) {
	port := &fakeSalonPort{
		appointments: []domain.Appointment{
			appointment(t, "ap-1", domain.AppointmentStatusConfirmed, at(t, 10, 0), at(t, 11, 0)),
		},
		validation: &domain.ValidationResult{Valid: true},
	}
	svc := newService(port, at(t, 8, 0))

	result, err := svc.ValidateBooking(context.Background(), bookingRequest(t, at(t, 11, 0), at(t, 12, 0)))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Conflicts)
}

func TestValidateBooking_ExcludesRescheduledAppointment(t *testing.T) {
	port := &fakeSalonPort{
		appointments: []domain.Appointment{
			appointment(t, "ap-1", domain.AppointmentStatusConfirmed, at(t, 10, 0), at(t, 11, 0)),
		},
		validation: &domain.ValidationResult{Valid: true},
	}
	svc := newService(port, at(t, 8, 0))

	req := bookingRequest(t, at(t, 10, 0), at(t, 11, 0))
	req.ExcludeAppointmentID = "ap-1"

	result, err := svc.ValidateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateBooking_CancelledDoesNotConflict(t *testing.T) {
	port := &fakeSalonPort{
		appointments: []domain.Appointment{
			appointment(t, "ap-1", domain.AppointmentStatusCancelled, at(t, 10, 0), at(t, 11, 0)),
			appointment(t, "ap-2", domain.AppointmentStatusNoShow, at(t, 10, 0), at(t, 11, 0)),
		},
		validation: &domain.ValidationResult{Valid: true},
	}
	svc := newService(port, at(t, 8, 0))

	result, err := svc.ValidateBooking(context.Background(), bookingRequest(t, at(t, 10, 0), at(t, 11, 0)))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateBooking_FetchFailureMeansInvalid(t *testing.T) {
	port := &fakeSalonPort{appointmentsErr: errors.New("backend down")}
	svc := newService(port, at(t, 8, 0))

	result, err := svc.ValidateBooking(context.Background(), bookingRequest(t, at(t, 10, 0), at(t, 11, 0)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Could not verify existing appointments", result.Reason)
}

func TestValidateBooking_RemoteFailureMeansInvalid(t *testing.T) {
	port := &fakeSalonPort{validationErr: errors.New("timeout")}
	svc := newService(port, at(t, 8, 0))

	result, err := svc.ValidateBooking(context.Background(), bookingRequest(t, at(t, 10, 0), at(t, 11, 0)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Booking could not be confirmed", result.Reason)
}

func TestValidateBooking_RemoteRejectionPassedThrough(t *testing.T) {
	suggestion := domain.TimeSlot{StartTime: at(t, 14, 0), EndTime: at(t, 15, 0), Available: true}
	port := &fakeSalonPort{
		validation: &domain.ValidationResult{Valid: false, Suggestions: []domain.TimeSlot{suggestion}},
	}
	svc := newService(port, at(t, 8, 0))

	result, err := svc.ValidateBooking(context.Background(), bookingRequest(t, at(t, 10, 0), at(t, 11, 0)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Time range is no longer available", result.Reason)
	assert.Equal(t, []domain.TimeSlot{suggestion}, result.Suggestions)
}

func TestValidateBooking_InvalidRange(t *testing.T) {
	svc := newService(&fakeSalonPort{}, at(t, 8, 0))

	_, err := svc.ValidateBooking(context.Background(), bookingRequest(t, at(t, 11, 0), at(t, 10, 0)))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ValidateBooking(context.Background(), bookingRequest(t, at(t, 10, 0), at(t, 10, 0)))
	assert.ErrorIs(t, err, ErrInvalidInput)

	req := bookingRequest(t, at(t, 10, 0), at(t, 11, 0))
	req.EmployeeID = ""
	_, err = svc.ValidateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
