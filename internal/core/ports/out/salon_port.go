package out

import (
	"context"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
)

// SalonPort is the typed contract over the remote salon API. Adapters own
// transport and envelope normalization; callers only ever see the canonical
// domain model.
type SalonPort interface {
	// Appointments
	FetchAppointments(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Appointment, error)

	// Scheduling
	FetchSlots(ctx context.Context, employeeID string, date time.Time, durationMinutes int, serviceID string) ([]domain.TimeSlot, error)
	ValidateBooking(ctx context.Context, req domain.BookingRequest) (*domain.ValidationResult, error)

	// Attendance and sales
	FetchAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceLog, error)
	FetchCurrentAttendance(ctx context.Context, employeeID string) (*domain.AttendanceLog, error)
	FetchSales(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Sale, error)
}
