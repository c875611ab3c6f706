package in

import (
	"context"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
)

type ScheduleUseCase interface {
	// Candidate schedule for one employee on one date, annotated with availability
	GenerateSlots(ctx context.Context, employeeID string, date time.Time, durationMinutes int, serviceID string) ([]domain.TimeSlot, error)

	// Slots for several employees on one date
	GenerateBatchSlots(ctx context.Context, employeeIDs []string, date time.Time, durationMinutes int, serviceID string) (map[string][]domain.TimeSlot, error)

	// Conflict check called immediately before appointment creation
	ValidateBooking(ctx context.Context, req domain.BookingRequest) (*domain.ValidationResult, error)

	// Cache invalidation on appointment change events
	InvalidateEmployeeSlots(ctx context.Context, employeeID string)
	InvalidateAllSlots(ctx context.Context)
}
