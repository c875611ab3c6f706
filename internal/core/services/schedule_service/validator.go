package schedule_service

import (
	"context"
	"fmt"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/out"
	"github.com/bosco250/uruti-schedule-service/internal/utils"
)

// ValidateBooking answers "can this employee be booked for this exact time
// range" right before appointment creation. Conflicts are computed locally
// against the fetched appointments with the half-open rule, then the remote
// validation endpoint confirms. Any fetch or remote failure degrades to a
// well-formed invalid result with a reason: validation failure must mean
// "cannot confirm, do not book", never silently proceeding.
func (s *ScheduleService) ValidateBooking(ctx context.Context, req domain.BookingRequest) (*domain.ValidationResult, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	s.logger.Info("booking.validate.started", out.LogFields{
		"employeeId": req.EmployeeID,
		"start":      req.StartTime,
		"end":        req.EndTime,
	})

	appointments, err := s.salonPort.FetchAppointments(ctx, req.EmployeeID, utils.StartOfDay(req.StartTime), utils.EndOfDay(req.EndTime))
	if err != nil {
		s.logger.Error("booking.validate.appointments.fetch_failed", out.LogFields{
			"employeeId": req.EmployeeID,
			"error":      err.Error(),
		})
		return &domain.ValidationResult{
			Valid:  false,
			Reason: "Could not verify existing appointments",
		}, nil
	}

	conflicts := findConflicts(appointments, req)
	if len(conflicts) > 0 {
		s.logger.Info("booking.validate.conflict", out.LogFields{
			"employeeId":     req.EmployeeID,
			"conflictsCount": len(conflicts),
		})
		return &domain.ValidationResult{
			Valid:     false,
			Conflicts: conflicts,
			Reason:    "Time range conflicts with existing appointments",
		}, nil
	}

	remote, err := s.salonPort.ValidateBooking(ctx, req)
	if err != nil || remote == nil {
		s.logger.Warn("booking.validate.remote_failed", out.LogFields{
			"employeeId": req.EmployeeID,
		})
		return &domain.ValidationResult{
			Valid:  false,
			Reason: "Booking could not be confirmed",
		}, nil
	}

	if !remote.Valid {
		if remote.Reason == "" {
			remote.Reason = "Time range is no longer available"
		}
		return remote, nil
	}

	return &domain.ValidationResult{Valid: true, Suggestions: remote.Suggestions}, nil
}

func validateBookingRequest(req domain.BookingRequest) error {
	if req.EmployeeID == "" {
		return fmt.Errorf("%w: employeeID is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	return nil
}

// findConflicts returns every blocking appointment overlapping the proposed
// range, skipping the appointment being rescheduled.
func findConflicts(appointments []domain.Appointment, req domain.BookingRequest) []domain.AppointmentConflict {
	conflicts := make([]domain.AppointmentConflict, 0)

	for _, ap := range appointments {
		if req.ExcludeAppointmentID != "" && ap.ID == req.ExcludeAppointmentID {
			continue
		}
		if !ap.Blocks() {
			continue
		}
		if ap.Overlaps(req.StartTime, req.EndTime) {
			conflicts = append(conflicts, domain.AppointmentConflict{
				AppointmentID: ap.ID,
				StartTime:     ap.StartTime.Date,
				EndTime:       ap.EndTime.Date,
			})
		}
	}

	return conflicts
}
