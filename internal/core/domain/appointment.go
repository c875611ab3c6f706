package domain

import (
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusBooked     AppointmentStatus = "booked"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// appointmentTransitions lists the allowed forward moves of the lifecycle.
// cancelled and no_show are reachable from any non-terminal state.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:    {AppointmentStatusBooked, AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusBooked:     {AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusConfirmed:  {AppointmentStatusInProgress, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusInProgress: {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow},
}

// IsBlocking reports whether an appointment in this status occupies the
// employee's calendar for conflict detection.
func (s AppointmentStatus) IsBlocking() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusBooked, AppointmentStatusConfirmed, AppointmentStatusInProgress:
		return true
	}
	return false
}

// IsUpcoming reports whether the appointment has not started yet.
func (s AppointmentStatus) IsUpcoming() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusBooked, AppointmentStatusConfirmed:
		return true
	}
	return false
}

// IsTerminal reports whether the appointment accepts no further status
// transitions. Metadata edits (notes) stay allowed.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a valid lifecycle step.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InitialAppointmentStatus is the status every new appointment is created in.
func InitialAppointmentStatus() AppointmentStatus {
	return AppointmentStatusPending
}

type Appointment struct {
	ID            string                     `json:"id"`
	SalonID       string                     `json:"salonId"`
	CustomerID    string                     `json:"customerId,omitempty"`
	ServiceID     string                     `json:"serviceId,omitempty"`
	EmployeeID    string                     `json:"employeeId,omitempty"`
	StartTime     json_types.DateTime        `json:"scheduledStart"`
	EndTime       json_types.DateTime        `json:"scheduledEnd"`
	Status        AppointmentStatus          `json:"status"`
	ServiceAmount float64                    `json:"serviceAmount,omitempty"`
	Notes         string                     `json:"notes,omitempty"`
	CreatedAt     json_types.DateTimeOrEmpty `json:"createdAt,omitempty"`
	UpdatedAt     json_types.DateTimeOrEmpty `json:"updatedAt,omitempty"`
}

// Overlaps applies the half-open interval rule: [a, b) and [c, d) overlap
// iff a < d && c < b. An appointment ending exactly when the range starts
// does not overlap it.
func (a Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Date.Before(end) && start.Before(a.EndTime.Date)
}

// Blocks reports whether this appointment must be considered an obstacle
// when computing availability.
func (a Appointment) Blocks() bool {
	return a.Status.IsBlocking()
}

// DurationMinutes is the scheduled length of the appointment.
func (a Appointment) DurationMinutes() int {
	return int(a.EndTime.Date.Sub(a.StartTime.Date) / time.Minute)
}
