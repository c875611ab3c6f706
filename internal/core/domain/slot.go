package domain

import "time"

// UnavailableReasonBooked is the default reason attached to a slot that is
// not bookable and carries no more specific explanation.
const UnavailableReasonBooked = "Already booked"

// UnavailableReasonPast marks a slot whose start time has already passed.
const UnavailableReasonPast = "Time has passed"

type TimeSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// Overlaps applies the same half-open rule as Appointment.Overlaps.
func (s TimeSlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}
