package domain

import "time"

// BookingRequest is a proposed (employee, time range) pair checked right
// before appointment creation. ExcludeAppointmentID carries the identifier of
// an appointment being rescheduled so it does not conflict with itself.
type BookingRequest struct {
	EmployeeID           string    `json:"employeeId"`
	ServiceID            string    `json:"serviceId"`
	StartTime            time.Time `json:"startTime"`
	EndTime              time.Time `json:"endTime"`
	ExcludeAppointmentID string    `json:"excludeAppointmentId,omitempty"`
}

type AppointmentConflict struct {
	AppointmentID string    `json:"appointmentId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}

// ValidationResult is always well-formed: a failed validation call degrades
// to Valid=false with a Reason, never to an exception or a silent pass.
type ValidationResult struct {
	Valid       bool                  `json:"valid"`
	Conflicts   []AppointmentConflict `json:"conflicts,omitempty"`
	Suggestions []TimeSlot            `json:"suggestions,omitempty"`
	Reason      string                `json:"reason,omitempty"`
}
