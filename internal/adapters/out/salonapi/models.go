package salonapi

import (
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/json_types"
)

// rawSlot is the wire shape of one candidate slot: times of day paired with
// the query date, and an availability flag that may arrive as bool or string.
type rawSlot struct {
	StartTime json_types.TimeOfDay `json:"startTime"`
	EndTime   json_types.TimeOfDay `json:"endTime"`
	Available json_types.FlexBool  `json:"available"`
	Reason    string               `json:"reason,omitempty"`
}

func (r rawSlot) toDomain(date time.Time) domain.TimeSlot {
	return domain.TimeSlot{
		StartTime: r.StartTime.On(date),
		EndTime:   r.EndTime.On(date),
		Available: r.Available.Bool(),
		Reason:    r.Reason,
	}
}

type rawConflict struct {
	AppointmentID string              `json:"appointmentId"`
	StartTime     json_types.DateTime `json:"startTime"`
	EndTime       json_types.DateTime `json:"endTime"`
}

type rawValidation struct {
	Valid       json_types.FlexBool `json:"valid"`
	Conflicts   []rawConflict       `json:"conflicts,omitempty"`
	Suggestions []rawSlot           `json:"suggestions,omitempty"`
	Reason      string              `json:"reason,omitempty"`
}

func (r rawValidation) toDomain(date time.Time) *domain.ValidationResult {
	result := &domain.ValidationResult{
		Valid:  r.Valid.Bool(),
		Reason: r.Reason,
	}

	for _, c := range r.Conflicts {
		result.Conflicts = append(result.Conflicts, domain.AppointmentConflict{
			AppointmentID: c.AppointmentID,
			StartTime:     c.StartTime.Date,
			EndTime:       c.EndTime.Date,
		})
	}

	for _, s := range r.Suggestions {
		suggestion := s.toDomain(date)
		suggestion.Available = true
		result.Suggestions = append(result.Suggestions, suggestion)
	}

	return result
}

type validateBookingPayload struct {
	EmployeeID           string `json:"employeeId"`
	ServiceID            string `json:"serviceId,omitempty"`
	StartTime            string `json:"startTime"`
	EndTime              string `json:"endTime"`
	ExcludeAppointmentID string `json:"excludeAppointmentId,omitempty"`
}
