package domain

import "github.com/bosco250/uruti-schedule-service/internal/core/json_types"

type AttendanceType string

const (
	AttendanceClockIn  AttendanceType = "CLOCK_IN"
	AttendanceClockOut AttendanceType = "CLOCK_OUT"
)

type AttendanceLog struct {
	ID         string              `json:"id"`
	EmployeeID string              `json:"employeeId"`
	Type       AttendanceType      `json:"type"`
	Timestamp  json_types.DateTime `json:"timestamp"`
	Notes      string              `json:"notes,omitempty"`
}
