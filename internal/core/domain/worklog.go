package domain

import "time"

type WorkLogEntryKind string

const (
	WorkLogEntryAttendance  WorkLogEntryKind = "attendance"
	WorkLogEntryAppointment WorkLogEntryKind = "appointment"
	WorkLogEntrySale        WorkLogEntryKind = "sale"
)

// WorkLogEntry is one chronological event in a day's timeline. Entries are
// read-only projections of their source record and exist only inside a
// WorkLogDay.
type WorkLogEntry struct {
	ID              string           `json:"id"`
	Kind            WorkLogEntryKind `json:"kind"`
	Timestamp       time.Time        `json:"timestamp"`
	EndTime         *time.Time       `json:"endTime,omitempty"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Status          string           `json:"status,omitempty"`
	DurationMinutes int              `json:"durationMinutes,omitempty"`
	Earnings        float64          `json:"earnings,omitempty"`

	Appointment *Appointment   `json:"appointment,omitempty"`
	Attendance  *AttendanceLog `json:"attendance,omitempty"`
	Sale        *Sale          `json:"sale,omitempty"`
}

type WorkLogStatus string

const (
	WorkLogStatusWorking   WorkLogStatus = "working"
	WorkLogStatusCompleted WorkLogStatus = "completed"
	WorkLogStatusNotWorked WorkLogStatus = "not_worked"
)

// WorkLogDay aggregates one employee-date.
type WorkLogDay struct {
	Date                  time.Time      `json:"date"`
	DateLabel             string         `json:"dateLabel"`
	ClockIn               *time.Time     `json:"clockIn,omitempty"`
	ClockOut              *time.Time     `json:"clockOut,omitempty"`
	TotalMinutes          int            `json:"totalMinutes"`
	TotalHours            float64        `json:"totalHours"`
	Appointments          []Appointment  `json:"appointments"`
	CompletedAppointments []Appointment  `json:"completedAppointments"`
	Earnings              float64        `json:"earnings"`
	Commission            float64        `json:"commission"`
	Entries               []WorkLogEntry `json:"entries"`
	Status                WorkLogStatus  `json:"status"`
}

type SummaryPeriod string

const (
	SummaryPeriodDay   SummaryPeriod = "day"
	SummaryPeriodWeek  SummaryPeriod = "week"
	SummaryPeriodMonth SummaryPeriod = "month"
)

// WorkLogSummary rolls a contiguous date range of WorkLogDay results up into
// period totals. Averages always divide by DaysWorked, never by TotalDays.
type WorkLogSummary struct {
	Period                    SummaryPeriod `json:"period"`
	StartDate                 time.Time     `json:"startDate"`
	EndDate                   time.Time     `json:"endDate"`
	TotalDays                 int           `json:"totalDays"`
	DaysWorked                int           `json:"daysWorked"`
	TotalHours                float64       `json:"totalHours"`
	TotalAppointments         int           `json:"totalAppointments"`
	CompletedAppointments     int           `json:"completedAppointments"`
	TotalEarnings             float64       `json:"totalEarnings"`
	TotalCommission           float64       `json:"totalCommission"`
	AverageHoursPerDay        float64       `json:"averageHoursPerDay"`
	AverageEarningsPerDay     float64       `json:"averageEarningsPerDay"`
	AverageAppointmentsPerDay float64       `json:"averageAppointmentsPerDay"`
	BestDay                   *WorkLogDay   `json:"bestDay,omitempty"`
	Days                      []WorkLogDay  `json:"days"`
}
