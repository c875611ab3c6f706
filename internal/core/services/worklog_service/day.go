package worklog_service

import (
	"sort"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/utils"
)

type dayInput struct {
	date         time.Time
	now          time.Time
	isToday      bool
	appointments []domain.Appointment
	attendance   []domain.AttendanceLog
	current      *domain.AttendanceLog
	sales        []domain.Sale
}

func buildDay(in dayInput) *domain.WorkLogDay {
	clockInLog := firstAttendanceOfType(in.attendance, domain.AttendanceClockIn)

	// An employee presently clocked in may have no explicit log for today yet,
	// only the open current-attendance record.
	if clockInLog == nil && in.isToday && in.current != nil {
		clockInLog = in.current
	}

	var clockIn, clockOut *time.Time
	var clockOutLog *domain.AttendanceLog
	if clockInLog != nil {
		t := clockInLog.Timestamp.Date
		clockIn = &t

		clockOutLog = firstClockOutAfter(in.attendance, t)
		if clockOutLog != nil {
			o := clockOutLog.Timestamp.Date
			clockOut = &o
		}
	}

	totalMinutes := elapsedMinutes(clockIn, clockOut, in.now, in.isToday)

	completed := make([]domain.Appointment, 0)
	earnings := 0.0
	for _, ap := range in.appointments {
		if ap.Status == domain.AppointmentStatusCompleted {
			completed = append(completed, ap)
			earnings += ap.ServiceAmount
		}
	}

	commission := 0.0
	for _, sale := range in.sales {
		commission += sale.Commission
	}

	entries := buildEntries(clockInLog, clockOutLog, in.appointments)

	status := domain.WorkLogStatusNotWorked
	switch {
	case clockIn != nil && clockOut != nil:
		status = domain.WorkLogStatusCompleted
	case clockIn != nil && in.isToday:
		status = domain.WorkLogStatusWorking
	}

	return &domain.WorkLogDay{
		Date:                  in.date,
		DateLabel:             utils.DateLabel(in.date),
		ClockIn:               clockIn,
		ClockOut:              clockOut,
		TotalMinutes:          totalMinutes,
		TotalHours:            float64(totalMinutes) / 60.0,
		Appointments:          in.appointments,
		CompletedAppointments: completed,
		Earnings:              earnings,
		Commission:            commission,
		Entries:               entries,
		Status:                status,
	}
}

// elapsedMinutes runs from clock-in to clock-out, or to "now" while still
// clocked in today. An open log on a past day contributes nothing beyond what
// was recorded.
func elapsedMinutes(clockIn, clockOut *time.Time, now time.Time, isToday bool) int {
	if clockIn == nil {
		return 0
	}
	if clockOut != nil {
		return int(clockOut.Sub(*clockIn) / time.Minute)
	}
	if isToday {
		return int(now.Sub(*clockIn) / time.Minute)
	}
	return 0
}

// buildEntries projects one entry per clock-in, per appointment and per
// clock-out, stable-sorted ascending by timestamp so the timeline order is
// deterministic regardless of fetch arrival order.
func buildEntries(clockInLog, clockOutLog *domain.AttendanceLog, appointments []domain.Appointment) []domain.WorkLogEntry {
	entries := make([]domain.WorkLogEntry, 0, len(appointments)+2)

	if clockInLog != nil {
		log := *clockInLog
		entries = append(entries, domain.WorkLogEntry{
			ID:          "attendance-in-" + log.ID,
			Kind:        domain.WorkLogEntryAttendance,
			Timestamp:   log.Timestamp.Date,
			Title:       "Clocked in",
			Description: log.Notes,
			Status:      string(domain.AttendanceClockIn),
			Attendance:  &log,
		})
	}

	for _, ap := range appointments {
		appointment := ap
		end := appointment.EndTime.Date
		entry := domain.WorkLogEntry{
			ID:              "appointment-" + appointment.ID,
			Kind:            domain.WorkLogEntryAppointment,
			Timestamp:       appointment.StartTime.Date,
			EndTime:         &end,
			Title:           "Appointment",
			Description:     appointment.Notes,
			Status:          string(appointment.Status),
			DurationMinutes: appointment.DurationMinutes(),
			Appointment:     &appointment,
		}
		if appointment.Status == domain.AppointmentStatusCompleted {
			entry.Earnings = appointment.ServiceAmount
		}
		entries = append(entries, entry)
	}

	if clockOutLog != nil {
		log := *clockOutLog
		entries = append(entries, domain.WorkLogEntry{
			ID:          "attendance-out-" + log.ID,
			Kind:        domain.WorkLogEntryAttendance,
			Timestamp:   log.Timestamp.Date,
			Title:       "Clocked out",
			Description: log.Notes,
			Status:      string(domain.AttendanceClockOut),
			Attendance:  &log,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return entries
}

func firstAttendanceOfType(logs []domain.AttendanceLog, attendanceType domain.AttendanceType) *domain.AttendanceLog {
	var first *domain.AttendanceLog
	for i := range logs {
		log := logs[i]
		if log.Type != attendanceType {
			continue
		}
		if first == nil || log.Timestamp.Date.Before(first.Timestamp.Date) {
			first = &log
		}
	}
	return first
}

func firstClockOutAfter(logs []domain.AttendanceLog, after time.Time) *domain.AttendanceLog {
	var first *domain.AttendanceLog
	for i := range logs {
		log := logs[i]
		if log.Type != domain.AttendanceClockOut {
			continue
		}
		if log.Timestamp.Date.Before(after) {
			continue
		}
		if first == nil || log.Timestamp.Date.Before(first.Timestamp.Date) {
			first = &log
		}
	}
	return first
}

func filterAppointmentsToDay(appointments []domain.Appointment, dayStart, dayEnd time.Time) []domain.Appointment {
	filtered := make([]domain.Appointment, 0, len(appointments))
	for _, ap := range appointments {
		start := ap.StartTime.Date
		if !start.Before(dayStart) && !start.After(dayEnd) {
			filtered = append(filtered, ap)
		}
	}
	return filtered
}

func filterAttendanceToDay(logs []domain.AttendanceLog, dayStart, dayEnd time.Time) []domain.AttendanceLog {
	filtered := make([]domain.AttendanceLog, 0, len(logs))
	for _, log := range logs {
		ts := log.Timestamp.Date
		if !ts.Before(dayStart) && !ts.After(dayEnd) {
			filtered = append(filtered, log)
		}
	}
	return filtered
}

func filterSalesToDay(sales []domain.Sale, dayStart, dayEnd time.Time) []domain.Sale {
	filtered := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		ts := sale.CreatedAt.Date
		if !ts.Before(dayStart) && !ts.After(dayEnd) {
			filtered = append(filtered, sale)
		}
	}
	return filtered
}
