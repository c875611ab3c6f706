package worklog_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/config"
	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/out"
	"github.com/bosco250/uruti-schedule-service/internal/utils"
)

type WorkLogService struct {
	salonPort out.SalonPort
	clock     out.Clock
	cfg       *config.Config
	logger    out.LoggerPort
}

func NewWorkLogService(
	salonPort out.SalonPort,
	clock out.Clock,
	cfg *config.Config,
	logger out.LoggerPort,
) *WorkLogService {
	return &WorkLogService{
		salonPort: salonPort,
		clock:     clock,
		cfg:       cfg,
		logger:    logger.WithModule("WorkLogService"),
	}
}

// AggregateDay merges the employee's appointments, attendance logs and sales
// for one date into a single chronological WorkLogDay. Every source is
// fetched independently and a failed source degrades to empty: the work log
// must stay displayable under partial backend failure.
func (s *WorkLogService) AggregateDay(ctx context.Context, employeeID string, date time.Time) (*domain.WorkLogDay, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employeeID is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := s.clock.Now()
	dayStart := utils.StartOfDay(date)
	dayEnd := utils.EndOfDay(date)
	isToday := utils.SameDay(date, now)

	s.logger.Info("worklog.aggregate.started", out.LogFields{
		"employeeId": employeeID,
		"date":       dayStart.Format("2006-01-02"),
	})

	var (
		appointments []domain.Appointment
		attendance   []domain.AttendanceLog
		current      *domain.AttendanceLog
		sales        []domain.Sale
	)

	// Each branch writes only its own variable, so the WaitGroup is the only
	// synchronization needed.
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		result, err := s.salonPort.FetchAppointments(ctx, employeeID, dayStart, dayEnd)
		if err != nil {
			s.logger.Warn("worklog.aggregate.appointments.fetch_failed", out.LogFields{
				"employeeId": employeeID,
				"error":      err.Error(),
			})
			return
		}
		appointments = result
	}()

	go func() {
		defer wg.Done()
		result, err := s.salonPort.FetchAttendance(ctx, employeeID, dayStart, dayEnd)
		if err != nil {
			s.logger.Warn("worklog.aggregate.attendance.fetch_failed", out.LogFields{
				"employeeId": employeeID,
				"error":      err.Error(),
			})
			return
		}
		attendance = result
	}()

	go func() {
		defer wg.Done()
		result, err := s.salonPort.FetchCurrentAttendance(ctx, employeeID)
		if err != nil {
			s.logger.Warn("worklog.aggregate.current_attendance.fetch_failed", out.LogFields{
				"employeeId": employeeID,
				"error":      err.Error(),
			})
			return
		}
		current = result
	}()

	go func() {
		defer wg.Done()
		result, err := s.salonPort.FetchSales(ctx, employeeID, dayStart, dayEnd)
		if err != nil {
			s.logger.Warn("worklog.aggregate.sales.fetch_failed", out.LogFields{
				"employeeId": employeeID,
				"error":      err.Error(),
			})
			return
		}
		sales = result
	}()

	wg.Wait()

	day := buildDay(dayInput{
		date:         dayStart,
		now:          now,
		isToday:      isToday,
		appointments: filterAppointmentsToDay(appointments, dayStart, dayEnd),
		attendance:   filterAttendanceToDay(attendance, dayStart, dayEnd),
		current:      current,
		sales:        filterSalesToDay(sales, dayStart, dayEnd),
	})

	s.logger.Info("worklog.aggregate.finished", out.LogFields{
		"employeeId":   employeeID,
		"date":         dayStart.Format("2006-01-02"),
		"status":       day.Status,
		"entriesCount": len(day.Entries),
	})

	return day, nil
}
