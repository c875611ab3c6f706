package worklog_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/out"
	"github.com/bosco250/uruti-schedule-service/internal/utils"
)

const summaryWorkers = 5

// Summarize folds a contiguous range of per-day work logs into one summary.
// Dates are aggregated in parallel; a date that fails to aggregate is
// silently excluded rather than failing the whole summary. Averages divide by
// days actually worked so idle days never dilute them.
func (s *WorkLogService) Summarize(ctx context.Context, employeeID string, period domain.SummaryPeriod, start, end *time.Time) (*domain.WorkLogSummary, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employeeID is required", ErrInvalidInput)
	}

	rangeStart, rangeEnd, err := s.resolveRange(period, start, end)
	if err != nil {
		return nil, err
	}

	days := utils.EnumerateDays(rangeStart, rangeEnd)

	s.logger.Info("worklog.summary.started", out.LogFields{
		"employeeId": employeeID,
		"period":     period,
		"startDate":  rangeStart.Format("2006-01-02"),
		"endDate":    rangeEnd.Format("2006-01-02"),
		"totalDays":  len(days),
	})

	// Indexed results keep the fold order deterministic regardless of which
	// fetch finishes first.
	results := make([]*domain.WorkLogDay, len(days))

	var wg sync.WaitGroup
	workerPool := make(chan struct{}, summaryWorkers)

	for i, date := range days {
		wg.Add(1)
		workerPool <- struct{}{}

		go func(idx int, d time.Time) {
			defer func() {
				<-workerPool
				wg.Done()
			}()

			day, err := s.AggregateDay(ctx, employeeID, d)
			if err != nil {
				s.logger.Warn("worklog.summary.day_failed", out.LogFields{
					"employeeId": employeeID,
					"date":       d.Format("2006-01-02"),
					"error":      err.Error(),
				})
				return
			}
			results[idx] = day
		}(i, date)
	}

	wg.Wait()

	summary := &domain.WorkLogSummary{
		Period:    period,
		StartDate: rangeStart,
		EndDate:   rangeEnd,
		TotalDays: len(days),
		Days:      make([]domain.WorkLogDay, 0, len(days)),
	}

	for _, day := range results {
		if day == nil {
			continue
		}
		summary.Days = append(summary.Days, *day)

		if day.Status == domain.WorkLogStatusNotWorked {
			continue
		}

		summary.DaysWorked++
		summary.TotalHours += day.TotalHours
		summary.TotalAppointments += len(day.Appointments)
		summary.CompletedAppointments += len(day.CompletedAppointments)
		summary.TotalEarnings += day.Earnings
		summary.TotalCommission += day.Commission

		// Strict greater-than keeps the earliest day on ties
		if summary.BestDay == nil || day.Earnings > summary.BestDay.Earnings {
			best := *day
			summary.BestDay = &best
		}
	}

	if summary.DaysWorked > 0 {
		worked := float64(summary.DaysWorked)
		summary.AverageHoursPerDay = summary.TotalHours / worked
		summary.AverageEarningsPerDay = summary.TotalEarnings / worked
		summary.AverageAppointmentsPerDay = float64(summary.TotalAppointments) / worked
	}

	s.logger.Info("worklog.summary.finished", out.LogFields{
		"employeeId": employeeID,
		"daysWorked": summary.DaysWorked,
		"earnings":   summary.TotalEarnings,
	})

	return summary, nil
}

func (s *WorkLogService) resolveRange(period domain.SummaryPeriod, start, end *time.Time) (time.Time, time.Time, error) {
	if start != nil && end != nil {
		if end.Before(*start) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end before start", ErrInvalidInput)
		}
		return utils.StartOfDay(*start), utils.StartOfDay(*end), nil
	}

	today := utils.StartOfDay(s.clock.Now())

	switch period {
	case domain.SummaryPeriodDay:
		return today, today, nil
	case domain.SummaryPeriodWeek:
		return today.AddDate(0, 0, -6), today, nil
	case domain.SummaryPeriodMonth:
		return today.AddDate(0, 0, -29), today, nil
	}

	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
}
