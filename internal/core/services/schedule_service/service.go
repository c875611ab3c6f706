package schedule_service

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

type ScheduleService struct {
	salonPort out.SalonPort
	cachePort out.CachePort
	clock     out.Clock
	cfg       *config.Config
	logger    out.LoggerPort
}

func NewScheduleService(
	salonPort out.SalonPort,
	cachePort out.CachePort,
	clock out.Clock,
	cfg *config.Config,
	logger out.LoggerPort,
) *ScheduleService {
	return &ScheduleService{
		salonPort: salonPort,
		cachePort: cachePort,
		clock:     clock,
		cfg:       cfg,
		logger:    logger.WithModule("ScheduleService"),
	}
}

// GenerateSlots produces the candidate schedule for one employee on one date,
// each slot annotated with availability. Zero usable slots from the remote
// source means "nothing bookable" and returns an empty sequence, not an error;
// an error signals a genuine fetch failure.
func (s *ScheduleService) GenerateSlots(ctx context.Context, employeeID string, date time.Time, durationMinutes int, serviceID string) ([]domain.TimeSlot, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employeeID is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	s.logger.Info("slots.generate.started", out.LogFields{
		"employeeId": employeeID,
		"date":       date.Format("2006-01-02"),
		"duration":   durationMinutes,
	})

	key := out.NewSlotCacheKey(employeeID, date, durationMinutes, serviceID)
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if slots, exists := s.cachePort.GetSlots(ctx, key); exists {
			s.logger.Debug("slots.generate.cache.hit", out.LogFields{
				"employeeId": employeeID,
				"slotsCount": len(slots),
			})
			return slots, nil
		}
		s.logger.Debug("slots.generate.cache.miss", out.LogFields{
			"employeeId": employeeID,
		})
	}

	slots, err := s.salonPort.FetchSlots(ctx, employeeID, date, durationMinutes, serviceID)
	if err != nil {
		s.logger.Error("slots.generate.fetch_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrFetchSlots, err)
	}

	if len(slots) == 0 {
		s.logger.Info("slots.generate.empty", out.LogFields{
			"employeeId": employeeID,
			"date":       date.Format("2006-01-02"),
		})
		return []domain.TimeSlot{}, nil
	}

	appointments, err := s.salonPort.FetchAppointments(ctx, employeeID, utils.StartOfDay(date), utils.EndOfDay(date))
	if err != nil {
		s.logger.Error("slots.generate.appointments.fetch_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrFetchAppts, err)
	}

	annotated := annotateSlots(slots, appointments, date, s.clock.Now())

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreSlots(ctx, key, annotated)
	}

	s.logger.Info("slots.generate.finished", out.LogFields{
		"employeeId": employeeID,
		"slotsCount": len(annotated),
	})

	return annotated, nil
}

// GenerateBatchSlots fans GenerateSlots out over several employees for the
// same date and duration.
func (s *ScheduleService) GenerateBatchSlots(ctx context.Context, employeeIDs []string, date time.Time, durationMinutes int, serviceID string) (map[string][]domain.TimeSlot, error) {
	result := make(map[string][]domain.TimeSlot)
	var mu sync.Mutex
	var wg sync.WaitGroup
	errCh := make(chan error, len(employeeIDs))

	for _, id := range employeeIDs {
		wg.Add(1)
		go func(employeeID string) {
			defer wg.Done()

			slots, err := s.GenerateSlots(ctx, employeeID, date, durationMinutes, serviceID)
			if err != nil {
				errCh <- err
				return
			}

			mu.Lock()
			result[employeeID] = slots
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *ScheduleService) InvalidateEmployeeSlots(ctx context.Context, employeeID string) {
	if s.cachePort == nil || !s.cfg.Cache.Enabled {
		return
	}
	s.cachePort.InvalidateEmployee(ctx, employeeID)
}

func (s *ScheduleService) InvalidateAllSlots(ctx context.Context) {
	if s.cachePort == nil || !s.cfg.Cache.Enabled {
		return
	}
	s.cachePort.InvalidateAll(ctx)
}
