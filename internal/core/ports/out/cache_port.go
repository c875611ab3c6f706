package out

import (
	"context"
	"fmt"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
)

// SlotCacheKey identifies one generated slot sequence. Slot output is a pure
// function of these inputs plus the remote data observed at call time.
type SlotCacheKey struct {
	EmployeeID      string
	Date            string
	DurationMinutes int
	ServiceID       string
}

func NewSlotCacheKey(employeeID string, date time.Time, durationMinutes int, serviceID string) SlotCacheKey {
	return SlotCacheKey{
		EmployeeID:      employeeID,
		Date:            date.Format("2006-01-02"),
		DurationMinutes: durationMinutes,
		ServiceID:       serviceID,
	}
}

func (k SlotCacheKey) String() string {
	return fmt.Sprintf("%s|%s|%d|%s", k.EmployeeID, k.Date, k.DurationMinutes, k.ServiceID)
}

type CachePort interface {
	GetSlots(ctx context.Context, key SlotCacheKey) ([]domain.TimeSlot, bool)
	StoreSlots(ctx context.Context, key SlotCacheKey, slots []domain.TimeSlot)
	InvalidateEmployee(ctx context.Context, employeeID string)
	InvalidateAll(ctx context.Context)
}
