package schedule_service

import (
	"sort"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/utils"
)

// annotateSlots overlays local availability rules on the normalized remote
// slots: a slot is unavailable when the remote already marked it so, when it
// intersects a blocking appointment, or when it lies in the past on the
// current date. Output is sorted ascending by start time.
func annotateSlots(slots []domain.TimeSlot, appointments []domain.Appointment, date, now time.Time) []domain.TimeSlot {
	annotated := make([]domain.TimeSlot, 0, len(slots))

	for _, slot := range slots {
		if !slot.Available && slot.Reason == "" {
			slot.Reason = domain.UnavailableReasonBooked
		}

		if slot.Available && utils.SameDay(date, now) && slot.StartTime.Before(now) {
			slot.Available = false
			slot.Reason = domain.UnavailableReasonPast
		}

		if slot.Available && overlapsBlocking(slot, appointments) {
			slot.Available = false
			slot.Reason = domain.UnavailableReasonBooked
		}

		annotated = append(annotated, slot)
	}

	sort.SliceStable(annotated, func(i, j int) bool {
		return annotated[i].StartTime.Before(annotated[j].StartTime)
	})

	return annotated
}

func overlapsBlocking(slot domain.TimeSlot, appointments []domain.Appointment) bool {
	for _, ap := range appointments {
		if ap.Blocks() && ap.Overlaps(slot.StartTime, slot.EndTime) {
			return true
		}
	}
	return false
}
