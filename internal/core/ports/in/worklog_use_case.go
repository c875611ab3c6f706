package in

import (
	"context"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
)

type WorkLogUseCase interface {
	// One employee-date merged into a single chronological timeline
	AggregateDay(ctx context.Context, employeeID string, date time.Time) (*domain.WorkLogDay, error)

	// Fold of a contiguous date range into period totals
	Summarize(ctx context.Context, employeeID string, period domain.SummaryPeriod, start, end *time.Time) (*domain.WorkLogSummary, error)
}
