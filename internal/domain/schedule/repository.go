package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	// GetRange returns schedules with a date in [start, end].
	GetRange(ctx context.Context, start, end time.Time) ([]Schedule, error)
	// Upsert inserts or replaces the schedule keyed by (employee_id, date).
	Upsert(ctx context.Context, s Schedule) (Schedule, error)
	// Delete removes one cell; a missing row is not an error.
	Delete(ctx context.Context, employeeID string, date time.Time) error
	DeleteRange(ctx context.Context, start, end time.Time) error
	InsertBatch(ctx context.Context, schedules []Schedule) ([]Schedule, error)
}
