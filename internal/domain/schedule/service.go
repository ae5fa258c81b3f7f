package schedule

import (
	"context"
	"time"
)

type ScheduleService interface {
	ListRange(ctx context.Context, filter ScheduleFilter) ([]ScheduleResponse, error)
	Upsert(ctx context.Context, req UpsertScheduleRequest) (ScheduleResponse, error)
	// Delete reverts the cell to its default state.
	Delete(ctx context.Context, employeeID string, date time.Time) error
}
