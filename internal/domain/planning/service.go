package planning

import (
	"context"
	"time"
)

type PlanningService interface {
	GetWeek(ctx context.Context, query WeekQuery) (WeekView, error)
	GetMonthlyTotals(ctx context.Context, query MonthQuery) (MonthlyTotalsView, error)

	// CopyWeek replaces the target week with the source week's schedules and store hours.
	CopyWeek(ctx context.Context, req CopyWeekRequest) (CopyWeekResponse, error)
	DeleteWeek(ctx context.Context, monday time.Time) error

	ExportWeekPDF(ctx context.Context, query WeekQuery) (Document, error)
	ExportMonthPDF(ctx context.Context, query MonthQuery) (Document, error)

	SendWeekPlanning(ctx context.Context, req SendWeekRequest) ([]SendResult, error)
	SendMonthPlanning(ctx context.Context, req SendMonthRequest) ([]SendResult, error)
}
