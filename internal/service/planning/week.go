package planning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
)

// ==================== WEEK OPERATIONS ====================

// CopyWeek replaces the target week with a date-shifted copy of the source week.
// Reads, deletes and inserts share one transaction, so the target week is left
// untouched when any stage fails. Copying a week onto itself keeps its content.
func (s *PlanningServiceImpl) CopyWeek(ctx context.Context, req planning.CopyWeekRequest) (planning.CopyWeekResponse, error) {
	source, target, err := req.Parse()
	if err != nil {
		return planning.CopyWeekResponse{}, err
	}

	var (
		schedules []schedule.Schedule
		hours     []storehours.StoreHours
	)
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		schedules, hours, err = s.copyWeek(ctx, source, target)
		return err
	})
	if err != nil {
		slog.Error("Week copy failed",
			"source_monday", calendar.FormatDate(source),
			"target_monday", calendar.FormatDate(target),
			"error", err,
		)
		return planning.CopyWeekResponse{}, err
	}

	slog.Info("Week copied",
		"source_monday", calendar.FormatDate(source),
		"target_monday", calendar.FormatDate(target),
		"schedules", len(schedules),
		"store_hours", len(hours),
	)

	resp := planning.CopyWeekResponse{
		SourceMonday: calendar.FormatDate(source),
		TargetMonday: calendar.FormatDate(target),
		Schedules:    make([]planning.ScheduleCopy, 0, len(schedules)),
		StoreHours:   make([]planning.StoreHoursCopy, 0, len(hours)),
	}
	for _, sc := range schedules {
		resp.Schedules = append(resp.Schedules, planning.ScheduleCopy{
			ID:            sc.ID,
			EmployeeID:    sc.EmployeeID,
			Date:          calendar.FormatDate(sc.Date),
			IsPresent:     sc.IsPresent,
			TimeSlotID:    sc.TimeSlotID,
			AbsenceTypeID: sc.AbsenceTypeID,
		})
	}
	for _, h := range hours {
		resp.StoreHours = append(resp.StoreHours, planning.StoreHoursCopy{
			ID:         h.ID,
			StoreID:    h.StoreID,
			Date:       calendar.FormatDate(h.Date),
			IsClosed:   h.IsClosed,
			TimeSlotID: h.TimeSlotID,
		})
	}
	return resp, nil
}

func (s *PlanningServiceImpl) copyWeek(ctx context.Context, source, target time.Time) ([]schedule.Schedule, []storehours.StoreHours, error) {
	sourceEnd := source.AddDate(0, 0, 6)
	targetEnd := target.AddDate(0, 0, 6)
	offset := calendar.DaysBetween(source, target)

	sourceSchedules, err := s.repos.Schedules.GetRange(ctx, source, sourceEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("read source schedules: %w", err)
	}
	sourceHours, err := s.repos.StoreHours.GetRange(ctx, source, sourceEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("read source store hours: %w", err)
	}

	schedules := make([]schedule.Schedule, 0, len(sourceSchedules))
	for _, sc := range sourceSchedules {
		schedules = append(schedules, schedule.Schedule{
			EmployeeID:    sc.EmployeeID,
			Date:          calendar.Day(sc.Date).AddDate(0, 0, offset),
			IsPresent:     sc.IsPresent,
			TimeSlotID:    sc.TimeSlotID,
			AbsenceTypeID: sc.AbsenceTypeID,
		})
	}
	hours := make([]storehours.StoreHours, 0, len(sourceHours))
	for _, h := range sourceHours {
		hours = append(hours, storehours.StoreHours{
			StoreID:    h.StoreID,
			Date:       calendar.Day(h.Date).AddDate(0, 0, offset),
			IsClosed:   h.IsClosed,
			TimeSlotID: h.TimeSlotID,
		})
	}

	if err := s.repos.Schedules.DeleteRange(ctx, target, targetEnd); err != nil {
		return nil, nil, fmt.Errorf("delete target schedules: %w", err)
	}
	if err := s.repos.StoreHours.DeleteRange(ctx, target, targetEnd); err != nil {
		return nil, nil, fmt.Errorf("delete target store hours: %w", err)
	}

	insertedSchedules, err := s.repos.Schedules.InsertBatch(ctx, schedules)
	if err != nil {
		return nil, nil, fmt.Errorf("insert target schedules: %w", err)
	}
	insertedHours, err := s.repos.StoreHours.InsertBatch(ctx, hours)
	if err != nil {
		return nil, nil, fmt.Errorf("insert target store hours: %w", err)
	}

	return insertedSchedules, insertedHours, nil
}

// DeleteWeek removes every schedule and store-hours override of the week starting on monday.
func (s *PlanningServiceImpl) DeleteWeek(ctx context.Context, monday time.Time) error {
	monday = calendar.Day(monday)
	if !calendar.IsMonday(monday) {
		return planning.ErrNotMonday
	}
	sunday := monday.AddDate(0, 0, 6)

	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repos.Schedules.DeleteRange(ctx, monday, sunday); err != nil {
			return fmt.Errorf("delete schedules: %w", err)
		}
		if err := s.repos.StoreHours.DeleteRange(ctx, monday, sunday); err != nil {
			return fmt.Errorf("delete store hours: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Week deleted", "monday", calendar.FormatDate(monday))
	return nil
}
