package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{scheduleRepo: scheduleRepo}
}

// ListRange implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListRange(ctx context.Context, filter schedule.ScheduleFilter) ([]schedule.ScheduleResponse, error) {
	start, end, err := filter.Parse()
	if err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.GetRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		if !schedules[i].Date.Equal(schedules[j].Date) {
			return schedules[i].Date.Before(schedules[j].Date)
		}
		return schedules[i].EmployeeID < schedules[j].EmployeeID
	})

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		responses = append(responses, schedule.NewScheduleResponse(sc))
	}
	return responses, nil
}

// Upsert implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Upsert(ctx context.Context, req schedule.UpsertScheduleRequest) (schedule.ScheduleResponse, error) {
	entity, err := req.ToEntity()
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	saved, err := s.scheduleRepo.Upsert(ctx, entity)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to save schedule: %w", err)
	}

	slog.Debug("Schedule saved",
		"employee_id", saved.EmployeeID,
		"date", calendar.FormatDate(saved.Date),
		"is_present", saved.IsPresent,
	)

	return schedule.NewScheduleResponse(saved), nil
}

// Delete implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	if !validator.IsValidUUID(employeeID) {
		var errs validator.ValidationErrors
		errs.Add("employee_id", "employee_id must be a valid UUID")
		return errs
	}

	if err := s.scheduleRepo.Delete(ctx, employeeID, calendar.Day(date)); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
