package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

const scheduleColumns = `id, employee_id, date, is_present, time_slot_id, absence_type_id, created_at`

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var s schedule.Schedule
	err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.Date,
		&s.IsPresent,
		&s.TimeSlotID,
		&s.AbsenceTypeID,
		&s.CreatedAt,
	)
	return s, err
}

func collectSchedules(rows pgx.Rows) ([]schedule.Schedule, error) {
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return schedules, nil
}

// GetRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetRange(ctx context.Context, start, end time.Time) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE date BETWEEN $1 AND $2
		ORDER BY date ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}

	return collectSchedules(rows)
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (id, employee_id, date, is_present, time_slot_id, absence_type_id, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET
			is_present = EXCLUDED.is_present,
			time_slot_id = EXCLUDED.time_slot_id,
			absence_type_id = EXCLUDED.absence_type_id
		RETURNING ` + scheduleColumns

	saved, err := scanSchedule(q.QueryRow(ctx, query, s.EmployeeID, s.Date, s.IsPresent, s.TimeSlotID, s.AbsenceTypeID))
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	return saved, nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM schedules WHERE employee_id = $1 AND date = $2`, employeeID, date); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	return nil
}

// DeleteRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) DeleteRange(ctx context.Context, start, end time.Time) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM schedules WHERE date BETWEEN $1 AND $2`, start, end); err != nil {
		return fmt.Errorf("failed to delete schedules: %w", err)
	}

	return nil
}

// InsertBatch implements schedule.ScheduleRepository. Ids and creation times are assigned by the database.
func (r *scheduleRepositoryImpl) InsertBatch(ctx context.Context, schedules []schedule.Schedule) ([]schedule.Schedule, error) {
	if len(schedules) == 0 {
		return []schedule.Schedule{}, nil
	}

	q := GetQuerier(ctx, r.db)

	var (
		employeeIDs  = make([]string, len(schedules))
		dates        = make([]time.Time, len(schedules))
		present      = make([]bool, len(schedules))
		slotIDs      = make([]*string, len(schedules))
		absenceTypes = make([]*string, len(schedules))
	)
	for i, s := range schedules {
		employeeIDs[i] = s.EmployeeID
		dates[i] = s.Date
		present[i] = s.IsPresent
		slotIDs[i] = s.TimeSlotID
		absenceTypes[i] = s.AbsenceTypeID
	}

	query := `
		INSERT INTO schedules (employee_id, date, is_present, time_slot_id, absence_type_id)
		SELECT * FROM unnest($1::uuid[], $2::date[], $3::boolean[], $4::uuid[], $5::uuid[])
		RETURNING ` + scheduleColumns

	rows, err := q.Query(ctx, query, employeeIDs, dates, present, slotIDs, absenceTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert schedules: %w", err)
	}

	return collectSchedules(rows)
}
