package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/database"
)

type timeSlotRepositoryImpl struct {
	db *database.DB
}

func NewTimeSlotRepository(db *database.DB) timeslot.TimeSlotRepository {
	return &timeSlotRepositoryImpl{db: db}
}

const timeSlotColumns = `id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), created_at`

func scanTimeSlot(row pgx.Row) (timeslot.TimeSlot, error) {
	var (
		t          timeslot.TimeSlot
		start, end string
	)
	if err := row.Scan(&t.ID, &start, &end, &t.CreatedAt); err != nil {
		return timeslot.TimeSlot{}, err
	}

	var err error
	if t.Start, err = calendar.ParseClockTime(start); err != nil {
		return timeslot.TimeSlot{}, fmt.Errorf("time slot %s start %q: %w", t.ID, start, err)
	}
	if t.End, err = calendar.ParseClockTime(end); err != nil {
		return timeslot.TimeSlot{}, fmt.Errorf("time slot %s end %q: %w", t.ID, end, err)
	}
	return t, nil
}

// Create implements timeslot.TimeSlotRepository.
func (r *timeSlotRepositoryImpl) Create(ctx context.Context, slot timeslot.TimeSlot) (timeslot.TimeSlot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_slots (id, start_time, end_time, created_at)
		VALUES (gen_random_uuid(), $1::time, $2::time, NOW())
		RETURNING ` + timeSlotColumns

	created, err := scanTimeSlot(q.QueryRow(ctx, query, slot.Start.String(), slot.End.String()))
	if err != nil {
		return timeslot.TimeSlot{}, fmt.Errorf("failed to create time slot: %w", err)
	}

	return created, nil
}

// GetByID implements timeslot.TimeSlotRepository.
func (r *timeSlotRepositoryImpl) GetByID(ctx context.Context, id string) (timeslot.TimeSlot, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeSlotColumns + ` FROM time_slots WHERE id = $1`

	slot, err := scanTimeSlot(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeslot.TimeSlot{}, timeslot.ErrTimeSlotNotFound
		}
		return timeslot.TimeSlot{}, fmt.Errorf("failed to get time slot: %w", err)
	}

	return slot, nil
}

// List implements timeslot.TimeSlotRepository. Slots come back ordered by start, then shorter first.
func (r *timeSlotRepositoryImpl) List(ctx context.Context) ([]timeslot.TimeSlot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeSlotColumns + `
		FROM time_slots
		ORDER BY start_time ASC, (end_time - start_time) ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get time slots: %w", err)
	}
	defer rows.Close()

	var slots []timeslot.TimeSlot
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	timeslot.Sort(slots)
	return slots, nil
}

// Update implements timeslot.TimeSlotRepository.
func (r *timeSlotRepositoryImpl) Update(ctx context.Context, slot timeslot.TimeSlot) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE time_slots SET start_time = $1::time, end_time = $2::time WHERE id = $3`,
		slot.Start.String(), slot.End.String(), slot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time slot: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return timeslot.ErrTimeSlotNotFound
	}

	return nil
}

// Delete implements timeslot.TimeSlotRepository. Schedules referencing the slot are kept.
func (r *timeSlotRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time slot: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return timeslot.ErrTimeSlotNotFound
	}

	return nil
}
