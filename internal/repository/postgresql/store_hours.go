package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/pkg/database"
)

type storeHoursRepositoryImpl struct {
	db *database.DB
}

func NewStoreHoursRepository(db *database.DB) storehours.StoreHoursRepository {
	return &storeHoursRepositoryImpl{db: db}
}

const storeHoursColumns = `id, store_id, date, is_closed, time_slot_id, created_at`

func scanStoreHours(row pgx.Row) (storehours.StoreHours, error) {
	var h storehours.StoreHours
	err := row.Scan(
		&h.ID,
		&h.StoreID,
		&h.Date,
		&h.IsClosed,
		&h.TimeSlotID,
		&h.CreatedAt,
	)
	return h, err
}

func collectStoreHours(rows pgx.Rows) ([]storehours.StoreHours, error) {
	defer rows.Close()

	var result []storehours.StoreHours
	for rows.Next() {
		h, err := scanStoreHours(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store hours: %w", err)
		}
		result = append(result, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetRange implements storehours.StoreHoursRepository.
func (r *storeHoursRepositoryImpl) GetRange(ctx context.Context, start, end time.Time) ([]storehours.StoreHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + storeHoursColumns + `
		FROM store_hours
		WHERE date BETWEEN $1 AND $2
		ORDER BY date ASC, store_id ASC NULLS FIRST
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get store hours: %w", err)
	}

	return collectStoreHours(rows)
}

// Upsert implements storehours.StoreHoursRepository.
func (r *storeHoursRepositoryImpl) Upsert(ctx context.Context, h storehours.StoreHours) (storehours.StoreHours, error) {
	q := GetQuerier(ctx, r.db)

	slotID := h.TimeSlotID
	if h.IsClosed {
		slotID = nil
	}

	query := `
		INSERT INTO store_hours (id, store_id, date, is_closed, time_slot_id, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW())
		ON CONFLICT ON CONSTRAINT store_hours_store_date_key DO UPDATE SET
			is_closed = EXCLUDED.is_closed,
			time_slot_id = EXCLUDED.time_slot_id
		RETURNING ` + storeHoursColumns

	saved, err := scanStoreHours(q.QueryRow(ctx, query, h.StoreID, h.Date, h.IsClosed, slotID))
	if err != nil {
		return storehours.StoreHours{}, fmt.Errorf("failed to upsert store hours: %w", err)
	}

	return saved, nil
}

// Delete implements storehours.StoreHoursRepository.
func (r *storeHoursRepositoryImpl) Delete(ctx context.Context, date time.Time, storeID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM store_hours WHERE date = $1 AND store_id IS NOT DISTINCT FROM $2::uuid`
	if _, err := q.Exec(ctx, query, date, storeID); err != nil {
		return fmt.Errorf("failed to delete store hours: %w", err)
	}

	return nil
}

// DeleteRange implements storehours.StoreHoursRepository. Every scope is removed.
func (r *storeHoursRepositoryImpl) DeleteRange(ctx context.Context, start, end time.Time) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM store_hours WHERE date BETWEEN $1 AND $2`, start, end); err != nil {
		return fmt.Errorf("failed to delete store hours: %w", err)
	}

	return nil
}

// InsertBatch implements storehours.StoreHoursRepository.
func (r *storeHoursRepositoryImpl) InsertBatch(ctx context.Context, hours []storehours.StoreHours) ([]storehours.StoreHours, error) {
	if len(hours) == 0 {
		return []storehours.StoreHours{}, nil
	}

	q := GetQuerier(ctx, r.db)

	var (
		storeIDs = make([]*string, len(hours))
		dates    = make([]time.Time, len(hours))
		closed   = make([]bool, len(hours))
		slotIDs  = make([]*string, len(hours))
	)
	for i, h := range hours {
		storeIDs[i] = h.StoreID
		dates[i] = h.Date
		closed[i] = h.IsClosed
		if !h.IsClosed {
			slotIDs[i] = h.TimeSlotID
		}
	}

	query := `
		INSERT INTO store_hours (store_id, date, is_closed, time_slot_id)
		SELECT * FROM unnest($1::uuid[], $2::date[], $3::boolean[], $4::text[])
		RETURNING ` + storeHoursColumns

	rows, err := q.Query(ctx, query, storeIDs, dates, closed, slotIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert store hours: %w", err)
	}

	return collectStoreHours(rows)
}
