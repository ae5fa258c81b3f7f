package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/export"
	"github.com/storeplan/planning-backend-go/internal/pkg/database"
)

type exportRepositoryImpl struct {
	db *database.DB
}

func NewExportRepository(db *database.DB) export.ExportRepository {
	return &exportRepositoryImpl{db: db}
}

// Create implements export.ExportRepository.
func (r *exportRepositoryImpl) Create(ctx context.Context, e export.Export) (export.Export, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO exports (id, kind, store_id, period_start, period_end, path, size_bytes, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, e.Kind, e.StoreID, e.PeriodStart, e.PeriodEnd, e.Path, e.SizeBytes).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return export.Export{}, fmt.Errorf("failed to create export: %w", err)
	}

	return e, nil
}

// ListOlderThan implements export.ExportRepository.
func (r *exportRepositoryImpl) ListOlderThan(ctx context.Context, cutoff time.Time) ([]export.Export, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, kind, store_id, period_start, period_end, path, size_bytes, created_at
		FROM exports
		WHERE created_at < $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var exports []export.Export
	for rows.Next() {
		var e export.Export
		err := rows.Scan(
			&e.ID,
			&e.Kind,
			&e.StoreID,
			&e.PeriodStart,
			&e.PeriodEnd,
			&e.Path,
			&e.SizeBytes,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return exports, nil
}

// Delete implements export.ExportRepository.
func (r *exportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM exports WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}

	return nil
}
