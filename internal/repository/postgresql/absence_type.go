package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/pkg/database"
)

type absenceTypeRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceTypeRepository(db *database.DB) absence.AbsenceTypeRepository {
	return &absenceTypeRepositoryImpl{db: db}
}

// Create implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) Create(ctx context.Context, label string) (absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_types (id, label, created_at)
		VALUES (gen_random_uuid(), $1, NOW())
		RETURNING id, label, created_at
	`

	var result absence.AbsenceType
	if err := q.QueryRow(ctx, query, label).Scan(&result.ID, &result.Label, &result.CreatedAt); err != nil {
		return absence.AbsenceType{}, fmt.Errorf("failed to create absence type: %w", err)
	}

	return result, nil
}

// GetByID implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) GetByID(ctx context.Context, id string) (absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	var result absence.AbsenceType
	err := q.QueryRow(ctx, `SELECT id, label, created_at FROM absence_types WHERE id = $1`, id).
		Scan(&result.ID, &result.Label, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
		}
		return absence.AbsenceType{}, fmt.Errorf("failed to get absence type: %w", err)
	}

	return result, nil
}

// List implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) List(ctx context.Context) ([]absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, label, created_at FROM absence_types ORDER BY label ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get absence types: %w", err)
	}
	defer rows.Close()

	var types []absence.AbsenceType
	for rows.Next() {
		var a absence.AbsenceType
		if err := rows.Scan(&a.ID, &a.Label, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan absence type: %w", err)
		}
		types = append(types, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return types, nil
}

// Update implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) Update(ctx context.Context, id string, label string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE absence_types SET label = $1 WHERE id = $2`, label, id)
	if err != nil {
		return fmt.Errorf("failed to update absence type: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return absence.ErrAbsenceTypeNotFound
	}

	return nil
}

// Delete implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM absence_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete absence type: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return absence.ErrAbsenceTypeNotFound
	}

	return nil
}
