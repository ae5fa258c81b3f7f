package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/pkg/database"
)

type storeRepositoryImpl struct {
	db *database.DB
}

func NewStoreRepository(db *database.DB) store.StoreRepository {
	return &storeRepositoryImpl{db: db}
}

// Create implements store.StoreRepository.
func (r *storeRepositoryImpl) Create(ctx context.Context, s store.Store) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO stores (id, name, address, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		RETURNING id, name, address, created_at, updated_at
	`

	var result store.Store
	err := q.QueryRow(ctx, query, s.Name, s.Address).Scan(
		&result.ID,
		&result.Name,
		&result.Address,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return store.Store{}, fmt.Errorf("failed to create store: %w", err)
	}

	return result, nil
}

// GetByID implements store.StoreRepository.
func (r *storeRepositoryImpl) GetByID(ctx context.Context, id string) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var result store.Store
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.Address,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store: %w", err)
	}

	return result, nil
}

// List implements store.StoreRepository.
func (r *storeRepositoryImpl) List(ctx context.Context) ([]store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM stores
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get stores: %w", err)
	}
	defer rows.Close()

	var stores []store.Store
	for rows.Next() {
		var s store.Store
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Address,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return stores, nil
}

// Update implements store.StoreRepository.
func (r *storeRepositoryImpl) Update(ctx context.Context, req store.UpdateStoreRequest) error {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE stores SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *req.Name)
		argIdx++
	}

	if req.Address != nil {
		query += fmt.Sprintf(", address = $%d", argIdx)
		args = append(args, *req.Address)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return store.ErrStoreNotFound
	}

	return nil
}

// Delete implements store.StoreRepository. Employees of the store keep a NULL store.
func (r *storeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return store.ErrStoreNotFound
	}

	return nil
}
