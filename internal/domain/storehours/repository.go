package storehours

import (
	"context"
	"time"
)

type StoreHoursRepository interface {
	// GetRange returns every override (all scopes) with a date in [start, end].
	GetRange(ctx context.Context, start, end time.Time) ([]StoreHours, error)
	// Upsert inserts or replaces the override keyed by (store_id, date).
	Upsert(ctx context.Context, hours StoreHours) (StoreHours, error)
	// Delete removes the override of a date; a missing row is not an error.
	Delete(ctx context.Context, date time.Time, storeID *string) error
	DeleteRange(ctx context.Context, start, end time.Time) error
	InsertBatch(ctx context.Context, hours []StoreHours) ([]StoreHours, error)
}
