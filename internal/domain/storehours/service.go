package storehours

import (
	"context"
	"time"
)

type StoreHoursService interface {
	GetRange(ctx context.Context, filter StoreHoursFilter) ([]StoreHoursResponse, error)
	Upsert(ctx context.Context, req UpsertStoreHoursRequest) (StoreHoursResponse, error)
	Delete(ctx context.Context, date time.Time, storeID *string) error
}
