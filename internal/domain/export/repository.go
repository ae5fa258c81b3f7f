package export

import (
	"context"
	"time"
)

type ExportRepository interface {
	Create(ctx context.Context, e Export) (Export, error)
	// ListOlderThan returns exports created before the cutoff, oldest first.
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]Export, error)
	Delete(ctx context.Context, id string) error
}
