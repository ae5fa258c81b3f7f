package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/export"
	"github.com/storeplan/planning-backend-go/internal/pkg/storage"
)

// ExportJobs removes archived planning PDFs once they are past retention.
type ExportJobs struct {
	exportRepo export.ExportRepository
	files      storage.FileStorage
	retention  time.Duration
	interval   time.Duration
	now        func() time.Time
}

func NewExportJobs(exportRepo export.ExportRepository, files storage.FileStorage, retention, interval time.Duration) *ExportJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExportJobs{
		exportRepo: exportRepo,
		files:      files,
		retention:  retention,
		interval:   interval,
		now:        time.Now,
	}
}

func (j *ExportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_exports", j.interval, j.PurgeExpiredExports)
}

// PurgeExpiredExports deletes the files of exports older than the retention period,
// then their records. A record whose file could not be deleted is kept for the next run.
func (j *ExportJobs) PurgeExpiredExports(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)

	expired, err := j.exportRepo.ListOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list expired exports: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	slog.Info("Cron: Purging expired planning exports", "count", len(expired), "cutoff", cutoff)

	purged, failed := 0, 0
	for _, e := range expired {
		if err := ctx.Err(); err != nil {
			return err
		}

		if j.files != nil {
			if err := j.files.Delete(ctx, e.Path); err != nil {
				slog.Error("Failed to delete export file", "export_id", e.ID, "path", e.Path, "error", err)
				failed++
				continue
			}
		}
		if err := j.exportRepo.Delete(ctx, e.ID); err != nil {
			slog.Error("Failed to delete export record", "export_id", e.ID, "error", err)
			failed++
			continue
		}
		purged++
	}

	slog.Info("Cron: Expired planning exports purged", "purged", purged, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("failed to purge %d of %d exports", failed, len(expired))
	}
	return nil
}
