package storehours

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

type StoreHoursServiceImpl struct {
	storeHoursRepo storehours.StoreHoursRepository
}

func NewStoreHoursService(storeHoursRepo storehours.StoreHoursRepository) storehours.StoreHoursService {
	return &StoreHoursServiceImpl{storeHoursRepo: storeHoursRepo}
}

// GetRange returns the overrides in effect for the filter's scope, one per date.
// Without a store only global overrides are returned.
func (s *StoreHoursServiceImpl) GetRange(ctx context.Context, filter storehours.StoreHoursFilter) ([]storehours.StoreHoursResponse, error) {
	start, end, err := filter.Parse()
	if err != nil {
		return nil, err
	}

	records, err := s.storeHoursRepo.GetRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDate := storehours.InScope(records, filter.StoreID)
	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	responses := make([]storehours.StoreHoursResponse, 0, len(dates))
	for _, d := range dates {
		responses = append(responses, storehours.NewStoreHoursResponse(byDate[d]))
	}
	return responses, nil
}

// Upsert implements storehours.StoreHoursService.
func (s *StoreHoursServiceImpl) Upsert(ctx context.Context, req storehours.UpsertStoreHoursRequest) (storehours.StoreHoursResponse, error) {
	entity, err := req.ToEntity()
	if err != nil {
		return storehours.StoreHoursResponse{}, err
	}

	saved, err := s.storeHoursRepo.Upsert(ctx, entity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return storehours.StoreHoursResponse{}, store.ErrStoreNotFound
		}
		return storehours.StoreHoursResponse{}, fmt.Errorf("failed to save store hours: %w", err)
	}

	slog.Info("Store hours override saved",
		"date", calendar.FormatDate(saved.Date),
		"store_id", saved.StoreID,
		"is_closed", saved.IsClosed,
	)

	return storehours.NewStoreHoursResponse(saved), nil
}

// Delete removes the override of a date. A date without override is left as is.
func (s *StoreHoursServiceImpl) Delete(ctx context.Context, date time.Time, storeID *string) error {
	if storeID != nil && !validator.IsValidUUID(*storeID) {
		var errs validator.ValidationErrors
		errs.Add("store_id", "store_id must be a valid UUID")
		return errs
	}

	if err := s.storeHoursRepo.Delete(ctx, calendar.Day(date), storeID); err != nil {
		return fmt.Errorf("failed to delete store hours: %w", err)
	}
	return nil
}
