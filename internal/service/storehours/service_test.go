package storehours

import (
	"context"
	"testing"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lyonID = "9d4b6b52-7c1e-4f7a-9a39-5c2d8e7f0a11"

type hoursKey struct {
	store string
	date  time.Time
}

// memoryStoreHoursRepo mimics the (store_id, date) upsert of the SQL repository.
type memoryStoreHoursRepo struct {
	rows map[hoursKey]storehours.StoreHours
}

func newMemoryRepo() *memoryStoreHoursRepo {
	return &memoryStoreHoursRepo{rows: map[hoursKey]storehours.StoreHours{}}
}

func keyOf(date time.Time, storeID *string) hoursKey {
	k := hoursKey{date: calendar.Day(date)}
	if storeID != nil {
		k.store = *storeID
	}
	return k
}

func (r *memoryStoreHoursRepo) GetRange(_ context.Context, start, end time.Time) ([]storehours.StoreHours, error) {
	var out []storehours.StoreHours
	for _, h := range r.rows {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *memoryStoreHoursRepo) Upsert(_ context.Context, h storehours.StoreHours) (storehours.StoreHours, error) {
	if h.IsClosed {
		h.TimeSlotID = nil
	}
	h.ID = "id-" + calendar.FormatDate(h.Date)
	r.rows[keyOf(h.Date, h.StoreID)] = h
	return h, nil
}

func (r *memoryStoreHoursRepo) Delete(_ context.Context, date time.Time, storeID *string) error {
	delete(r.rows, keyOf(date, storeID))
	return nil
}

func (r *memoryStoreHoursRepo) DeleteRange(context.Context, time.Time, time.Time) error {
	return nil
}

func (r *memoryStoreHoursRepo) InsertBatch(_ context.Context, hours []storehours.StoreHours) ([]storehours.StoreHours, error) {
	return hours, nil
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestStoreHoursService_UpsertThenRead(t *testing.T) {
	ctx := context.Background()
	svc := NewStoreHoursService(newMemoryRepo())

	_, err := svc.Upsert(ctx, storehours.UpsertStoreHoursRequest{Date: "2024-01-03", TimeSlotID: strPtr("10:00-18:00")})
	require.NoError(t, err)

	got, err := svc.GetRange(ctx, storehours.StoreHoursFilter{StartDate: "2024-01-01", EndDate: "2024-01-07"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-03", got[0].Date)
	assert.False(t, got[0].IsClosed)
	require.NotNil(t, got[0].TimeSlotID)
	assert.Equal(t, "10:00-18:00", *got[0].TimeSlotID)
}

func TestStoreHoursService_ClosedClearsSlot(t *testing.T) {
	ctx := context.Background()
	svc := NewStoreHoursService(newMemoryRepo())

	_, err := svc.Upsert(ctx, storehours.UpsertStoreHoursRequest{Date: "2024-01-03", TimeSlotID: strPtr("10:00-18:00")})
	require.NoError(t, err)
	saved, err := svc.Upsert(ctx, storehours.UpsertStoreHoursRequest{
		Date:       "2024-01-03",
		IsClosed:   boolPtr(true),
		TimeSlotID: strPtr("10:00-18:00"),
	})
	require.NoError(t, err)
	assert.True(t, saved.IsClosed)
	assert.Nil(t, saved.TimeSlotID)

	got, err := svc.GetRange(ctx, storehours.StoreHoursFilter{StartDate: "2024-01-03", EndDate: "2024-01-03"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsClosed)
	assert.Nil(t, got[0].TimeSlotID)
}

func TestStoreHoursService_CompositeValue(t *testing.T) {
	ctx := context.Background()
	svc := NewStoreHoursService(newMemoryRepo())

	saved, err := svc.Upsert(ctx, storehours.UpsertStoreHoursRequest{Date: "2024-01-04", Value: strPtr("08:30:19:00")})
	require.NoError(t, err)
	require.NotNil(t, saved.TimeSlotID)
	assert.Equal(t, "08:30-19:00", *saved.TimeSlotID)
}

func TestStoreHoursService_StoreRowWinsOverGlobal(t *testing.T) {
	ctx := context.Background()
	svc := NewStoreHoursService(newMemoryRepo())

	_, err := svc.Upsert(ctx, storehours.UpsertStoreHoursRequest{Date: "2024-01-05", IsClosed: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, storehours.UpsertStoreHoursRequest{Date: "2024-01-05", StoreID: strPtr(lyonID), Value: strPtr("12:00-16:00")})
	require.NoError(t, err)

	global, err := svc.GetRange(ctx, storehours.StoreHoursFilter{StartDate: "2024-01-05", EndDate: "2024-01-05"})
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.True(t, global[0].IsClosed)

	scoped, err := svc.GetRange(ctx, storehours.StoreHoursFilter{StartDate: "2024-01-05", EndDate: "2024-01-05", StoreID: strPtr(lyonID)})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.False(t, scoped[0].IsClosed)
}

func TestStoreHoursService_DeleteMissingIsNoop(t *testing.T) {
	svc := NewStoreHoursService(newMemoryRepo())

	date, _ := calendar.ParseDate("2024-01-03")
	assert.NoError(t, svc.Delete(context.Background(), date, nil))
}

func TestStoreHoursService_OpenWithoutSlotIsRejected(t *testing.T) {
	svc := NewStoreHoursService(newMemoryRepo())

	_, err := svc.Upsert(context.Background(), storehours.UpsertStoreHoursRequest{Date: "2024-01-03", IsClosed: boolPtr(false)})
	assert.Error(t, err)
}
