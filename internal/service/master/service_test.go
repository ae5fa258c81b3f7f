package master

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/pkg/cache"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) error {
	data, ok := c.values[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

type fakeStoreRepo struct {
	stores    []store.Store
	listCalls int
}

func (r *fakeStoreRepo) Create(_ context.Context, s store.Store) (store.Store, error) {
	for _, existing := range r.stores {
		if existing.Name == s.Name {
			return store.Store{}, &pgconn.PgError{Code: "23505"}
		}
	}
	s.ID = "0b6f0e8e-5d0c-4a8e-9f3c-00000000000" + string(rune('1'+len(r.stores)))
	r.stores = append(r.stores, s)
	return s, nil
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id string) (store.Store, error) {
	for _, s := range r.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return store.Store{}, store.ErrStoreNotFound
}

func (r *fakeStoreRepo) List(context.Context) ([]store.Store, error) {
	r.listCalls++
	return append([]store.Store(nil), r.stores...), nil
}

func (r *fakeStoreRepo) Update(_ context.Context, req store.UpdateStoreRequest) error {
	for i, s := range r.stores {
		if s.ID == req.ID {
			if req.Name != nil {
				r.stores[i].Name = *req.Name
			}
			if req.Address != nil {
				r.stores[i].Address = req.Address
			}
			return nil
		}
	}
	return store.ErrStoreNotFound
}

func (r *fakeStoreRepo) Delete(_ context.Context, id string) error {
	for i, s := range r.stores {
		if s.ID == id {
			r.stores = append(r.stores[:i], r.stores[i+1:]...)
			return nil
		}
	}
	return store.ErrStoreNotFound
}

type fakeTimeSlotRepo struct {
	slots []timeslot.TimeSlot
}

func (r *fakeTimeSlotRepo) Create(_ context.Context, t timeslot.TimeSlot) (timeslot.TimeSlot, error) {
	t.ID = "slot"
	r.slots = append(r.slots, t)
	return t, nil
}

func (r *fakeTimeSlotRepo) GetByID(context.Context, string) (timeslot.TimeSlot, error) {
	return timeslot.TimeSlot{}, timeslot.ErrTimeSlotNotFound
}

func (r *fakeTimeSlotRepo) List(context.Context) ([]timeslot.TimeSlot, error) {
	return append([]timeslot.TimeSlot(nil), r.slots...), nil
}

func (r *fakeTimeSlotRepo) Update(context.Context, timeslot.TimeSlot) error { return nil }
func (r *fakeTimeSlotRepo) Delete(context.Context, string) error            { return nil }

type fakeAbsenceRepo struct{}

func (fakeAbsenceRepo) Create(_ context.Context, label string) (absence.AbsenceType, error) {
	return absence.AbsenceType{ID: "a", Label: label}, nil
}
func (fakeAbsenceRepo) GetByID(context.Context, string) (absence.AbsenceType, error) {
	return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
}
func (fakeAbsenceRepo) List(context.Context) ([]absence.AbsenceType, error) { return nil, nil }
func (fakeAbsenceRepo) Update(context.Context, string, string) error          { return nil }
func (fakeAbsenceRepo) Delete(context.Context, string) error                  { return nil }

func newTestService() (MasterService, *fakeStoreRepo, *fakeTimeSlotRepo, *memoryCache) {
	stores := &fakeStoreRepo{}
	slots := &fakeTimeSlotRepo{}
	c := newMemoryCache()
	return NewMasterService(stores, slots, fakeAbsenceRepo{}, c), stores, slots, c
}

func TestMasterService_ListStores_ServedFromCacheUntilMutation(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService()

	_, err := svc.CreateStore(ctx, store.CreateStoreRequest{Name: "Lyon"})
	require.NoError(t, err)

	first, err := svc.ListStores(ctx)
	require.NoError(t, err)
	second, err := svc.ListStores(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)

	_, err = svc.CreateStore(ctx, store.CreateStoreRequest{Name: "Paris"})
	require.NoError(t, err)

	third, err := svc.ListStores(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestMasterService_CreateStore_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	_, err := svc.CreateStore(ctx, store.CreateStoreRequest{Name: "Lyon"})
	require.NoError(t, err)

	_, err = svc.CreateStore(ctx, store.CreateStoreRequest{Name: "Lyon"})
	assert.ErrorIs(t, err, store.ErrStoreNameExists)
}

func TestMasterService_CreateStore_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateStore(context.Background(), store.CreateStoreRequest{Name: "  "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name", verrs[0].Field)
}

func TestMasterService_GetStore_InvalidID(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetStore(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestMasterService_ListTimeSlots_SortedByStart(t *testing.T) {
	ctx := context.Background()
	svc, _, slots, _ := newTestService()
	slots.slots = []timeslot.TimeSlot{
		{ID: "b", Start: calendar.MustClockTime("14:00"), End: calendar.MustClockTime("20:00")},
		{ID: "a", Start: calendar.MustClockTime("09:00"), End: calendar.MustClockTime("17:00")},
		{ID: "c", Start: calendar.MustClockTime("09:00"), End: calendar.MustClockTime("13:00")},
	}

	got, err := svc.ListTimeSlots(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
	assert.Equal(t, "09:00 - 13:00", got[0].Label)
}

func TestMasterService_CreateTimeSlot_RejectsReversedRange(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateTimeSlot(context.Background(), timeslot.TimeSlotRequest{StartTime: "17:00", EndTime: "09:00"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestMasterService_ListAbsenceTypes_EmptyIsNotNil(t *testing.T) {
	svc, _, _, _ := newTestService()

	got, err := svc.ListAbsenceTypes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
