package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = "5f0c2a1e-0000-4000-8000-000000000001"
	bobID   = "5f0c2a1e-0000-4000-8000-000000000002"
	slotID  = "5f0c2a1e-0000-4000-8000-0000000000f1"
	sickID  = "5f0c2a1e-0000-4000-8000-0000000000e1"
)

type memoryScheduleRepo struct {
	rows map[schedule.Key]schedule.Schedule
}

func (r *memoryScheduleRepo) GetRange(_ context.Context, start, end time.Time) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, s := range r.rows {
		if !s.Date.Before(start) && !s.Date.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryScheduleRepo) Upsert(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	s.ID = s.EmployeeID + "/" + calendar.FormatDate(s.Date)
	r.rows[s.Key()] = s
	return s, nil
}

func (r *memoryScheduleRepo) Delete(_ context.Context, employeeID string, date time.Time) error {
	delete(r.rows, schedule.Key{EmployeeID: employeeID, Date: date})
	return nil
}

func (r *memoryScheduleRepo) DeleteRange(context.Context, time.Time, time.Time) error { return nil }

func (r *memoryScheduleRepo) InsertBatch(_ context.Context, s []schedule.Schedule) ([]schedule.Schedule, error) {
	return s, nil
}

func strPtr(s string) *string { return &s }

func newService() (schedule.ScheduleService, *memoryScheduleRepo) {
	repo := &memoryScheduleRepo{rows: map[schedule.Key]schedule.Schedule{}}
	return NewScheduleService(repo), repo
}

func TestScheduleService_UpsertAbsentDropsSlot(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Upsert(context.Background(), schedule.UpsertScheduleRequest{
		EmployeeID:    aliceID,
		Date:          "2024-01-02",
		IsPresent:     false,
		TimeSlotID:    strPtr(slotID),
		AbsenceTypeID: strPtr(sickID),
	})
	require.NoError(t, err)
	assert.False(t, resp.IsPresent)
	assert.Nil(t, resp.TimeSlotID)
	require.NotNil(t, resp.AbsenceTypeID)
	assert.Equal(t, sickID, *resp.AbsenceTypeID)
}

func TestScheduleService_UpsertReplacesCell(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()

	_, err := svc.Upsert(ctx, schedule.UpsertScheduleRequest{EmployeeID: aliceID, Date: "2024-01-02", IsPresent: true, TimeSlotID: strPtr(slotID)})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, schedule.UpsertScheduleRequest{EmployeeID: aliceID, Date: "2024-01-02", IsPresent: false})
	require.NoError(t, err)

	assert.Len(t, repo.rows, 1)
}

func TestScheduleService_ListRange_OrderedByDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	for _, req := range []schedule.UpsertScheduleRequest{
		{EmployeeID: bobID, Date: "2024-01-03", IsPresent: true},
		{EmployeeID: aliceID, Date: "2024-01-03", IsPresent: true},
		{EmployeeID: aliceID, Date: "2024-01-01", IsPresent: true},
		{EmployeeID: aliceID, Date: "2024-01-09", IsPresent: true},
	} {
		_, err := svc.Upsert(ctx, req)
		require.NoError(t, err)
	}

	got, err := svc.ListRange(ctx, schedule.ScheduleFilter{StartDate: "2024-01-01", EndDate: "2024-01-07"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, aliceID, got[1].EmployeeID)
	assert.Equal(t, bobID, got[2].EmployeeID)
}

func TestScheduleService_ListRange_ReversedRange(t *testing.T) {
	svc, _ := newService()

	_, err := svc.ListRange(context.Background(), schedule.ScheduleFilter{StartDate: "2024-01-07", EndDate: "2024-01-01"})
	assert.ErrorIs(t, err, schedule.ErrInvalidDateRange)
}

func TestScheduleService_DeleteRevertsToDefault(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()

	_, err := svc.Upsert(ctx, schedule.UpsertScheduleRequest{EmployeeID: aliceID, Date: "2024-01-02", IsPresent: false})
	require.NoError(t, err)

	date, _ := calendar.ParseDate("2024-01-02")
	require.NoError(t, svc.Delete(ctx, aliceID, date))
	assert.Empty(t, repo.rows)

	// Deleting again is a no-op
	require.NoError(t, svc.Delete(ctx, aliceID, date))

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, svc.Delete(ctx, "alice", date), &verrs)
}
