package postgresql_test

import (
	"context"
	"testing"

	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreHoursRepository_UpsertRoundTrip(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStoreHoursRepository(setup.DB)

	date, err := calendar.ParseDate("2024-03-05")
	require.NoError(t, err)
	slot := "10:00-18:00"

	_, err = repo.Upsert(ctx, storehours.StoreHours{Date: date, TimeSlotID: &slot})
	require.NoError(t, err)

	// closing the same date replaces the row and clears the slot
	closed, err := repo.Upsert(ctx, storehours.StoreHours{Date: date, IsClosed: true, TimeSlotID: &slot})
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)
	assert.Nil(t, closed.TimeSlotID)

	rows, err := repo.GetRange(ctx, date, date)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-05", calendar.FormatDate(rows[0].Date))
	assert.True(t, rows[0].IsClosed)

	require.NoError(t, repo.Delete(ctx, date, nil))
	require.NoError(t, repo.Delete(ctx, date, nil))

	rows, err = repo.GetRange(ctx, date, date)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStoreHoursRepository_ScopesAreIndependent(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStoreHoursRepository(setup.DB)

	s, err := postgresql.NewStoreRepository(setup.DB).Create(ctx, store.Store{Name: "Centre"})
	require.NoError(t, err)

	date, err := calendar.ParseDate("2024-03-06")
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, storehours.StoreHours{Date: date, IsClosed: true})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, storehours.StoreHours{StoreID: &s.ID, Date: date, IsClosed: true})
	require.NoError(t, err)

	rows, err := repo.GetRange(ctx, date, date)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, repo.Delete(ctx, date, &s.ID))
	rows, err = repo.GetRange(ctx, date, date)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].StoreID)
}
