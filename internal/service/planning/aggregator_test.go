package planning

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "A1"
	bob   = "B1"
	day9  = "T1"
	lyon  = "S1"
)

func assertHours(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestAggregator_ClosureOverrideWinsInWeeklyTotal(t *testing.T) {
	agg := NewAggregator(AggregatorInput{
		TimeSlots: []timeslot.TimeSlot{slot(day9, "09:00", "17:00")},
		Schedules: []schedule.Schedule{
			present(alice, "2024-01-02", day9),
			present(alice, "2024-01-03", day9),
		},
		StoreHours: []storehours.StoreHours{{Date: day("2024-01-03"), IsClosed: true}},
	})

	week := calendar.WeekDates(day("2024-01-01"))
	assertHours(t, "8", agg.WeeklyTotal(alice, week))
	assert.True(t, agg.IsStoreClosed(day("2024-01-03")))

	cell := agg.CellView(alice, day("2024-01-03"))
	assert.True(t, cell.StoreClosed)
	assertHours(t, "0", cell.Hours)
}

func TestAggregator_DefaultHoursClosedOnlyOnSunday(t *testing.T) {
	agg := NewAggregator(AggregatorInput{})

	for _, d := range calendar.WeekDates(day("2024-01-01")) {
		assert.Equal(t, d.Weekday() == time.Sunday, agg.IsStoreClosed(d), calendar.FormatDate(d))
	}

	sat := agg.DayHours(day("2024-01-06"))
	assert.Equal(t, "09:00:20:30", sat.Value)
	assert.Equal(t, "09:00 - 20:30", sat.Label)
	assert.Equal(t, "default", sat.Source)
	require.NotNil(t, sat.TimeSlotID)
	assert.Equal(t, "09:00-20:30", *sat.TimeSlotID)

	sun := agg.DayHours(day("2024-01-07"))
	assert.True(t, sun.IsClosed)
	assert.Equal(t, "closed", sun.Value)
}

func TestAggregator_MissingCellIsPresentUnscheduled(t *testing.T) {
	agg := NewAggregator(AggregatorInput{TimeSlots: []timeslot.TimeSlot{slot(day9, "09:00", "17:00")}})

	cell := agg.CellFor(alice, day("2024-01-01"))
	assert.True(t, cell.IsPresent)
	assert.Nil(t, cell.TimeSlotID)
	assert.Nil(t, cell.AbsenceTypeID)
	assert.False(t, cell.Stored)
	assertHours(t, "0", agg.CellHours(alice, day("2024-01-01")))
}

func TestAggregator_AbsentCellShowsLabelAndCountsZero(t *testing.T) {
	agg := NewAggregator(AggregatorInput{
		TimeSlots:    []timeslot.TimeSlot{slot(day9, "09:00", "17:00")},
		AbsenceTypes: []absence.AbsenceType{{ID: "sick", Label: "Maladie"}},
		Schedules: []schedule.Schedule{{
			EmployeeID:    alice,
			Date:          day("2024-01-02"),
			IsPresent:     false,
			TimeSlotID:    ptr(day9),
			AbsenceTypeID: ptr("sick"),
		}},
	})

	view := agg.CellView(alice, day("2024-01-02"))
	assert.Equal(t, "Maladie", view.Label)
	assertHours(t, "0", view.Hours)
	assert.True(t, view.Stored)
}

func TestAggregator_DanglingReferencesRenderBlank(t *testing.T) {
	agg := NewAggregator(AggregatorInput{
		Schedules: []schedule.Schedule{
			present(alice, "2024-01-02", "deleted-slot"),
			{EmployeeID: bob, Date: day("2024-01-02"), AbsenceTypeID: ptr("deleted-type")},
		},
		StoreHours: []storehours.StoreHours{{Date: day("2024-01-03"), TimeSlotID: ptr("deleted-slot")}},
	})

	assert.Equal(t, "", agg.CellView(alice, day("2024-01-02")).Label)
	assertHours(t, "0", agg.CellHours(alice, day("2024-01-02")))
	assert.Equal(t, "", agg.CellView(bob, day("2024-01-02")).Label)

	hours := agg.DayHours(day("2024-01-03"))
	assert.False(t, hours.IsClosed)
	assert.Equal(t, "", hours.Value)
	assert.Equal(t, "override", hours.Source)
}

func TestAggregator_OverrideWithLiteralInterval(t *testing.T) {
	agg := NewAggregator(AggregatorInput{
		StoreHours: []storehours.StoreHours{{Date: day("2024-01-07"), TimeSlotID: ptr("10:00-13:00")}},
	})

	sunday := agg.DayHours(day("2024-01-07"))
	assert.False(t, sunday.IsClosed)
	assert.Equal(t, "10:00:13:00", sunday.Value)
}

func TestAggregator_StoreScopedOverride(t *testing.T) {
	records := []storehours.StoreHours{
		{Date: day("2024-01-02"), IsClosed: true},
		{Date: day("2024-01-02"), StoreID: ptr(lyon), TimeSlotID: ptr("09:00-12:00")},
	}

	global := NewAggregator(AggregatorInput{StoreHours: records})
	assert.True(t, global.IsStoreClosed(day("2024-01-02")))

	scoped := NewAggregator(AggregatorInput{StoreHours: records, StoreID: ptr(lyon)})
	assert.False(t, scoped.IsStoreClosed(day("2024-01-02")))

	other := NewAggregator(AggregatorInput{StoreHours: records, StoreID: ptr("S2")})
	assert.True(t, other.IsStoreClosed(day("2024-01-02")))
}

func TestAggregator_MonthlyTotalIgnoresDefaultClosures(t *testing.T) {
	input := AggregatorInput{
		TimeSlots: []timeslot.TimeSlot{slot(day9, "09:00", "17:00")},
		Schedules: []schedule.Schedule{
			present(alice, "2024-01-02", day9),
			present(alice, "2024-01-07", day9), // Sunday, closed by default
			present(alice, "2024-01-10", day9), // closed by override
			present(alice, "2024-02-01", day9), // next month
		},
		StoreHours: []storehours.StoreHours{{Date: day("2024-01-10"), IsClosed: true}},
	}

	agg := NewAggregator(input)
	assertHours(t, "16", agg.MonthlyTotal(alice, 2024, time.January))

	input.MonthlyDefaultClosures = true
	strict := NewAggregator(input)
	assertHours(t, "8", strict.MonthlyTotal(alice, 2024, time.January))
}

func TestAggregator_WeeklyTotalUsesTwoDecimalSlots(t *testing.T) {
	agg := NewAggregator(AggregatorInput{
		TimeSlots: []timeslot.TimeSlot{slot("short", "09:00", "09:20"), slot("long", "09:15", "17:45")},
		Schedules: []schedule.Schedule{
			present(alice, "2024-01-01", "short"),
			present(alice, "2024-01-02", "long"),
		},
	})

	assertHours(t, "8.83", agg.WeeklyTotal(alice, calendar.WeekDates(day("2024-01-03"))))
}
