package storehours

import (
	"testing"
	"time"

	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestStandardDefaultHours_ClosedOnlyOnSunday(t *testing.T) {
	defaults := StandardDefaultHours()
	start := mustDate(t, "2024-01-01")

	for i := 0; i < 28; i++ {
		d := start.AddDate(0, 0, i)
		eff := Resolve(nil, d, defaults, nil)

		assert.Equal(t, d.Weekday() == time.Sunday, eff.Closed, calendar.FormatDate(d))
		assert.Equal(t, SourceDefault, eff.Source)
	}
}

func TestStandardDefaultHours_Values(t *testing.T) {
	defaults := StandardDefaultHours()
	assert.Equal(t, "09:00-20:00", defaults.For(mustDate(t, "2024-01-03")).String())
	assert.Equal(t, "09:00-20:30", defaults.For(mustDate(t, "2024-01-06")).String())
	assert.Equal(t, "closed", defaults.For(mustDate(t, "2024-01-07")).String())
}

func TestDefaultHours_MissingWeekdayIsClosed(t *testing.T) {
	defaults := DefaultHours{time.Monday: Open("08:00", "12:00")}
	assert.True(t, defaults.For(mustDate(t, "2024-01-02")).Closed)
	assert.False(t, defaults.For(mustDate(t, "2024-01-01")).Closed)
}

func TestDefaultHours_WithOverrides(t *testing.T) {
	base := StandardDefaultHours()

	custom, err := base.WithOverrides(map[string]string{
		"Sunday":   "10:00-13:00",
		"saturday": "closed",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00-13:00", custom[time.Sunday].String())
	assert.True(t, custom[time.Saturday].Closed)
	assert.Equal(t, "09:00-20:00", custom[time.Monday].String())

	// the receiver is untouched
	assert.True(t, base[time.Sunday].Closed)

	_, err = base.WithOverrides(map[string]string{"funday": "closed"})
	assert.Error(t, err)
	_, err = base.WithOverrides(map[string]string{"monday": "nine to five"})
	assert.ErrorIs(t, err, ErrInvalidOpeningHours)
}

func TestParseOpeningHours(t *testing.T) {
	cases := []struct {
		in        string
		want      string
		composite string
	}{
		{"closed", "closed", "closed"},
		{"CLOSED", "closed", "closed"},
		{"09:00-20:00", "09:00-20:00", "09:00:20:00"},
		{"09:00:20:30", "09:00-20:30", "09:00:20:30"},
	}
	for _, c := range cases {
		got, err := ParseOpeningHours(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got.String())
		assert.Equal(t, c.composite, got.Composite())
	}

	for _, in := range []string{"", "open", "09:00", "9:00-20:00", "09:00:2000"} {
		_, err := ParseOpeningHours(in)
		assert.ErrorIs(t, err, ErrInvalidOpeningHours, in)
	}
}

func TestResolve_OverrideWins(t *testing.T) {
	defaults := StandardDefaultHours()
	monday := mustDate(t, "2024-01-01")

	closed := Resolve(&StoreHours{Date: monday, IsClosed: true}, monday, defaults, nil)
	assert.True(t, closed.Closed)
	assert.Nil(t, closed.Hours)
	assert.Equal(t, SourceOverride, closed.Source)

	// an open override on a default-closed Sunday
	sunday := mustDate(t, "2024-01-07")
	literal := "10:00-12:00"
	open := Resolve(&StoreHours{Date: sunday, TimeSlotID: &literal}, sunday, defaults, nil)
	assert.False(t, open.Closed)
	require.NotNil(t, open.Hours)
	assert.Equal(t, "10:00-12:00", open.Hours.String())
}

func TestResolve_SlotLookup(t *testing.T) {
	monday := mustDate(t, "2024-01-01")
	lookup := func(id string) (calendar.Interval, bool) {
		if id == "slot-1" {
			return calendar.Interval{Start: calendar.MustClockTime("07:00"), End: calendar.MustClockTime("15:00")}, true
		}
		return calendar.Interval{}, false
	}

	known := "slot-1"
	eff := Resolve(&StoreHours{Date: monday, TimeSlotID: &known}, monday, StandardDefaultHours(), lookup)
	require.NotNil(t, eff.Hours)
	assert.Equal(t, "07:00-15:00", eff.Hours.String())

	dangling := "slot-404"
	eff = Resolve(&StoreHours{Date: monday, TimeSlotID: &dangling}, monday, StandardDefaultHours(), lookup)
	assert.False(t, eff.Closed)
	assert.Nil(t, eff.Hours)
	_, ok := eff.OpeningHours()
	assert.False(t, ok)
}

func TestResolve_DefaultVirtualSlot(t *testing.T) {
	eff := Resolve(nil, mustDate(t, "2024-01-06"), StandardDefaultHours(), nil)
	require.NotNil(t, eff.TimeSlotID)
	assert.Equal(t, "09:00-20:30", *eff.TimeSlotID)
}

func TestInScope(t *testing.T) {
	day := mustDate(t, "2024-01-02")
	other := mustDate(t, "2024-01-03")
	storeA, storeB := "store-a", "store-b"
	records := []StoreHours{
		{ID: "store-row", StoreID: &storeA, Date: day, IsClosed: true},
		{ID: "global-row", Date: day},
		{ID: "global-other", Date: other},
		{ID: "b-row", StoreID: &storeB, Date: other, IsClosed: true},
	}

	forA := InScope(records, &storeA)
	assert.Equal(t, "store-row", forA[day].ID)
	assert.Equal(t, "global-other", forA[other].ID)

	global := InScope(records, nil)
	assert.Equal(t, "global-row", global[day].ID)
	assert.Equal(t, "global-other", global[other].ID)
}
