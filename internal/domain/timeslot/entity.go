package timeslot

import (
	"sort"
	"time"

	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
)

// TimeSlot is a predefined working interval within a day.
type TimeSlot struct {
	ID        string
	Start     calendar.ClockTime
	End       calendar.ClockTime
	CreatedAt time.Time
}

func (t TimeSlot) Interval() calendar.Interval {
	return calendar.Interval{Start: t.Start, End: t.End}
}

// Sort orders slots by start time, then by shorter duration first.
func Sort(slots []TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Start.Minutes() != b.Start.Minutes() {
			return a.Start.Minutes() < b.Start.Minutes()
		}
		return a.Interval().Minutes() < b.Interval().Minutes()
	})
}

// Index maps slot ids to their intervals.
func Index(slots []TimeSlot) map[string]calendar.Interval {
	index := make(map[string]calendar.Interval, len(slots))
	for _, s := range slots {
		index[s.ID] = s.Interval()
	}
	return index
}
