package storehours

import (
	"time"

	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
)

// SlotLookup resolves a time slot id from the registry.
type SlotLookup func(id string) (calendar.Interval, bool)

// Effective is the resolved opening state of a store on a date.
type Effective struct {
	Date   time.Time
	Closed bool
	// Hours is nil when the store is closed or the override points at an unknown slot.
	Hours      *calendar.Interval
	TimeSlotID *string
	Source     Source
}

// Resolve applies the override for date if there is one, else the default table.
// Default intervals are exposed as a virtual slot keyed by their literal "HH:MM-HH:MM" value.
func Resolve(override *StoreHours, date time.Time, defaults DefaultHours, lookup SlotLookup) Effective {
	date = calendar.Day(date)

	if override != nil {
		eff := Effective{Date: date, Source: SourceOverride, Closed: override.IsClosed}
		if override.IsClosed || override.TimeSlotID == nil {
			return eff
		}
		eff.TimeSlotID = override.TimeSlotID
		if iv, err := calendar.ParseInterval(*override.TimeSlotID); err == nil {
			eff.Hours = &iv
		} else if lookup != nil {
			if iv, ok := lookup(*override.TimeSlotID); ok {
				eff.Hours = &iv
			}
		}
		return eff
	}

	hours := defaults.For(date)
	if hours.Closed {
		return Effective{Date: date, Closed: true, Source: SourceDefault}
	}
	iv := hours.Interval
	id := iv.String()
	return Effective{Date: date, Hours: &iv, TimeSlotID: &id, Source: SourceDefault}
}

// OpeningHours converts the effective state back to its tagged form.
// ok is false for an open day whose hours are unknown.
func (e Effective) OpeningHours() (OpeningHours, bool) {
	if e.Closed {
		return Closed(), true
	}
	if e.Hours == nil {
		return OpeningHours{}, false
	}
	return OpeningHours{Interval: *e.Hours}, true
}

// InScope keeps the overrides that apply to storeID, indexed by date.
// Global rows (nil store) always apply; with a store given, its own row wins over the global one.
func InScope(records []StoreHours, storeID *string) map[time.Time]StoreHours {
	byDate := make(map[time.Time]StoreHours, len(records))
	for _, rec := range records {
		day := calendar.Day(rec.Date)
		if rec.StoreID == nil {
			if _, exists := byDate[day]; !exists {
				byDate[day] = rec
			}
			continue
		}
		if storeID != nil && *rec.StoreID == *storeID {
			byDate[day] = rec
		}
	}
	return byDate
}
