package storehours

import (
	"fmt"
	"strings"
	"time"
)

// DefaultHours is the weekly opening-hours table used when no override exists for a date.
type DefaultHours map[time.Weekday]OpeningHours

// StandardDefaultHours: Monday to Friday 09:00-20:00, Saturday 09:00-20:30, Sunday closed.
func StandardDefaultHours() DefaultHours {
	weekday := Open("09:00", "20:00")
	return DefaultHours{
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  Open("09:00", "20:30"),
		time.Sunday:    Closed(),
	}
}

// For returns the default hours of the date's weekday. A weekday missing from the table is closed.
func (d DefaultHours) For(date time.Time) OpeningHours {
	hours, ok := d[date.Weekday()]
	if !ok {
		return Closed()
	}
	return hours
}

// WithOverrides returns a copy of d where the given weekdays are replaced.
// Keys are lower-case English weekday names, values any ParseOpeningHours form.
func (d DefaultHours) WithOverrides(values map[string]string) (DefaultHours, error) {
	result := make(DefaultHours, len(d))
	for day, hours := range d {
		result[day] = hours
	}

	for name, value := range values {
		day, ok := weekdayByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		hours, err := ParseOpeningHours(value)
		if err != nil {
			return nil, fmt.Errorf("default hours for %s: %w", name, err)
		}
		result[day] = hours
	}

	return result, nil
}

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}
