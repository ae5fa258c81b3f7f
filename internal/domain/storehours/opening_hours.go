package storehours

import (
	"strings"

	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
)

const closedValue = "closed"

// OpeningHours is either closed or open over an interval.
type OpeningHours struct {
	Closed   bool
	Interval calendar.Interval
}

func Closed() OpeningHours {
	return OpeningHours{Closed: true}
}

func Open(start, end string) OpeningHours {
	return OpeningHours{Interval: calendar.Interval{
		Start: calendar.MustClockTime(start),
		End:   calendar.MustClockTime(end),
	}}
}

// String renders "closed" or "HH:MM-HH:MM".
func (o OpeningHours) String() string {
	if o.Closed {
		return closedValue
	}
	return o.Interval.String()
}

// Composite renders the "HH:MM:HH:MM" form used by the planning editor.
func (o OpeningHours) Composite() string {
	if o.Closed {
		return closedValue
	}
	return o.Interval.Start.String() + ":" + o.Interval.End.String()
}

// ParseOpeningHours accepts "closed", "HH:MM:HH:MM" or "HH:MM-HH:MM".
func ParseOpeningHours(s string) (OpeningHours, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, closedValue) {
		return Closed(), nil
	}

	if iv, err := calendar.ParseInterval(s); err == nil {
		return OpeningHours{Interval: iv}, nil
	}

	// HH:MM:HH:MM
	if len(s) == 11 && s[5] == ':' {
		start, err := calendar.ParseClockTime(s[:5])
		if err != nil {
			return OpeningHours{}, ErrInvalidOpeningHours
		}
		end, err := calendar.ParseClockTime(s[6:])
		if err != nil {
			return OpeningHours{}, ErrInvalidOpeningHours
		}
		return OpeningHours{Interval: calendar.Interval{Start: start, End: end}}, nil
	}

	return OpeningHours{}, ErrInvalidOpeningHours
}

func (o OpeningHours) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *OpeningHours) UnmarshalText(b []byte) error {
	parsed, err := ParseOpeningHours(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
