package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidClockTime = errors.New("invalid time format, use HH:MM")
	ErrInvalidInterval  = errors.New("invalid time range, use HH:MM-HH:MM")
)

var minutesPerHour = decimal.NewFromInt(60)

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day drops the clock part of t and keeps its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Monday returns the Monday of the week containing date.
// Sunday rolls back six days, any other weekday rolls back weekday-1 days.
func Monday(date time.Time) time.Time {
	d := Day(date)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func IsMonday(date time.Time) bool {
	return date.Weekday() == time.Monday
}

// WeekDates returns Monday through Sunday of the week containing date.
func WeekDates(date time.Time) [7]time.Time {
	var week [7]time.Time
	monday := Monday(date)
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// WeekNumber numbers weeks from the day of year and the weekday of January 1st.
// It does not apply the ISO 8601 year-boundary correction, so printed week numbers
// stay identical to the ones on previously exported plannings.
func WeekNumber(date time.Time) int {
	d := Day(date)
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return (d.YearDay() + int(jan1.Weekday()) + 6) / 7
}

// MonthRange returns the first and last day of a month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime accepts HH:MM, and HH:MM:SS as returned by some drivers (seconds are dropped).
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, ErrInvalidClockTime
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return ClockTime{}, ErrInvalidClockTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, ErrInvalidClockTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(fmt.Sprintf("calendar: %q: %v", s, err))
	}
	return c
}

// Minutes returns the number of minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Interval is a start/end pair within a single day.
type Interval struct {
	Start ClockTime
	End   ClockTime
}

// ParseInterval parses the HH:MM-HH:MM form.
func ParseInterval(s string) (Interval, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Interval{}, ErrInvalidInterval
	}
	startTime, err := ParseClockTime(start)
	if err != nil {
		return Interval{}, ErrInvalidInterval
	}
	endTime, err := ParseClockTime(end)
	if err != nil {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: startTime, End: endTime}, nil
}

// Minutes may be negative when End is before Start.
func (iv Interval) Minutes() int {
	return iv.End.Minutes() - iv.Start.Minutes()
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Label is the display form used on plannings.
func (iv Interval) Label() string {
	return iv.Start.String() + " - " + iv.End.String()
}

// TotalHours returns the length of iv in hours rounded to two decimals, or zero for nil.
func TotalHours(iv *Interval) decimal.Decimal {
	if iv == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(iv.Minutes())).Div(minutesPerHour).Round(2)
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// MonthName returns the lower-case French name of month.
func MonthName(month time.Month) string {
	return frenchMonths[month-1]
}

// MonthTitle renders "Janvier 2024".
func MonthTitle(year int, month time.Month) string {
	name := MonthName(month)
	return strings.ToUpper(name[:1]) + name[1:] + " " + strconv.Itoa(year)
}

// FormatDisplayDate renders DD/MM/YYYY.
func FormatDisplayDate(t time.Time) string {
	return t.Format("02/01/2006")
}
