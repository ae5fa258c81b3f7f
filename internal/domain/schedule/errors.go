package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)
