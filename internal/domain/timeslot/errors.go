package timeslot

import "errors"

var (
	ErrTimeSlotNotFound = errors.New("time slot not found")
	ErrTimeSlotExists   = errors.New("time slot with these hours already exists")
)
