package storehours

import "errors"

var (
	ErrTimeSlotRequired    = errors.New("time_slot_id is required when the store is open")
	ErrInvalidOpeningHours = errors.New("invalid opening hours, use closed, HH:MM-HH:MM or HH:MM:HH:MM")
)
