package storehours

import "time"

// StoreHours is a per-date override of a store's opening hours.
// A nil StoreID applies to every store.
type StoreHours struct {
	ID         string
	StoreID    *string
	Date       time.Time
	IsClosed   bool
	TimeSlotID *string // registry slot id or a literal "HH:MM-HH:MM" interval
	CreatedAt  time.Time
}

// Source tells where the effective hours of a date come from.
type Source string

const (
	SourceOverride Source = "override"
	SourceDefault  Source = "default"
)
