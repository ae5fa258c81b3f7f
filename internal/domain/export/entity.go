package export

import "time"

type Kind string

const (
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
)

// Export records a generated planning PDF kept in file storage.
type Export struct {
	ID          string
	Kind        Kind
	StoreID     *string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Path        string
	SizeBytes   int64
	CreatedAt   time.Time
}
