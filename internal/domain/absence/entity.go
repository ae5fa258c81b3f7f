package absence

import "time"

// AbsenceType is a labelled reason for not working on a day (sick, leave, training...).
type AbsenceType struct {
	ID        string
	Label     string
	CreatedAt time.Time
}
