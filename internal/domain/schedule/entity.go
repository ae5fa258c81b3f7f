package schedule

import "time"

// Schedule is the stored assignment of one employee on one date.
type Schedule struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	IsPresent     bool
	TimeSlotID    *string
	AbsenceTypeID *string
	CreatedAt     time.Time
}

// Cell is the effective state of an (employee, date) pair.
type Cell struct {
	IsPresent     bool
	TimeSlotID    *string
	AbsenceTypeID *string
	// Stored is false when the cell was synthesized for a missing record.
	Stored bool
}

// ResolveCell returns the stored state, or "present with no slot" when nothing is stored.
func ResolveCell(rec *Schedule) Cell {
	if rec == nil {
		return Cell{IsPresent: true}
	}
	return Cell{
		IsPresent:     rec.IsPresent,
		TimeSlotID:    rec.TimeSlotID,
		AbsenceTypeID: rec.AbsenceTypeID,
		Stored:        true,
	}
}

// Key identifies a schedule cell.
type Key struct {
	EmployeeID string
	Date       time.Time
}

func (s Schedule) Key() Key {
	return Key{EmployeeID: s.EmployeeID, Date: s.Date}
}
