package planning

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
)

const closedLabel = "Fermé"

// AggregatorInput is everything loaded for one period and store scope.
type AggregatorInput struct {
	Defaults     storehours.DefaultHours
	TimeSlots    []timeslot.TimeSlot
	AbsenceTypes []absence.AbsenceType
	Schedules    []schedule.Schedule
	StoreHours   []storehours.StoreHours
	StoreID      *string

	// MonthlyDefaultClosures makes monthly totals skip days closed by the
	// default table, not only days closed by an override.
	MonthlyDefaultClosures bool
}

// Aggregator answers cell, store-hours and total questions over preloaded data.
// It never touches storage and is safe for concurrent reads.
type Aggregator struct {
	defaults               storehours.DefaultHours
	slots                  map[string]calendar.Interval
	absences               map[string]string
	schedules              map[schedule.Key]schedule.Schedule
	overrides              map[time.Time]storehours.StoreHours
	monthlyDefaultClosures bool
}

func NewAggregator(in AggregatorInput) *Aggregator {
	defaults := in.Defaults
	if defaults == nil {
		defaults = storehours.StandardDefaultHours()
	}

	absences := make(map[string]string, len(in.AbsenceTypes))
	for _, a := range in.AbsenceTypes {
		absences[a.ID] = a.Label
	}

	schedules := make(map[schedule.Key]schedule.Schedule, len(in.Schedules))
	for _, s := range in.Schedules {
		s.Date = calendar.Day(s.Date)
		schedules[s.Key()] = s
	}

	return &Aggregator{
		defaults:               defaults,
		slots:                  timeslot.Index(in.TimeSlots),
		absences:               absences,
		schedules:              schedules,
		overrides:              storehours.InScope(in.StoreHours, in.StoreID),
		monthlyDefaultClosures: in.MonthlyDefaultClosures,
	}
}

func (a *Aggregator) lookupSlot(id string) (calendar.Interval, bool) {
	iv, ok := a.slots[id]
	return iv, ok
}

// CellFor returns the stored cell, or the synthesized default when nothing is stored.
func (a *Aggregator) CellFor(employeeID string, date time.Time) schedule.Cell {
	rec, ok := a.schedules[schedule.Key{EmployeeID: employeeID, Date: calendar.Day(date)}]
	if !ok {
		return schedule.ResolveCell(nil)
	}
	return schedule.ResolveCell(&rec)
}

// StoreHours resolves the opening state of date: override first, then the default table.
func (a *Aggregator) StoreHours(date time.Time) storehours.Effective {
	day := calendar.Day(date)
	if rec, ok := a.overrides[day]; ok {
		return storehours.Resolve(&rec, day, a.defaults, a.lookupSlot)
	}
	return storehours.Resolve(nil, day, a.defaults, a.lookupSlot)
}

func (a *Aggregator) IsStoreClosed(date time.Time) bool {
	return a.StoreHours(date).Closed
}

// closedByOverride ignores the default table.
func (a *Aggregator) closedByOverride(date time.Time) bool {
	rec, ok := a.overrides[calendar.Day(date)]
	return ok && rec.IsClosed
}

// slotHours is zero for cells that are absent, unscheduled or point at an unknown slot.
func (a *Aggregator) slotHours(cell schedule.Cell) decimal.Decimal {
	if !cell.IsPresent || cell.TimeSlotID == nil {
		return decimal.Zero
	}
	iv, ok := a.slots[*cell.TimeSlotID]
	if !ok {
		return decimal.Zero
	}
	return calendar.TotalHours(&iv)
}

// CellHours counts the cell's slot unless the store is closed that day.
func (a *Aggregator) CellHours(employeeID string, date time.Time) decimal.Decimal {
	if a.IsStoreClosed(date) {
		return decimal.Zero
	}
	return a.slotHours(a.CellFor(employeeID, date))
}

// WeeklyTotal sums the hours of the given days.
func (a *Aggregator) WeeklyTotal(employeeID string, week [7]time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, date := range week {
		total = total.Add(a.CellHours(employeeID, date))
	}
	return total
}

// MonthlyTotal sums the month's hours. Only override closures are excluded,
// unless default-table closures were enabled.
func (a *Aggregator) MonthlyTotal(employeeID string, year int, month time.Month) decimal.Decimal {
	first, last := calendar.MonthRange(year, month)

	total := decimal.Zero
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		if a.closedByOverride(date) {
			continue
		}
		if a.monthlyDefaultClosures && a.IsStoreClosed(date) {
			continue
		}
		total = total.Add(a.slotHours(a.CellFor(employeeID, date)))
	}
	return total
}

// CellView renders one cell for display. Unknown slot and absence ids render blank.
func (a *Aggregator) CellView(employeeID string, date time.Time) planning.CellView {
	cell := a.CellFor(employeeID, date)
	view := planning.CellView{
		Date:          calendar.FormatDate(date),
		IsPresent:     cell.IsPresent,
		TimeSlotID:    cell.TimeSlotID,
		AbsenceTypeID: cell.AbsenceTypeID,
		Hours:         a.CellHours(employeeID, date),
		StoreClosed:   a.IsStoreClosed(date),
		Stored:        cell.Stored,
	}

	switch {
	case cell.IsPresent && cell.TimeSlotID != nil:
		if iv, ok := a.slots[*cell.TimeSlotID]; ok {
			view.Label = iv.Label()
		}
	case !cell.IsPresent && cell.AbsenceTypeID != nil:
		view.Label = a.absences[*cell.AbsenceTypeID]
	}
	return view
}

// DayHours renders the effective store hours of date.
func (a *Aggregator) DayHours(date time.Time) planning.DayHours {
	eff := a.StoreHours(date)
	day := planning.DayHours{
		Date:       calendar.FormatDate(eff.Date),
		IsClosed:   eff.Closed,
		TimeSlotID: eff.TimeSlotID,
		Source:     string(eff.Source),
	}

	if hours, ok := eff.OpeningHours(); ok {
		day.Value = hours.Composite()
	}
	switch {
	case eff.Closed:
		day.Label = closedLabel
	case eff.Hours != nil:
		day.Label = eff.Hours.Label()
	}
	return day
}
