package planning

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/domain/employee"
	"github.com/storeplan/planning-backend-go/internal/domain/export"
	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/email"
)

var errInjected = errors.New("injected failure")

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// memory holds every table of the fake database.
type memory struct {
	employees    []employee.Employee
	stores       []store.Store
	slots        []timeslot.TimeSlot
	absenceTypes []absence.AbsenceType
	schedules    []schedule.Schedule
	storeHours   []storehours.StoreHours
	exports      []export.Export
	nextID       int

	failInsertHours bool
}

func (m *memory) id() string {
	m.nextID++
	return "row-" + strconv.Itoa(m.nextID)
}

func (m *memory) repositories() Repositories {
	return Repositories{
		Employees:    employeeRepo{m},
		Stores:       storeRepo{m},
		TimeSlots:    slotRepo{m},
		AbsenceTypes: absenceRepo{m},
		Schedules:    scheduleRepo{m},
		StoreHours:   storeHoursRepo{m},
		Exports:      exportRepo{m},
	}
}

// snapshotTransactor restores the schedule and store-hours tables when fn fails.
type snapshotTransactor struct{ m *memory }

func (t snapshotTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	schedules := append([]schedule.Schedule(nil), t.m.schedules...)
	hours := append([]storehours.StoreHours(nil), t.m.storeHours...)
	if err := fn(ctx); err != nil {
		t.m.schedules, t.m.storeHours = schedules, hours
		return err
	}
	return nil
}

type employeeRepo struct{ m *memory }

func (r employeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = r.m.id()
	r.m.employees = append(r.m.employees, e)
	return e, nil
}

func (r employeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range r.m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.m.employees {
		if filter.StoreID != nil && (e.StoreID == nil || *e.StoreID != *filter.StoreID) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r employeeRepo) Update(context.Context, employee.UpdateEmployeeRequest) error { return nil }
func (r employeeRepo) Delete(context.Context, string) error                        { return nil }

type storeRepo struct{ m *memory }

func (r storeRepo) Create(_ context.Context, s store.Store) (store.Store, error) {
	r.m.stores = append(r.m.stores, s)
	return s, nil
}

func (r storeRepo) GetByID(_ context.Context, id string) (store.Store, error) {
	for _, s := range r.m.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return store.Store{}, store.ErrStoreNotFound
}

func (r storeRepo) List(context.Context) ([]store.Store, error)             { return r.m.stores, nil }
func (r storeRepo) Update(context.Context, store.UpdateStoreRequest) error { return nil }
func (r storeRepo) Delete(context.Context, string) error                   { return nil }

type slotRepo struct{ m *memory }

func (r slotRepo) Create(_ context.Context, t timeslot.TimeSlot) (timeslot.TimeSlot, error) {
	r.m.slots = append(r.m.slots, t)
	return t, nil
}

func (r slotRepo) GetByID(context.Context, string) (timeslot.TimeSlot, error) {
	return timeslot.TimeSlot{}, timeslot.ErrTimeSlotNotFound
}

func (r slotRepo) List(context.Context) ([]timeslot.TimeSlot, error) { return r.m.slots, nil }
func (r slotRepo) Update(context.Context, timeslot.TimeSlot) error  { return nil }
func (r slotRepo) Delete(context.Context, string) error             { return nil }

type absenceRepo struct{ m *memory }

func (r absenceRepo) Create(_ context.Context, label string) (absence.AbsenceType, error) {
	a := absence.AbsenceType{ID: r.m.id(), Label: label}
	r.m.absenceTypes = append(r.m.absenceTypes, a)
	return a, nil
}

func (r absenceRepo) GetByID(context.Context, string) (absence.AbsenceType, error) {
	return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
}

func (r absenceRepo) List(context.Context) ([]absence.AbsenceType, error) { return r.m.absenceTypes, nil }
func (r absenceRepo) Update(context.Context, string, string) error        { return nil }
func (r absenceRepo) Delete(context.Context, string) error                { return nil }

type scheduleRepo struct{ m *memory }

func (r scheduleRepo) GetRange(_ context.Context, start, end time.Time) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, s := range r.m.schedules {
		if inRange(s.Date, start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r scheduleRepo) Upsert(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	_ = r.Delete(ctx, s.EmployeeID, s.Date)
	s.ID = r.m.id()
	r.m.schedules = append(r.m.schedules, s)
	return s, nil
}

func (r scheduleRepo) Delete(_ context.Context, employeeID string, date time.Time) error {
	kept := r.m.schedules[:0]
	for _, s := range r.m.schedules {
		if s.EmployeeID == employeeID && s.Date.Equal(date) {
			continue
		}
		kept = append(kept, s)
	}
	r.m.schedules = kept
	return nil
}

func (r scheduleRepo) DeleteRange(_ context.Context, start, end time.Time) error {
	var kept []schedule.Schedule
	for _, s := range r.m.schedules {
		if !inRange(s.Date, start, end) {
			kept = append(kept, s)
		}
	}
	r.m.schedules = kept
	return nil
}

func (r scheduleRepo) InsertBatch(_ context.Context, schedules []schedule.Schedule) ([]schedule.Schedule, error) {
	out := make([]schedule.Schedule, 0, len(schedules))
	for _, s := range schedules {
		s.ID = r.m.id()
		r.m.schedules = append(r.m.schedules, s)
		out = append(out, s)
	}
	return out, nil
}

type storeHoursRepo struct{ m *memory }

func (r storeHoursRepo) GetRange(_ context.Context, start, end time.Time) ([]storehours.StoreHours, error) {
	var out []storehours.StoreHours
	for _, h := range r.m.storeHours {
		if inRange(h.Date, start, end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r storeHoursRepo) Upsert(ctx context.Context, h storehours.StoreHours) (storehours.StoreHours, error) {
	_ = r.Delete(ctx, h.Date, h.StoreID)
	h.ID = r.m.id()
	if h.IsClosed {
		h.TimeSlotID = nil
	}
	r.m.storeHours = append(r.m.storeHours, h)
	return h, nil
}

func sameStore(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r storeHoursRepo) Delete(_ context.Context, date time.Time, storeID *string) error {
	var kept []storehours.StoreHours
	for _, h := range r.m.storeHours {
		if h.Date.Equal(date) && sameStore(h.StoreID, storeID) {
			continue
		}
		kept = append(kept, h)
	}
	r.m.storeHours = kept
	return nil
}

func (r storeHoursRepo) DeleteRange(_ context.Context, start, end time.Time) error {
	var kept []storehours.StoreHours
	for _, h := range r.m.storeHours {
		if !inRange(h.Date, start, end) {
			kept = append(kept, h)
		}
	}
	r.m.storeHours = kept
	return nil
}

func (r storeHoursRepo) InsertBatch(_ context.Context, hours []storehours.StoreHours) ([]storehours.StoreHours, error) {
	if r.m.failInsertHours {
		return nil, errInjected
	}
	out := make([]storehours.StoreHours, 0, len(hours))
	for _, h := range hours {
		h.ID = r.m.id()
		r.m.storeHours = append(r.m.storeHours, h)
		out = append(out, h)
	}
	return out, nil
}

type exportRepo struct{ m *memory }

func (r exportRepo) Create(_ context.Context, e export.Export) (export.Export, error) {
	e.ID = r.m.id()
	r.m.exports = append(r.m.exports, e)
	return e, nil
}

func (r exportRepo) ListOlderThan(context.Context, time.Time) ([]export.Export, error) {
	return nil, nil
}

func (r exportRepo) Delete(context.Context, string) error { return nil }

// recordingMailer fails deliveries to the addresses in failFor.
type recordingMailer struct {
	sent    []email.PlanningMail
	failFor map[string]bool
}

func (m *recordingMailer) SendPlanning(_ context.Context, mail email.PlanningMail) []email.DeliveryResult {
	m.sent = append(m.sent, mail)
	results := make([]email.DeliveryResult, 0, len(mail.Recipients))
	for _, r := range mail.Recipients {
		var err error
		if m.failFor[r.Email] {
			err = errInjected
		}
		results = append(results, email.DeliveryResult{Recipient: r, Err: err})
	}
	return results
}

// Fixtures

func day(s string) time.Time {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

func slot(id, start, end string) timeslot.TimeSlot {
	return timeslot.TimeSlot{ID: id, Start: calendar.MustClockTime(start), End: calendar.MustClockTime(end)}
}

func present(employeeID, date, slotID string) schedule.Schedule {
	s := schedule.Schedule{EmployeeID: employeeID, Date: day(date), IsPresent: true}
	if slotID != "" {
		s.TimeSlotID = ptr(slotID)
	}
	return s
}
