package schedule

import (
	"time"

	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

type ScheduleResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	IsPresent     bool    `json:"is_present"`
	TimeSlotID    *string `json:"time_slot_id,omitempty"`
	AbsenceTypeID *string `json:"absence_type_id,omitempty"`
}

func NewScheduleResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		Date:          calendar.FormatDate(s.Date),
		IsPresent:     s.IsPresent,
		TimeSlotID:    s.TimeSlotID,
		AbsenceTypeID: s.AbsenceTypeID,
	}
}

type ScheduleFilter struct {
	StartDate string
	EndDate   string
}

func (f ScheduleFilter) Parse() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs.Add("start", "start must be a date in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs.Add("end", "end must be a date in YYYY-MM-DD format")
	}
	if err := errs.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

type UpsertScheduleRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	IsPresent     bool    `json:"is_present"`
	TimeSlotID    *string `json:"time_slot_id,omitempty"`
	AbsenceTypeID *string `json:"absence_type_id,omitempty"`
}

// ToEntity validates the request. A present cell never keeps an absence type
// and an absent cell never keeps a slot.
func (r *UpsertScheduleRequest) ToEntity() (Schedule, error) {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if !validator.IsBlank(r.TimeSlotID) && !validator.IsValidUUID(*r.TimeSlotID) {
		errs.Add("time_slot_id", "time_slot_id must be a valid UUID")
	}
	if !validator.IsBlank(r.AbsenceTypeID) && !validator.IsValidUUID(*r.AbsenceTypeID) {
		errs.Add("absence_type_id", "absence_type_id must be a valid UUID")
	}
	if err := errs.Err(); err != nil {
		return Schedule{}, err
	}

	s := Schedule{
		EmployeeID: r.EmployeeID,
		Date:       date,
		IsPresent:  r.IsPresent,
	}
	if r.IsPresent {
		if !validator.IsBlank(r.TimeSlotID) {
			s.TimeSlotID = r.TimeSlotID
		}
	} else if !validator.IsBlank(r.AbsenceTypeID) {
		s.AbsenceTypeID = r.AbsenceTypeID
	}
	return s, nil
}
