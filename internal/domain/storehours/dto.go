package storehours

import (
	"time"

	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

type StoreHoursResponse struct {
	ID         string  `json:"id"`
	StoreID    *string `json:"store_id,omitempty"`
	Date       string  `json:"date"`
	IsClosed   bool    `json:"is_closed"`
	TimeSlotID *string `json:"time_slot_id,omitempty"`
}

func NewStoreHoursResponse(h StoreHours) StoreHoursResponse {
	return StoreHoursResponse{
		ID:         h.ID,
		StoreID:    h.StoreID,
		Date:       calendar.FormatDate(h.Date),
		IsClosed:   h.IsClosed,
		TimeSlotID: h.TimeSlotID,
	}
}

type StoreHoursFilter struct {
	StartDate string
	EndDate   string
	StoreID   *string
}

// Parse validates the filter and returns its bounds.
func (f StoreHoursFilter) Parse() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs.Add("start", "start must be a date in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs.Add("end", "end must be a date in YYYY-MM-DD format")
	}
	if startOK && endOK && end.Before(start) {
		errs.Add("end", "end must not be before start")
	}
	if f.StoreID != nil && !validator.IsValidUUID(*f.StoreID) {
		errs.Add("store_id", "store_id must be a valid UUID")
	}

	return start, end, errs.Err()
}

// UpsertStoreHoursRequest sets the override of one date. Either IsClosed/TimeSlotID
// or the editor's composite Value ("closed" or "HH:MM:HH:MM") must be given.
type UpsertStoreHoursRequest struct {
	Date       string  `json:"-"`
	StoreID    *string `json:"store_id,omitempty"`
	IsClosed   *bool   `json:"is_closed,omitempty"`
	TimeSlotID *string `json:"time_slot_id,omitempty"`
	Value      *string `json:"value,omitempty"`
}

// ToEntity validates the request and builds the override to store.
// A closed override never carries a slot.
func (r *UpsertStoreHoursRequest) ToEntity() (StoreHours, error) {
	var errs validator.ValidationErrors

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if r.StoreID != nil && !validator.IsValidUUID(*r.StoreID) {
		errs.Add("store_id", "store_id must be a valid UUID")
	}

	entity := StoreHours{StoreID: r.StoreID, Date: date}

	switch {
	case r.Value != nil:
		hours, err := ParseOpeningHours(*r.Value)
		if err != nil {
			errs.Add("value", err.Error())
			break
		}
		entity.IsClosed = hours.Closed
		if !hours.Closed {
			slot := hours.Interval.String()
			entity.TimeSlotID = &slot
		}
	case r.IsClosed != nil && *r.IsClosed:
		entity.IsClosed = true
	default:
		if validator.IsBlank(r.TimeSlotID) {
			errs.Add("time_slot_id", ErrTimeSlotRequired.Error())
			break
		}
		entity.TimeSlotID = r.TimeSlotID
	}

	if err := errs.Err(); err != nil {
		return StoreHours{}, err
	}
	return entity, nil
}
