package timeslot

import (
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

type TimeSlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
}

func NewTimeSlotResponse(t TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:        t.ID,
		StartTime: t.Start.String(),
		EndTime:   t.End.String(),
		Label:     t.Interval().Label(),
	}
}

// TimeSlotRequest is used for both create and update.
type TimeSlotRequest struct {
	ID        string `json:"-"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Validate checks both clock times and rejects slots that do not end after they start.
func (r *TimeSlotRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidTime(r.StartTime)
	if !startOK {
		errs.Add("start_time", "start_time must be in HH:MM format")
	}
	end, endOK := validator.IsValidTime(r.EndTime)
	if !endOK {
		errs.Add("end_time", "end_time must be in HH:MM format")
	}
	if startOK && endOK && end.Minutes() <= start.Minutes() {
		errs.Add("end_time", "end_time must be after start_time")
	}

	return errs.Err()
}

// ToEntity must be called after Validate.
func (r *TimeSlotRequest) ToEntity() TimeSlot {
	return TimeSlot{
		ID:    r.ID,
		Start: calendar.MustClockTime(r.StartTime),
		End:   calendar.MustClockTime(r.EndTime),
	}
}
