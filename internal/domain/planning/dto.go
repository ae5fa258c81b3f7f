package planning

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

// WeekView is the weekly planning grid with per-employee totals.
type WeekView struct {
	WeekNumber int           `json:"week_number"`
	Monday     string        `json:"monday"`
	Dates      []string      `json:"dates"`
	StoreID    *string       `json:"store_id,omitempty"`
	StoreHours []DayHours    `json:"store_hours"`
	Employees  []EmployeeRow `json:"employees"`
}

// DayHours is the effective opening state of one day.
type DayHours struct {
	Date       string  `json:"date"`
	IsClosed   bool    `json:"is_closed"`
	TimeSlotID *string `json:"time_slot_id,omitempty"`
	// Value is "closed", "HH:MM:HH:MM" or empty when the hours are unknown.
	Value  string `json:"value"`
	Label  string `json:"label"`
	Source string `json:"source"`
}

type EmployeeRow struct {
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	Email      *string         `json:"email,omitempty"`
	Cells      []CellView      `json:"cells"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// CellView is the display state of one schedule cell.
type CellView struct {
	Date          string          `json:"date"`
	IsPresent     bool            `json:"is_present"`
	TimeSlotID    *string         `json:"time_slot_id,omitempty"`
	AbsenceTypeID *string         `json:"absence_type_id,omitempty"`
	Label         string          `json:"label"`
	Hours         decimal.Decimal `json:"hours"`
	StoreClosed   bool            `json:"store_closed"`
	Stored        bool            `json:"stored"`
}

type MonthlyTotalsView struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Title     string          `json:"title"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	StoreID   *string         `json:"store_id,omitempty"`
	Totals    []EmployeeTotal `json:"totals"`
}

type EmployeeTotal struct {
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// WeekQuery selects the week containing Date.
type WeekQuery struct {
	Date    string
	StoreID *string
}

func (q WeekQuery) Parse() (time.Time, error) {
	var errs validator.ValidationErrors
	date, ok := validator.IsValidDate(q.Date)
	if !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if q.StoreID != nil && !validator.IsValidUUID(*q.StoreID) {
		errs.Add("store_id", "store_id must be a valid UUID")
	}
	return date, errs.Err()
}

type MonthQuery struct {
	Year    int
	Month   int
	StoreID *string
}

func (q MonthQuery) Validate() error {
	var errs validator.ValidationErrors
	if q.Year < 1970 || q.Year > 9999 {
		errs.Add("year", "year must be between 1970 and 9999")
	}
	if q.Month < 1 || q.Month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}
	if q.StoreID != nil && !validator.IsValidUUID(*q.StoreID) {
		errs.Add("store_id", "store_id must be a valid UUID")
	}
	return errs.Err()
}

type CopyWeekRequest struct {
	SourceMonday string `json:"source_monday"`
	TargetMonday string `json:"target_monday"`
}

// Parse validates that both dates are Mondays.
func (r CopyWeekRequest) Parse() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors
	source, ok := validator.IsValidDate(r.SourceMonday)
	if !ok {
		errs.Add("source_monday", "source_monday must be in YYYY-MM-DD format")
	} else if !calendar.IsMonday(source) {
		errs.Add("source_monday", ErrNotMonday.Error())
	}
	target, ok := validator.IsValidDate(r.TargetMonday)
	if !ok {
		errs.Add("target_monday", "target_monday must be in YYYY-MM-DD format")
	} else if !calendar.IsMonday(target) {
		errs.Add("target_monday", ErrNotMonday.Error())
	}
	return source, target, errs.Err()
}

type CopyWeekResponse struct {
	SourceMonday string           `json:"source_monday"`
	TargetMonday string           `json:"target_monday"`
	Schedules    []ScheduleCopy   `json:"schedules"`
	StoreHours   []StoreHoursCopy `json:"store_hours"`
}

type ScheduleCopy struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	IsPresent     bool    `json:"is_present"`
	TimeSlotID    *string `json:"time_slot_id,omitempty"`
	AbsenceTypeID *string `json:"absence_type_id,omitempty"`
}

type StoreHoursCopy struct {
	ID         string  `json:"id"`
	StoreID    *string `json:"store_id,omitempty"`
	Date       string  `json:"date"`
	IsClosed   bool    `json:"is_closed"`
	TimeSlotID *string `json:"time_slot_id,omitempty"`
}

type SendWeekRequest struct {
	Date    string  `json:"date"`
	StoreID *string `json:"store_id,omitempty"`
}

type SendMonthRequest struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	StoreID *string `json:"store_id,omitempty"`
	// Subject and Content replace the default message when set.
	Subject *string `json:"subject,omitempty"`
	Content *string `json:"content,omitempty"`
}

// SendResult reports the delivery outcome for one employee.
type SendResult struct {
	EmployeeID string  `json:"employee_id"`
	Employee   string  `json:"employee"`
	Email      string  `json:"email"`
	Success    bool    `json:"success"`
	Error      *string `json:"error,omitempty"`
}

// Document is a rendered planning PDF.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
	// URL is where the archived copy can be downloaded, empty when archiving is disabled.
	URL string
}
