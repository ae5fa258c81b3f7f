package planning

import (
	"context"
	"log/slog"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/employee"
	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/email"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

// recipients keeps the employees that have an email address.
func recipients(employees []employee.Employee) []email.Recipient {
	var out []email.Recipient
	for _, e := range employees {
		if !e.HasEmail() {
			continue
		}
		out = append(out, email.Recipient{ID: e.ID, Name: e.Name, Email: *e.Email})
	}
	return out
}

func toSendResults(results []email.DeliveryResult) []planning.SendResult {
	out := make([]planning.SendResult, 0, len(results))
	for _, r := range results {
		res := planning.SendResult{
			EmployeeID: r.Recipient.ID,
			Employee:   r.Recipient.Name,
			Email:      r.Recipient.Email,
			Success:    r.Err == nil,
		}
		if r.Err != nil {
			msg := r.Err.Error()
			res.Error = &msg
		}
		out = append(out, res)
	}
	return out
}

func logDelivery(kind string, results []planning.SendResult) {
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	slog.Info("Planning emails sent", "kind", kind, "recipients", len(results), "failed", failed)
}

// ==================== EMAIL ====================

// SendWeekPlanning emails the weekly PDF to every employee of the scope with an address.
func (s *PlanningServiceImpl) SendWeekPlanning(ctx context.Context, req planning.SendWeekRequest) ([]planning.SendResult, error) {
	date, err := planning.WeekQuery{Date: req.Date, StoreID: req.StoreID}.Parse()
	if err != nil {
		return nil, err
	}

	view, p, err := s.buildWeek(ctx, date, req.StoreID)
	if err != nil {
		return nil, err
	}
	rcpts := recipients(p.employees)
	if len(rcpts) == 0 {
		return nil, planning.ErrNoRecipients
	}

	doc, err := s.renderWeek(ctx, view, p.storeName)
	if err != nil {
		return nil, err
	}

	week := calendar.WeekDates(date)
	start, end := calendar.FormatDisplayDate(week[0]), calendar.FormatDisplayDate(week[6])
	results := toSendResults(s.mailer.SendPlanning(ctx, email.PlanningMail{
		Subject:     "Planning du " + start + " au " + end,
		Template:    email.TemplateWeekly,
		Filename:    doc.Filename,
		PDF:         doc.Content,
		Recipients:  rcpts,
		PeriodStart: start,
		PeriodEnd:   end,
	}))

	logDelivery("weekly", results)
	return results, nil
}

// SendMonthPlanning emails the monthly PDF. A custom subject and content replace
// the default message only when both are given.
func (s *PlanningServiceImpl) SendMonthPlanning(ctx context.Context, req planning.SendMonthRequest) ([]planning.SendResult, error) {
	query := planning.MonthQuery{Year: req.Year, Month: req.Month, StoreID: req.StoreID}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	view, p, err := s.buildMonth(ctx, query)
	if err != nil {
		return nil, err
	}
	rcpts := recipients(p.employees)
	if len(rcpts) == 0 {
		return nil, planning.ErrNoRecipients
	}

	doc, err := s.renderMonth(ctx, view, p.storeName)
	if err != nil {
		return nil, err
	}

	month := time.Month(req.Month)
	first, last := calendar.MonthRange(req.Year, month)
	mail := email.PlanningMail{
		Subject:     "Planning - " + view.Title,
		Template:    email.TemplateMonthly,
		Filename:    doc.Filename,
		PDF:         doc.Content,
		Recipients:  rcpts,
		PeriodStart: calendar.FormatDisplayDate(first),
		PeriodEnd:   calendar.FormatDisplayDate(last),
		Period:      view.Title,
	}
	if !validator.IsBlank(req.Subject) && !validator.IsBlank(req.Content) {
		mail.Subject = *req.Subject
		mail.Template = email.TemplateCustom
		mail.Content = *req.Content
	}

	results := toSendResults(s.mailer.SendPlanning(ctx, mail))

	logDelivery("monthly", results)
	return results, nil
}
