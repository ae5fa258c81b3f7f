package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/domain/employee"
	"github.com/storeplan/planning-backend-go/internal/domain/export"
	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/database"
	"github.com/storeplan/planning-backend-go/internal/pkg/email"
	"github.com/storeplan/planning-backend-go/internal/pkg/pdf"
	"github.com/storeplan/planning-backend-go/internal/pkg/storage"
	"golang.org/x/sync/errgroup"
)

// Repositories groups the data sources the planning service reads and writes.
type Repositories struct {
	Employees    employee.EmployeeRepository
	Stores       store.StoreRepository
	TimeSlots    timeslot.TimeSlotRepository
	AbsenceTypes absence.AbsenceTypeRepository
	Schedules    schedule.ScheduleRepository
	StoreHours   storehours.StoreHoursRepository
	Exports      export.ExportRepository
}

type Options struct {
	DefaultHours           storehours.DefaultHours
	MonthlyDefaultClosures bool
	// URLExpiry is the lifetime of download links to archived PDFs.
	URLExpiry time.Duration
}

type PlanningServiceImpl struct {
	transactor database.Transactor
	repos      Repositories
	files      storage.FileStorage
	renderer   *pdf.Renderer
	mailer     email.Mailer
	opts       Options
}

// NewPlanningService wires the planning operations. files may be nil, in which
// case exported PDFs are not archived.
func NewPlanningService(
	transactor database.Transactor,
	repos Repositories,
	files storage.FileStorage,
	renderer *pdf.Renderer,
	mailer email.Mailer,
	opts Options,
) planning.PlanningService {
	if opts.DefaultHours == nil {
		opts.DefaultHours = storehours.StandardDefaultHours()
	}
	if opts.URLExpiry <= 0 {
		opts.URLExpiry = 24 * time.Hour
	}
	return &PlanningServiceImpl{
		transactor: transactor,
		repos:      repos,
		files:      files,
		renderer:   renderer,
		mailer:     mailer,
		opts:       opts,
	}
}

// period is the data of one date range and store scope.
type period struct {
	agg       *Aggregator
	employees []employee.Employee
	storeName string
}

// load reads every input of the aggregation concurrently.
func (s *PlanningServiceImpl) load(ctx context.Context, start, end time.Time, storeID *string) (period, error) {
	var (
		p     period
		input = AggregatorInput{
			Defaults:               s.opts.DefaultHours,
			StoreID:                storeID,
			MonthlyDefaultClosures: s.opts.MonthlyDefaultClosures,
		}
	)

	g, ctx := errgroup.WithContext(ctx)

	if storeID != nil {
		g.Go(func() error {
			st, err := s.repos.Stores.GetByID(ctx, *storeID)
			if err != nil {
				return err
			}
			p.storeName = st.Name
			return nil
		})
	}
	g.Go(func() error {
		employees, err := s.repos.Employees.List(ctx, employee.EmployeeFilter{StoreID: storeID})
		if err != nil {
			return fmt.Errorf("failed to load employees: %w", err)
		}
		p.employees = employees
		return nil
	})
	g.Go(func() error {
		slots, err := s.repos.TimeSlots.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load time slots: %w", err)
		}
		input.TimeSlots = slots
		return nil
	})
	g.Go(func() error {
		types, err := s.repos.AbsenceTypes.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load absence types: %w", err)
		}
		input.AbsenceTypes = types
		return nil
	})
	g.Go(func() error {
		schedules, err := s.repos.Schedules.GetRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to load schedules: %w", err)
		}
		input.Schedules = schedules
		return nil
	})
	g.Go(func() error {
		hours, err := s.repos.StoreHours.GetRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to load store hours: %w", err)
		}
		input.StoreHours = hours
		return nil
	})

	if err := g.Wait(); err != nil {
		return period{}, err
	}

	p.agg = NewAggregator(input)
	return p, nil
}

// ==================== VIEWS ====================

// GetWeek implements planning.PlanningService.
func (s *PlanningServiceImpl) GetWeek(ctx context.Context, query planning.WeekQuery) (planning.WeekView, error) {
	date, err := query.Parse()
	if err != nil {
		return planning.WeekView{}, err
	}

	view, _, err := s.buildWeek(ctx, date, query.StoreID)
	return view, err
}

func (s *PlanningServiceImpl) buildWeek(ctx context.Context, date time.Time, storeID *string) (planning.WeekView, period, error) {
	week := calendar.WeekDates(date)

	p, err := s.load(ctx, week[0], week[6], storeID)
	if err != nil {
		return planning.WeekView{}, period{}, err
	}

	view := planning.WeekView{
		// Numbered from the Monday, so a Sunday date keeps the number of its own week.
		WeekNumber: calendar.WeekNumber(week[0]),
		Monday:     calendar.FormatDate(week[0]),
		StoreID:    storeID,
		Dates:      make([]string, 0, len(week)),
		StoreHours: make([]planning.DayHours, 0, len(week)),
		Employees:  make([]planning.EmployeeRow, 0, len(p.employees)),
	}
	for _, d := range week {
		view.Dates = append(view.Dates, calendar.FormatDate(d))
		view.StoreHours = append(view.StoreHours, p.agg.DayHours(d))
	}

	for _, e := range p.employees {
		row := planning.EmployeeRow{
			EmployeeID: e.ID,
			Name:       e.Name,
			Email:      e.Email,
			Cells:      make([]planning.CellView, 0, len(week)),
			TotalHours: p.agg.WeeklyTotal(e.ID, week),
		}
		for _, d := range week {
			row.Cells = append(row.Cells, p.agg.CellView(e.ID, d))
		}
		view.Employees = append(view.Employees, row)
	}

	return view, p, nil
}

// GetMonthlyTotals implements planning.PlanningService.
func (s *PlanningServiceImpl) GetMonthlyTotals(ctx context.Context, query planning.MonthQuery) (planning.MonthlyTotalsView, error) {
	if err := query.Validate(); err != nil {
		return planning.MonthlyTotalsView{}, err
	}

	view, _, err := s.buildMonth(ctx, query)
	return view, err
}

func (s *PlanningServiceImpl) buildMonth(ctx context.Context, query planning.MonthQuery) (planning.MonthlyTotalsView, period, error) {
	month := time.Month(query.Month)
	first, last := calendar.MonthRange(query.Year, month)

	p, err := s.load(ctx, first, last, query.StoreID)
	if err != nil {
		return planning.MonthlyTotalsView{}, period{}, err
	}

	view := planning.MonthlyTotalsView{
		Year:      query.Year,
		Month:     query.Month,
		Title:     calendar.MonthTitle(query.Year, month),
		StartDate: calendar.FormatDate(first),
		EndDate:   calendar.FormatDate(last),
		StoreID:   query.StoreID,
		Totals:    make([]planning.EmployeeTotal, 0, len(p.employees)),
	}
	for _, e := range p.employees {
		view.Totals = append(view.Totals, planning.EmployeeTotal{
			EmployeeID: e.ID,
			Name:       e.Name,
			TotalHours: p.agg.MonthlyTotal(e.ID, query.Year, month),
		})
	}

	return view, p, nil
}
