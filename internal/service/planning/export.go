package planning

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/storeplan/planning-backend-go/internal/domain/export"
	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/pkg/calendar"
	"github.com/storeplan/planning-backend-go/internal/pkg/pdf"
)

const (
	pdfContentType = "application/pdf"
	archivePrefix  = "plannings"
	allStoresSlug  = "tous-les-magasins"
)

var frenchWeekdays = [...]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

// weekFilename is planning_DD-MM-YYYY_DD-MM-YYYY.pdf
func weekFilename(monday, sunday time.Time) string {
	return fmt.Sprintf("planning_%s_%s.pdf", monday.Format("02-01-2006"), sunday.Format("02-01-2006"))
}

// monthFilename is planning_mensuel_<month>_<year>.pdf with an ASCII month name.
func monthFilename(year int, month time.Month) string {
	return fmt.Sprintf("planning_mensuel_%s_%d.pdf", slug.Make(calendar.MonthName(month)), year)
}

func formatHours(d decimal.Decimal) string {
	return d.String() + "h"
}

func storeSubtitle(storeName string) string {
	if storeName == "" {
		return ""
	}
	return "Magasin : " + storeName
}

// weekDocument converts a week view into printable rows.
func weekDocument(view planning.WeekView, storeName string) pdf.WeekDocument {
	monday, _ := calendar.ParseDate(view.Monday)
	week := calendar.WeekDates(monday)

	doc := pdf.WeekDocument{
		Title: fmt.Sprintf("Planning - Semaine %d (du %s au %s)",
			view.WeekNumber, calendar.FormatDisplayDate(week[0]), calendar.FormatDisplayDate(week[6])),
		Subtitle: storeSubtitle(storeName),
		Days:     make([]pdf.DayColumn, 0, len(week)),
		Rows:     make([]pdf.WeekRow, 0, len(view.Employees)),
	}

	for i, d := range week {
		hours := view.StoreHours[i]
		doc.Days = append(doc.Days, pdf.DayColumn{
			Header: frenchWeekdays[d.Weekday()] + " " + d.Format("02/01"),
			Hours:  hours.Label,
			Closed: hours.IsClosed,
		})
	}

	for _, e := range view.Employees {
		row := pdf.WeekRow{
			Name:  e.Name,
			Cells: make([]string, 0, len(e.Cells)),
			Total: formatHours(e.TotalHours),
		}
		for _, c := range e.Cells {
			row.Cells = append(row.Cells, c.Label)
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc
}

func monthDocument(view planning.MonthlyTotalsView, storeName string) pdf.MonthDocument {
	doc := pdf.MonthDocument{
		Title:    "Planning - " + view.Title,
		Subtitle: storeSubtitle(storeName),
		Rows:     make([]pdf.TotalRow, 0, len(view.Totals)),
	}
	for _, t := range view.Totals {
		doc.Rows = append(doc.Rows, pdf.TotalRow{Name: t.Name, Total: formatHours(t.TotalHours)})
	}
	return doc
}

// ==================== PDF EXPORT ====================

// ExportWeekPDF implements planning.PlanningService.
func (s *PlanningServiceImpl) ExportWeekPDF(ctx context.Context, query planning.WeekQuery) (planning.Document, error) {
	date, err := query.Parse()
	if err != nil {
		return planning.Document{}, err
	}

	view, p, err := s.buildWeek(ctx, date, query.StoreID)
	if err != nil {
		return planning.Document{}, err
	}
	return s.renderWeek(ctx, view, p.storeName)
}

func (s *PlanningServiceImpl) renderWeek(ctx context.Context, view planning.WeekView, storeName string) (planning.Document, error) {
	if len(view.Employees) == 0 {
		return planning.Document{}, planning.ErrEmptyDocument
	}

	content, err := s.renderer.RenderWeek(weekDocument(view, storeName))
	if err != nil {
		return planning.Document{}, err
	}

	monday, _ := calendar.ParseDate(view.Monday)
	week := calendar.WeekDates(monday)
	doc := planning.Document{
		Filename:    weekFilename(week[0], week[6]),
		ContentType: pdfContentType,
		Content:     content,
	}
	doc.URL = s.archive(ctx, export.Export{
		Kind:        export.KindWeekly,
		StoreID:     view.StoreID,
		PeriodStart: week[0],
		PeriodEnd:   week[6],
	}, storeName, doc)

	return doc, nil
}

// ExportMonthPDF implements planning.PlanningService.
func (s *PlanningServiceImpl) ExportMonthPDF(ctx context.Context, query planning.MonthQuery) (planning.Document, error) {
	if err := query.Validate(); err != nil {
		return planning.Document{}, err
	}

	view, p, err := s.buildMonth(ctx, query)
	if err != nil {
		return planning.Document{}, err
	}
	return s.renderMonth(ctx, view, p.storeName)
}

func (s *PlanningServiceImpl) renderMonth(ctx context.Context, view planning.MonthlyTotalsView, storeName string) (planning.Document, error) {
	if len(view.Totals) == 0 {
		return planning.Document{}, planning.ErrEmptyDocument
	}

	content, err := s.renderer.RenderMonth(monthDocument(view, storeName))
	if err != nil {
		return planning.Document{}, err
	}

	month := time.Month(view.Month)
	first, last := calendar.MonthRange(view.Year, month)
	doc := planning.Document{
		Filename:    monthFilename(view.Year, month),
		ContentType: pdfContentType,
		Content:     content,
	}
	doc.URL = s.archive(ctx, export.Export{
		Kind:        export.KindMonthly,
		StoreID:     view.StoreID,
		PeriodStart: first,
		PeriodEnd:   last,
	}, storeName, doc)

	return doc, nil
}

// archive keeps a copy of doc in file storage and returns its download URL.
// Archiving failures are logged and yield an empty URL; the document itself is still returned.
func (s *PlanningServiceImpl) archive(ctx context.Context, rec export.Export, storeName string, doc planning.Document) string {
	if s.files == nil {
		return ""
	}

	scope := allStoresSlug
	if storeName != "" {
		scope = slug.Make(storeName)
	}
	key := path.Join(
		archivePrefix,
		string(rec.Kind),
		scope,
		fmt.Sprintf("%d_%s", time.Now().UnixNano(), strings.ToLower(doc.Filename)),
	)

	storedKey, err := s.files.Upload(ctx, bytes.NewReader(doc.Content), key, doc.ContentType)
	if err != nil {
		slog.Error("Failed to archive planning PDF", "key", key, "error", err)
		return ""
	}

	rec.Path = storedKey
	rec.SizeBytes = int64(len(doc.Content))
	if _, err := s.repos.Exports.Create(ctx, rec); err != nil {
		slog.Error("Failed to record planning export", "key", storedKey, "error", err)
		if delErr := s.files.Delete(ctx, storedKey); delErr != nil {
			slog.Warn("Failed to remove unrecorded planning PDF", "key", storedKey, "error", delErr)
		}
		return ""
	}

	url, err := s.files.GetURL(ctx, storedKey, s.opts.URLExpiry)
	if err != nil {
		slog.Warn("Failed to build planning PDF URL", "key", storedKey, "error", err)
		return ""
	}
	return url
}
