package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// WeekDocument is a fully resolved weekly planning grid.
type WeekDocument struct {
	Title    string
	Subtitle string
	Days     []DayColumn
	Rows     []WeekRow
}

type DayColumn struct {
	Header string // e.g. "Lun 01/01"
	Hours  string // opening hours or "Fermé"
	Closed bool
}

type WeekRow struct {
	Name  string
	Cells []string
	Total string
}

// MonthDocument lists the monthly total of each employee.
type MonthDocument struct {
	Title    string
	Subtitle string
	Rows     []TotalRow
}

type TotalRow struct {
	Name  string
	Total string
}

const (
	pageMargin   = 10.0
	rowHeight    = 8.0
	nameWidth    = 45.0
	totalWidth   = 22.0
	fontFamily   = "Helvetica"
	closedLabel  = "Fermé"
	headerHeight = 9.0
)

// Renderer draws planning documents on landscape A4 pages.
type Renderer struct {
	Author string
}

func NewRenderer(author string) *Renderer {
	return &Renderer{Author: author}
}

func (r *Renderer) newDocument(title string) (*fpdf.Fpdf, func(string) string) {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	doc.SetTitle(title, true)
	doc.SetAuthor(r.Author, true)
	doc.SetCreator("planning-backend", true)
	return doc, doc.UnicodeTranslatorFromDescriptor("")
}

func writeTitle(doc *fpdf.Fpdf, tr func(string) string, title, subtitle string) {
	doc.SetFont(fontFamily, "B", 16)
	doc.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	if subtitle != "" {
		doc.SetFont(fontFamily, "", 11)
		doc.CellFormat(0, 7, tr(subtitle), "", 1, "L", false, 0, "")
	}
	doc.Ln(2)
}

// RenderWeek returns the PDF bytes of a weekly planning.
func (r *Renderer) RenderWeek(d WeekDocument) ([]byte, error) {
	doc, tr := r.newDocument(d.Title)
	pageWidth, pageHeight := doc.GetPageSize()

	dayWidth := 0.0
	if len(d.Days) > 0 {
		dayWidth = (pageWidth - 2*pageMargin - nameWidth - totalWidth) / float64(len(d.Days))
	}

	header := func() {
		doc.SetFont(fontFamily, "B", 9)
		doc.SetFillColor(226, 232, 240)
		doc.CellFormat(nameWidth, headerHeight, tr("Employé"), "1", 0, "C", true, 0, "")
		for _, day := range d.Days {
			doc.CellFormat(dayWidth, headerHeight, tr(day.Header), "1", 0, "C", true, 0, "")
		}
		doc.CellFormat(totalWidth, headerHeight, "Total", "1", 1, "C", true, 0, "")

		// store hours row
		doc.SetFont(fontFamily, "I", 8)
		doc.SetFillColor(248, 250, 252)
		doc.CellFormat(nameWidth, rowHeight, tr("Magasin"), "1", 0, "L", true, 0, "")
		for _, day := range d.Days {
			label := day.Hours
			if day.Closed {
				label = closedLabel
			}
			doc.CellFormat(dayWidth, rowHeight, tr(label), "1", 0, "C", true, 0, "")
		}
		doc.CellFormat(totalWidth, rowHeight, "", "1", 1, "C", true, 0, "")
	}

	doc.AddPage()
	writeTitle(doc, tr, d.Title, d.Subtitle)
	header()

	for _, row := range d.Rows {
		if doc.GetY()+rowHeight > pageHeight-pageMargin {
			doc.AddPage()
			header()
		}

		doc.SetFont(fontFamily, "", 9)
		doc.CellFormat(nameWidth, rowHeight, tr(row.Name), "1", 0, "L", false, 0, "")
		for i, day := range d.Days {
			text := ""
			if i < len(row.Cells) {
				text = row.Cells[i]
			}
			if day.Closed {
				doc.SetFillColor(209, 213, 219)
			}
			doc.CellFormat(dayWidth, rowHeight, tr(text), "1", 0, "C", day.Closed, 0, "")
		}
		doc.SetFont(fontFamily, "B", 9)
		doc.CellFormat(totalWidth, rowHeight, tr(row.Total), "1", 1, "C", false, 0, "")
	}

	return output(doc)
}

// RenderMonth returns the PDF bytes of a monthly totals sheet.
func (r *Renderer) RenderMonth(d MonthDocument) ([]byte, error) {
	doc, tr := r.newDocument(d.Title)
	_, pageHeight := doc.GetPageSize()
	const (
		employeeWidth = 120.0
		hoursWidth    = 40.0
	)

	header := func() {
		doc.SetFont(fontFamily, "B", 10)
		doc.SetFillColor(226, 232, 240)
		doc.CellFormat(employeeWidth, headerHeight, tr("Employé"), "1", 0, "L", true, 0, "")
		doc.CellFormat(hoursWidth, headerHeight, "Total", "1", 1, "C", true, 0, "")
	}

	doc.AddPage()
	writeTitle(doc, tr, d.Title, d.Subtitle)
	header()

	doc.SetFont(fontFamily, "", 10)
	for _, row := range d.Rows {
		if doc.GetY()+rowHeight > pageHeight-pageMargin {
			doc.AddPage()
			header()
			doc.SetFont(fontFamily, "", 10)
		}
		doc.CellFormat(employeeWidth, rowHeight, tr(row.Name), "1", 0, "L", false, 0, "")
		doc.CellFormat(hoursWidth, rowHeight, tr(row.Total), "1", 1, "C", false, 0, "")
	}

	return output(doc)
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
