package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/handler/http/response"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

// archiveURLHeader carries the download link of the archived copy of an exported PDF.
const archiveURLHeader = "X-Archive-URL"

type PlanningHandler interface {
	GetWeek(w http.ResponseWriter, r *http.Request)
	GetMonthlyTotals(w http.ResponseWriter, r *http.Request)
	CopyWeek(w http.ResponseWriter, r *http.Request)
	DeleteWeek(w http.ResponseWriter, r *http.Request)
	ExportWeekPDF(w http.ResponseWriter, r *http.Request)
	ExportMonthPDF(w http.ResponseWriter, r *http.Request)
	SendWeekPlanning(w http.ResponseWriter, r *http.Request)
	SendMonthPlanning(w http.ResponseWriter, r *http.Request)
}

type planningHandlerImpl struct {
	planningService planning.PlanningService
}

func NewPlanningHandler(planningService planning.PlanningService) PlanningHandler {
	return &planningHandlerImpl{
		planningService: planningService,
	}
}

func weekQuery(r *http.Request) planning.WeekQuery {
	return planning.WeekQuery{
		Date:    r.URL.Query().Get("date"),
		StoreID: optionalQuery(r, "store_id"),
	}
}

// monthQuery leaves unparsable numbers at zero so validation reports them.
func monthQuery(r *http.Request) planning.MonthQuery {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	return planning.MonthQuery{
		Year:    year,
		Month:   month,
		StoreID: optionalQuery(r, "store_id"),
	}
}

// ==================== VIEWS ====================

func (h *planningHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	view, err := h.planningService.GetWeek(r.Context(), weekQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

func (h *planningHandlerImpl) GetMonthlyTotals(w http.ResponseWriter, r *http.Request) {
	view, err := h.planningService.GetMonthlyTotals(r.Context(), monthQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// ==================== WEEK OPERATIONS ====================

func (h *planningHandlerImpl) CopyWeek(w http.ResponseWriter, r *http.Request) {
	var req planning.CopyWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.planningService.CopyWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week copied successfully", result)
}

func (h *planningHandlerImpl) DeleteWeek(w http.ResponseWriter, r *http.Request) {
	monday, ok := validator.IsValidDate(chi.URLParam(r, "monday"))
	if !ok {
		response.BadRequest(w, "monday must be in YYYY-MM-DD format", nil)
		return
	}

	if err := h.planningService.DeleteWeek(r.Context(), monday); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week deleted successfully", nil)
}

// ==================== EXPORTS ====================

func (h *planningHandlerImpl) ExportWeekPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.planningService.ExportWeekPDF(r.Context(), weekQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeDocument(w, doc)
}

func (h *planningHandlerImpl) ExportMonthPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.planningService.ExportMonthPDF(r.Context(), monthQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeDocument(w, doc)
}

func writeDocument(w http.ResponseWriter, doc planning.Document) {
	if doc.URL != "" {
		w.Header().Set(archiveURLHeader, doc.URL)
	}
	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}

// ==================== EMAIL ====================

func (h *planningHandlerImpl) SendWeekPlanning(w http.ResponseWriter, r *http.Request) {
	var req planning.SendWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	results, err := h.planningService.SendWeekPlanning(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, sendMessage(results), results)
}

func (h *planningHandlerImpl) SendMonthPlanning(w http.ResponseWriter, r *http.Request) {
	var req planning.SendMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	results, err := h.planningService.SendMonthPlanning(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, sendMessage(results), results)
}

func sendMessage(results []planning.SendResult) string {
	sent := 0
	for _, result := range results {
		if result.Success {
			sent++
		}
	}
	return strconv.Itoa(sent) + "/" + strconv.Itoa(len(results)) + " planning emails sent"
}
