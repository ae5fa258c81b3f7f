package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/handler/http/response"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

type ScheduleHandler interface {
	ListSchedules(w http.ResponseWriter, r *http.Request)
	UpsertSchedule(w http.ResponseWriter, r *http.Request)
	DeleteSchedule(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// ListSchedules returns every stored cell between ?start and ?end inclusive.
func (h *scheduleHandlerImpl) ListSchedules(w http.ResponseWriter, r *http.Request) {
	filter := schedule.ScheduleFilter{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}

	results, err := h.scheduleService.ListRange(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *scheduleHandlerImpl) UpsertSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule saved successfully", result)
}

func (h *scheduleHandlerImpl) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	if err := h.scheduleService.Delete(r.Context(), chi.URLParam(r, "employeeID"), date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule reset to default", nil)
}
