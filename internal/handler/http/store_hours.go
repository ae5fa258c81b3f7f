package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/handler/http/response"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

type StoreHoursHandler interface {
	ListStoreHours(w http.ResponseWriter, r *http.Request)
	UpsertStoreHours(w http.ResponseWriter, r *http.Request)
	DeleteStoreHours(w http.ResponseWriter, r *http.Request)
}

type storeHoursHandlerImpl struct {
	storeHoursService storehours.StoreHoursService
}

func NewStoreHoursHandler(storeHoursService storehours.StoreHoursService) StoreHoursHandler {
	return &storeHoursHandlerImpl{
		storeHoursService: storeHoursService,
	}
}

func (h *storeHoursHandlerImpl) ListStoreHours(w http.ResponseWriter, r *http.Request) {
	filter := storehours.StoreHoursFilter{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
		StoreID:   optionalQuery(r, "store_id"),
	}

	results, err := h.storeHoursService.GetRange(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *storeHoursHandlerImpl) UpsertStoreHours(w http.ResponseWriter, r *http.Request) {
	var req storehours.UpsertStoreHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Date = chi.URLParam(r, "date")

	result, err := h.storeHoursService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Store hours saved successfully", result)
}

// DeleteStoreHours removes the override of {date}; a missing override is not an error.
func (h *storeHoursHandlerImpl) DeleteStoreHours(w http.ResponseWriter, r *http.Request) {
	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	if err := h.storeHoursService.Delete(r.Context(), date, optionalQuery(r, "store_id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Store hours reset to default", nil)
}
