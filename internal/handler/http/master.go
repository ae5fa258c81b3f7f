package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/handler/http/response"
	"github.com/storeplan/planning-backend-go/internal/service/master"
)

type MasterHandler interface {
	// Store handlers
	CreateStore(w http.ResponseWriter, r *http.Request)
	GetStore(w http.ResponseWriter, r *http.Request)
	ListStores(w http.ResponseWriter, r *http.Request)
	UpdateStore(w http.ResponseWriter, r *http.Request)
	DeleteStore(w http.ResponseWriter, r *http.Request)

	// Time slot handlers
	CreateTimeSlot(w http.ResponseWriter, r *http.Request)
	GetTimeSlot(w http.ResponseWriter, r *http.Request)
	ListTimeSlots(w http.ResponseWriter, r *http.Request)
	UpdateTimeSlot(w http.ResponseWriter, r *http.Request)
	DeleteTimeSlot(w http.ResponseWriter, r *http.Request)

	// Absence type handlers
	CreateAbsenceType(w http.ResponseWriter, r *http.Request)
	GetAbsenceType(w http.ResponseWriter, r *http.Request)
	ListAbsenceTypes(w http.ResponseWriter, r *http.Request)
	UpdateAbsenceType(w http.ResponseWriter, r *http.Request)
	DeleteAbsenceType(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== STORE HANDLERS ====================

func (h *masterHandlerImpl) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req store.CreateStoreRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateStore(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Store created successfully", result)
}

func (h *masterHandlerImpl) GetStore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.masterService.GetStore(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListStores(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListStores(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateStore(w http.ResponseWriter, r *http.Request) {
	var req store.UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateStore(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Store updated successfully", result)
}

func (h *masterHandlerImpl) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteStore(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Store deleted successfully", nil)
}

// ==================== TIME SLOT HANDLERS ====================

func (h *masterHandlerImpl) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req timeslot.TimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateTimeSlot(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time slot created successfully", result)
}

func (h *masterHandlerImpl) GetTimeSlot(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetTimeSlot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListTimeSlots(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req timeslot.TimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateTimeSlot(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time slot updated successfully", result)
}

func (h *masterHandlerImpl) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteTimeSlot(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time slot deleted successfully", nil)
}

// ==================== ABSENCE TYPE HANDLERS ====================

func (h *masterHandlerImpl) CreateAbsenceType(w http.ResponseWriter, r *http.Request) {
	var req absence.CreateAbsenceTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateAbsenceType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence type created successfully", result)
}

func (h *masterHandlerImpl) GetAbsenceType(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetAbsenceType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListAbsenceTypes(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListAbsenceTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateAbsenceType(w http.ResponseWriter, r *http.Request) {
	var req absence.UpdateAbsenceTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateAbsenceType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence type updated successfully", result)
}

func (h *masterHandlerImpl) DeleteAbsenceType(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteAbsenceType(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence type deleted successfully", nil)
}
