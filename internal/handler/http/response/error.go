package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/domain/auth"
	"github.com/storeplan/planning-backend-go/internal/domain/employee"
	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/domain/schedule"
	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/pkg/storage"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrLoginDisabled):
		ServiceUnavailable(w, "Manager login is not configured")

	// Registry errors
	case errors.Is(err, store.ErrStoreNotFound), errors.Is(err, employee.ErrStoreNotFound):
		NotFound(w, "Store not found")
	case errors.Is(err, store.ErrStoreNameExists):
		Conflict(w, "A store with this name already exists")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, timeslot.ErrTimeSlotNotFound):
		NotFound(w, "Time slot not found")
	case errors.Is(err, timeslot.ErrTimeSlotExists):
		Conflict(w, "A time slot with these hours already exists")
	case errors.Is(err, absence.ErrAbsenceTypeNotFound):
		NotFound(w, "Absence type not found")
	case errors.Is(err, absence.ErrAbsenceTypeLabelExists):
		Conflict(w, "An absence type with this label already exists")

	// Planning errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, storehours.ErrTimeSlotRequired), errors.Is(err, storehours.ErrInvalidOpeningHours):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, planning.ErrNotMonday):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, planning.ErrNoRecipients):
		UnprocessableEntity(w, "NO_RECIPIENTS", err.Error())
	case errors.Is(err, planning.ErrEmptyDocument):
		UnprocessableEntity(w, "EMPTY_DOCUMENT", err.Error())

	// Storage errors
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
