package absence

import "github.com/storeplan/planning-backend-go/internal/pkg/validator"

type AbsenceTypeResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func NewAbsenceTypeResponse(a AbsenceType) AbsenceTypeResponse {
	return AbsenceTypeResponse{ID: a.ID, Label: a.Label}
}

type CreateAbsenceTypeRequest struct {
	Label string `json:"label"`
}

func (r *CreateAbsenceTypeRequest) Validate() error {
	return validateLabel(r.Label)
}

type UpdateAbsenceTypeRequest struct {
	ID    string `json:"-"`
	Label string `json:"label"`
}

func (r *UpdateAbsenceTypeRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if err := validateLabel(r.Label); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	return errs.Err()
}

func validateLabel(label string) error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(label) {
		errs.Add("label", "label is required")
	}
	if len(label) > 50 {
		errs.Add("label", "label must not exceed 50 characters")
	}
	return errs.Err()
}
