package employee

import (
	"strings"

	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	StoreID   *string `json:"store_id,omitempty"`
	StoreName *string `json:"store_name,omitempty"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		StoreID:   e.StoreID,
		StoreName: e.StoreName,
	}
}

type EmployeeFilter struct {
	StoreID *string
}

func (f EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.StoreID != nil && !validator.IsValidUUID(*f.StoreID) {
		errs.Add("store_id", "store_id must be a valid UUID")
	}
	return errs.Err()
}

type CreateEmployeeRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	StoreID *string `json:"store_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Email = normalizeOptional(r.Email)
	r.StoreID = normalizeOptional(r.StoreID)

	var errs validator.ValidationErrors

	// Name
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	// Email
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	// Store
	if r.StoreID != nil && !validator.IsValidUUID(*r.StoreID) {
		errs.Add("store_id", "store_id must be a valid UUID")
	}

	return errs.Err()
}

// UpdateEmployeeRequest replaces every editable field of the employee.
type UpdateEmployeeRequest struct {
	ID      string  `json:"-"`
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	StoreID *string `json:"store_id,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	create := CreateEmployeeRequest{Name: r.Name, Email: r.Email, StoreID: r.StoreID}
	if err := create.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	r.Email, r.StoreID = create.Email, create.StoreID

	return errs.Err()
}

// normalizeOptional turns blank optional strings into nil.
func normalizeOptional(s *string) *string {
	if validator.IsBlank(s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
