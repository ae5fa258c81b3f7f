package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists employees ordered by name, optionally for a single store
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee; their schedules are kept
	DeleteEmployee(ctx context.Context, id string) error
}
