package employee

import (
	"context"
)

// EmployeeService defines business logic for employee records
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists employees with optional status/role filters (admin only)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	// ProvisionEmployee creates an employee for a new identity-provider user
	ProvisionEmployee(ctx context.Context, req ProvisionEmployeeRequest) (EmployeeResponse, error)

	// UpdateRate records a rate change effective from the given date (admin only)
	UpdateRate(ctx context.Context, req UpdateRateRequest) (EmployeeResponse, error)
}
