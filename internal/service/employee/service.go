package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/money"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	if filter.Status != nil {
		switch *filter.Status {
		case employee.StatusActive, employee.StatusInactive, employee.StatusOnLeave:
		default:
			return nil, employee.ErrInvalidStatus
		}
	}
	if filter.Role != nil && *filter.Role != employee.RoleEmployee && *filter.Role != employee.RoleAdmin {
		return nil, employee.ErrInvalidRole
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		resp = append(resp, employee.ToResponse(emp))
	}
	return resp, nil
}

// ProvisionEmployee is idempotent on ExternalID so redelivered webhooks return the
// existing record.
func (s *EmployeeServiceImpl) ProvisionEmployee(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByExternalID(ctx, req.ExternalID)
	if err == nil {
		slog.InfoContext(ctx, "Employee already provisioned", "external_id", req.ExternalID, "employee_id", existing.ID)
		return employee.ToResponse(existing), nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	role := employee.RoleEmployee
	if req.Role != "" {
		role = employee.Role(req.Role)
	}
	rate := decimal.Zero
	if req.HourlyRate != nil {
		rate = money.Round(*req.HourlyRate)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		ExternalID:             req.ExternalID,
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:               strings.TrimSpace(req.FullName),
		Role:                   role,
		Status:                 employee.StatusActive,
		HourlyRate:             rate,
		MaxHoursBeforeOvertime: employee.DefaultMaxHoursBeforeOvertime,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "Employee provisioned", "employee_id", created.ID, "external_id", created.ExternalID, "role", created.Role)
	return employee.ToResponse(created), nil
}

// UpdateRate keeps a single historical rate: the current rate moves to PreviousRate.
func (s *EmployeeServiceImpl) UpdateRate(ctx context.Context, req employee.UpdateRateRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	effective, _ := timeutil.ParseDate(req.EffectiveDate)

	updated, err := s.employeeRepo.UpdateRate(ctx, req.EmployeeID, money.Round(req.HourlyRate), effective)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "Hourly rate updated",
		"employee_id", updated.ID,
		"hourly_rate", updated.HourlyRate.StringFixed(2),
		"effective_date", req.EffectiveDate,
	)
	return employee.ToResponse(updated), nil
}
