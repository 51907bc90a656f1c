package auth

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
)

type IdentityServiceImpl struct {
	employeeService employee.EmployeeService
}

func NewIdentityService(employeeService employee.EmployeeService) auth.IdentityService {
	return &IdentityServiceImpl{employeeService: employeeService}
}

func (s *IdentityServiceImpl) HandleEvent(ctx context.Context, event auth.IdentityEvent) (auth.IdentityEventResponse, error) {
	resp := auth.IdentityEventResponse{EventID: event.ID}

	if event.Type != auth.EventUserCreated {
		slog.InfoContext(ctx, "Ignoring identity event", "event_id", event.ID, "type", event.Type)
		return resp, nil
	}
	if event.Data == nil {
		return resp, auth.ErrEmployeeNotProvided
	}

	emp, err := s.employeeService.ProvisionEmployee(ctx, employee.ProvisionEmployeeRequest{
		ExternalID: event.Data.ID,
		Email:      event.Data.PrimaryEmail(),
		FullName:   event.Data.FullName(),
		Role:       event.Data.PublicMetadata.Role,
		HourlyRate: event.Data.PublicMetadata.HourlyRate,
	})
	if err != nil {
		return resp, err
	}

	resp.Handled = true
	resp.EmployeeID = emp.ID
	return resp, nil
}
