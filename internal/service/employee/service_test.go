package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionEmployee_Defaults(t *testing.T) {
	svc := NewEmployeeService(memory.NewStore().Employees())

	resp, err := svc.ProvisionEmployee(context.Background(), employee.ProvisionEmployeeRequest{
		ExternalID: "idp-1",
		Email:      " Alice@Example.com ",
		FullName:   "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, employee.RoleEmployee, resp.Role)
	assert.Equal(t, employee.StatusActive, resp.Status)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.True(t, resp.HourlyRate.IsZero())
	assert.True(t, decimal.NewFromInt(40).Equal(resp.MaxHoursBeforeOvertime))
}

func TestProvisionEmployee_IdempotentOnExternalID(t *testing.T) {
	svc := NewEmployeeService(memory.NewStore().Employees())
	ctx := context.Background()
	req := employee.ProvisionEmployeeRequest{ExternalID: "idp-1", Email: "a@example.com", FullName: "Alice", Role: "admin"}

	first, err := svc.ProvisionEmployee(ctx, req)
	require.NoError(t, err)
	second, err := svc.ProvisionEmployee(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, employee.RoleAdmin, second.Role)

	_, err = svc.ProvisionEmployee(ctx, employee.ProvisionEmployeeRequest{ExternalID: "idp-2", Email: "a@example.com", FullName: "Other"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestProvisionEmployee_Validation(t *testing.T) {
	svc := NewEmployeeService(memory.NewStore().Employees())

	_, err := svc.ProvisionEmployee(context.Background(), employee.ProvisionEmployeeRequest{
		ExternalID: "idp-1", Email: "not-an-email", FullName: "Alice", Role: "owner",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "role")
}

func TestUpdateRate_KeepsOneHistoricalRate(t *testing.T) {
	store := memory.NewStore()
	svc := NewEmployeeService(store.Employees())
	ctx := context.Background()

	rate := decimal.NewFromInt(20)
	emp, err := svc.ProvisionEmployee(ctx, employee.ProvisionEmployeeRequest{
		ExternalID: "idp-1", Email: "a@example.com", FullName: "Alice", HourlyRate: &rate,
	})
	require.NoError(t, err)

	_, err = svc.UpdateRate(ctx, employee.UpdateRateRequest{EmployeeID: emp.ID, HourlyRate: decimal.NewFromInt(25), EffectiveDate: "2025-01-13"})
	require.NoError(t, err)
	updated, err := svc.UpdateRate(ctx, employee.UpdateRateRequest{EmployeeID: emp.ID, HourlyRate: decimal.NewFromInt(30), EffectiveDate: "2025-02-01"})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(30).Equal(updated.HourlyRate))
	require.NotNil(t, updated.PreviousRate)
	assert.True(t, decimal.NewFromInt(25).Equal(*updated.PreviousRate))
	require.NotNil(t, updated.RateEffectiveDate)
	assert.Equal(t, "2025-02-01", *updated.RateEffectiveDate)
}

func TestUpdateRate_Errors(t *testing.T) {
	svc := NewEmployeeService(memory.NewStore().Employees())
	ctx := context.Background()

	_, err := svc.UpdateRate(ctx, employee.UpdateRateRequest{EmployeeID: "missing", HourlyRate: decimal.NewFromInt(10), EffectiveDate: "2025-01-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.UpdateRate(ctx, employee.UpdateRateRequest{EmployeeID: "missing", HourlyRate: decimal.NewFromInt(-1)})
	assert.Error(t, err)
}

func TestListEmployees_Filters(t *testing.T) {
	svc := NewEmployeeService(memory.NewStore().Employees())
	ctx := context.Background()

	for _, req := range []employee.ProvisionEmployeeRequest{
		{ExternalID: "1", Email: "b@example.com", FullName: "Bob", Role: "admin"},
		{ExternalID: "2", Email: "a@example.com", FullName: "Alice"},
	} {
		_, err := svc.ProvisionEmployee(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all[0].FullName)

	admin := employee.RoleAdmin
	admins, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Role: &admin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "Bob", admins[0].FullName)

	bogus := employee.Status("fired")
	_, err = svc.ListEmployees(ctx, employee.EmployeeFilter{Status: &bogus})
	assert.ErrorIs(t, err, employee.ErrInvalidStatus)
}
