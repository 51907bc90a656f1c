package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	store *Store
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetByExternalID(_ context.Context, externalID string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.employees {
		if e.ExternalID == externalID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []employee.Employee
	for _, e := range r.store.employees {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.Role != nil && e.Role != *filter.Role {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *employeeRepository) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.employees {
		if e.ExternalID != "" && existing.ExternalID == e.ExternalID {
			return employee.Employee{}, employee.ErrExternalIDExists
		}
		if e.Email != "" && existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	r.store.employees[e.ID] = e
	return e, nil
}

func (r *employeeRepository) UpdateRate(_ context.Context, id string, newRate decimal.Decimal, effectiveDate time.Time) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	previous := e.HourlyRate
	e.PreviousRate = &previous
	e.HourlyRate = newRate
	e.RateEffectiveDate = &effectiveDate
	e.UpdatedAt = time.Now().UTC()
	r.store.employees[id] = e
	return e, nil
}
