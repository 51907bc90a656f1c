package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const employeeColumns = `id, external_id, email, full_name, role, status, hourly_rate, previous_rate,
	rate_effective_date, max_hours_before_overtime, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.ExternalID, &e.Email, &e.FullName, &e.Role, &e.Status, &e.HourlyRate, &e.PreviousRate,
		&e.RateEffectiveDate, &e.MaxHoursBeforeOvertime, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByExternalID(ctx context.Context, externalID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE external_id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by external id: %w", err)
	}
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *filter.Role)
		argIdx++
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY full_name, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (external_id, email, full_name, role, status, hourly_rate, max_hours_before_overtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ExternalID, newEmployee.Email, newEmployee.FullName, newEmployee.Role,
		newEmployee.Status, newEmployee.HourlyRate, newEmployee.MaxHoursBeforeOvertime,
	))
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "uk_employees_external_id"):
			return employee.Employee{}, employee.ErrExternalIDExists
		case strings.Contains(err.Error(), "uk_employees_email"):
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (r *employeeRepositoryImpl) UpdateRate(ctx context.Context, id string, newRate decimal.Decimal, effectiveDate time.Time) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET previous_rate = hourly_rate, hourly_rate = $1, rate_effective_date = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query, newRate, effectiveDate, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update rate for employee %s: %w", id, err)
	}
	return updated, nil
}
