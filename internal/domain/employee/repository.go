package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByExternalID(ctx context.Context, externalID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// UpdateRate moves the current rate to previous_rate and stamps the effective date.
	UpdateRate(ctx context.Context, id string, newRate decimal.Decimal, effectiveDate time.Time) (Employee, error)
}
