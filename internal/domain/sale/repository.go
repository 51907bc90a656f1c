package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SaleRepository interface {
	Create(ctx context.Context, sale PolicySale) (PolicySale, error)
	GetByID(ctx context.Context, id string) (PolicySale, error)
	// ListByEmployee is inclusive on both dates, ordered by sale_date then created_at
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]PolicySale, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review ClientReview) (ClientReview, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]ClientReview, error)
}

type BonusLedgerRepository interface {
	// Add upserts the employee's row, adding delta to the running total
	Add(ctx context.Context, employeeID string, delta decimal.Decimal) (BonusLedger, error)
	Get(ctx context.Context, employeeID string) (BonusLedger, error)
}
