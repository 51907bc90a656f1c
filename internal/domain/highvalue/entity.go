package highvalue

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
)

// Notification routes a sale at or above the high-value threshold to an admin.
// CurrentBonus is the automatic figure at creation; AdminBonus overrides it once set.
type Notification struct {
	ID           string
	EmployeeID   string
	SaleID       string
	PolicyNumber string
	PolicyAmount decimal.Decimal
	BrokerFee    decimal.Decimal
	CurrentBonus decimal.Decimal
	AdminBonus   *decimal.Decimal
	Status       Status
	SaleDate     time.Time
	ReviewedBy   *string
	ReviewedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (n Notification) IsReviewed() bool {
	return n.Status == StatusReviewed
}
