package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// PolicySale is one recorded sale. A cross-sell event is stored as two rows sharing
// CrossSellGroupID: the primary (CrossSold) and the secondary (IsCrossSoldPolicy).
type PolicySale struct {
	ID                  string
	EmployeeID          string
	PolicyNumber        string
	ClientName          string
	Amount              decimal.Decimal
	BrokerFee           decimal.Decimal
	PolicyType          string
	SaleDate            time.Time
	CrossSold           bool
	IsCrossSoldPolicy   bool
	CrossSellGroupID    *string
	CrossSoldPolicyType *string // set on the primary: the paired secondary's type
	HighValue           bool

	// Computed once at write time.
	BrokerFeeBonus     decimal.Decimal
	CrossSellBonus     decimal.Decimal
	LifeInsuranceBonus decimal.Decimal
	Bonus              decimal.Decimal

	CreatedAt time.Time
}

type ClientReview struct {
	ID         string
	EmployeeID string
	ClientName string
	Rating     int
	Comment    *string
	ReviewDate time.Time
	Bonus      decimal.Decimal
	CreatedAt  time.Time
}

// BonusLedger is the running payable-bonus total per employee.
type BonusLedger struct {
	EmployeeID string
	TotalBonus decimal.Decimal
	UpdatedAt  time.Time
}
