// Package bonus computes the bonus each sale, review and high-value adjudication
// contributes. Every figure is rounded to cents where it is produced.
package bonus

import (
	"strings"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// BrokerFeeFloor is the fee above which the broker-fee bonus accrues.
	BrokerFeeFloor = decimal.NewFromInt(100)
	// BrokerFeeRate applies to the fee above the floor.
	BrokerFeeRate = decimal.RequireFromString("0.10")
	// LifeInsuranceBonus is the flat referral bonus for life policies.
	LifeInsuranceBonus = decimal.NewFromInt(10)
	// FiveStarReviewBonus is paid per rating-5 review.
	FiveStarReviewBonus = decimal.NewFromInt(10)
)

const fiveStars = 5

// Source is one bonus-bearing record. The set is closed: SaleSource, ReviewSource
// and NotificationSource.
type Source interface {
	isSource()
}

type SaleSource struct {
	Sale sale.PolicySale
}

type ReviewSource struct {
	Review sale.ClientReview
}

type NotificationSource struct {
	Notification highvalue.Notification
}

func (SaleSource) isSource()         {}
func (ReviewSource) isSource()       {}
func (NotificationSource) isSource() {}

// Breakdown is the per-rule result for one sale.
type Breakdown struct {
	BrokerFee     decimal.Decimal
	CrossSell     decimal.Decimal
	LifeInsurance decimal.Decimal
	Total         decimal.Decimal
	// HighValue is set when the sale routes to adjudication and earns nothing here.
	HighValue bool
}

type Calculator struct {
	threshold decimal.Decimal
}

func NewCalculator(threshold decimal.Decimal) *Calculator {
	return &Calculator{threshold: threshold}
}

func (c *Calculator) Threshold() decimal.Decimal {
	return c.threshold
}

// IsHighValue reports whether amount meets or exceeds the threshold.
func (c *Calculator) IsHighValue(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(c.threshold)
}

// Bonus returns the payable amount for any source.
func (c *Calculator) Bonus(src Source) decimal.Decimal {
	switch s := src.(type) {
	case SaleSource:
		return c.BonusForSale(s.Sale).Total
	case ReviewSource:
		return BonusForReview(s.Review)
	case NotificationSource:
		return BonusForHighValueNotification(s.Notification)
	default:
		return decimal.Zero
	}
}

// BonusForSale applies the broker-fee, cross-sell and life-insurance rules. Sales at
// or above the threshold earn nothing here: their bonus is the adjudicated figure.
func (c *Calculator) BonusForSale(s sale.PolicySale) Breakdown {
	if c.IsHighValue(s.Amount) {
		return Breakdown{
			BrokerFee:     decimal.Zero,
			CrossSell:     decimal.Zero,
			LifeInsurance: decimal.Zero,
			Total:         decimal.Zero,
			HighValue:     true,
		}
	}
	return StandardBonus(s)
}

// StandardBonus applies rules without the threshold gate. It seeds a high-value
// notification's CurrentBonus.
func StandardBonus(s sale.PolicySale) Breakdown {
	b := Breakdown{
		BrokerFee:     BrokerFeeBonus(s.BrokerFee),
		CrossSell:     decimal.Zero,
		LifeInsurance: decimal.Zero,
	}

	if s.IsCrossSoldPolicy && !b.BrokerFee.IsZero() {
		b.CrossSell = b.BrokerFee
	}

	if qualifiesForLife(s) {
		b.LifeInsurance = LifeInsuranceBonus
	}

	b.Total = money.Round(money.Sum(b.BrokerFee, b.CrossSell, b.LifeInsurance))
	return b
}

// BrokerFeeBonus is 10% of the fee above $100, zero at or below it.
func BrokerFeeBonus(fee decimal.Decimal) decimal.Decimal {
	if !fee.GreaterThan(BrokerFeeFloor) {
		return decimal.Zero
	}
	return money.Round(fee.Sub(BrokerFeeFloor).Mul(BrokerFeeRate))
}

func qualifiesForLife(s sale.PolicySale) bool {
	if isLifePolicy(s.PolicyType) {
		return true
	}
	return !s.IsCrossSoldPolicy && s.CrossSoldPolicyType != nil && isLifePolicy(*s.CrossSoldPolicyType)
}

func isLifePolicy(policyType string) bool {
	return strings.Contains(strings.ToLower(policyType), "life")
}

func BonusForReview(r sale.ClientReview) decimal.Decimal {
	if r.Rating == fiveStars {
		return FiveStarReviewBonus
	}
	return decimal.Zero
}

// BonusForHighValueNotification pays nothing until reviewed; then the admin figure
// when positive, else the automatic one.
func BonusForHighValueNotification(n highvalue.Notification) decimal.Decimal {
	if !n.IsReviewed() {
		return decimal.Zero
	}
	if money.PositivePtr(n.AdminBonus) {
		return money.Round(*n.AdminBonus)
	}
	return money.Round(n.CurrentBonus)
}
