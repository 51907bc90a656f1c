package sale

import (
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CrossSoldPolicyRequest struct {
	PolicyNumber string          `json:"policy_number" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	BrokerFee    decimal.Decimal `json:"broker_fee"`
	PolicyType   string          `json:"policy_type" validate:"required"`
}

type RecordSaleRequest struct {
	PolicyNumber string                  `json:"policy_number" validate:"required"`
	ClientName   string                  `json:"client_name" validate:"required"`
	Amount       decimal.Decimal         `json:"amount"`
	BrokerFee    decimal.Decimal         `json:"broker_fee"`
	PolicyType   string                  `json:"policy_type" validate:"required"`
	SaleDate     string                  `json:"sale_date,omitempty"`
	CrossSold    *CrossSoldPolicyRequest `json:"cross_sold_policy,omitempty"`
}

func (r *RecordSaleRequest) Validate() error {
	errs := validator.Struct(r)

	if !validator.IsNonNegative(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if !validator.IsNonNegative(r.BrokerFee) {
		errs = append(errs, validator.ValidationError{Field: "broker_fee", Message: "must be non-negative"})
	}
	if r.SaleDate != "" {
		if _, ok := validator.IsValidDate(r.SaleDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "sale_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.CrossSold != nil {
		if !validator.IsNonNegative(r.CrossSold.Amount) {
			errs = append(errs, validator.ValidationError{Field: "cross_sold_policy.amount", Message: "must be non-negative"})
		}
		if !validator.IsNonNegative(r.CrossSold.BrokerFee) {
			errs = append(errs, validator.ValidationError{Field: "cross_sold_policy.broker_fee", Message: "must be non-negative"})
		}
		if r.CrossSold.PolicyNumber != "" && r.CrossSold.PolicyNumber == r.PolicyNumber {
			errs = append(errs, validator.ValidationError{Field: "cross_sold_policy.policy_number", Message: ErrCrossSoldPolicyNumber.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordReviewRequest struct {
	ClientName string  `json:"client_name" validate:"required"`
	Rating     int     `json:"rating" validate:"min=1,max=5"`
	Comment    *string `json:"comment,omitempty"`
	ReviewDate string  `json:"review_date,omitempty"`
}

func (r *RecordReviewRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ReviewDate != "" {
		if _, ok := validator.IsValidDate(r.ReviewDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "review_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DateRangeFilter struct {
	From string
	To   string
}

func (f *DateRangeFilter) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(f.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be in YYYY-MM-DD format"})
	}
	to, okTo := validator.IsValidDate(f.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be in YYYY-MM-DD format"})
	}
	if okFrom && okTo && from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: ErrInvalidDateRange.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaleResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	PolicyNumber       string          `json:"policy_number"`
	ClientName         string          `json:"client_name"`
	Amount             decimal.Decimal `json:"amount"`
	BrokerFee          decimal.Decimal `json:"broker_fee"`
	PolicyType         string          `json:"policy_type"`
	SaleDate           string          `json:"sale_date"`
	CrossSold          bool            `json:"cross_sold"`
	IsCrossSoldPolicy  bool            `json:"is_cross_sold_policy"`
	CrossSellGroupID   *string         `json:"cross_sell_group_id,omitempty"`
	HighValue          bool            `json:"high_value"`
	BrokerFeeBonus     decimal.Decimal `json:"broker_fee_bonus"`
	CrossSellBonus     decimal.Decimal `json:"cross_sell_bonus"`
	LifeInsuranceBonus decimal.Decimal `json:"life_insurance_bonus"`
	Bonus              decimal.Decimal `json:"bonus"`
	CreatedAt          time.Time       `json:"created_at"`
}

func ToSaleResponse(s PolicySale) SaleResponse {
	return SaleResponse{
		ID:                 s.ID,
		EmployeeID:         s.EmployeeID,
		PolicyNumber:       s.PolicyNumber,
		ClientName:         s.ClientName,
		Amount:             s.Amount,
		BrokerFee:          s.BrokerFee,
		PolicyType:         s.PolicyType,
		SaleDate:           s.SaleDate.Format("2006-01-02"),
		CrossSold:          s.CrossSold,
		IsCrossSoldPolicy:  s.IsCrossSoldPolicy,
		CrossSellGroupID:   s.CrossSellGroupID,
		HighValue:          s.HighValue,
		BrokerFeeBonus:     s.BrokerFeeBonus,
		CrossSellBonus:     s.CrossSellBonus,
		LifeInsuranceBonus: s.LifeInsuranceBonus,
		Bonus:              s.Bonus,
		CreatedAt:          s.CreatedAt,
	}
}

type RecordSaleResponse struct {
	Sales           []SaleResponse  `json:"sales"`
	NotificationIDs []string        `json:"high_value_notification_ids,omitempty"`
	Bonus           decimal.Decimal `json:"bonus"`
	LedgerTotal     decimal.Decimal `json:"ledger_total"`
}

type ReviewResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	ClientName string          `json:"client_name"`
	Rating     int             `json:"rating"`
	Comment    *string         `json:"comment,omitempty"`
	ReviewDate string          `json:"review_date"`
	Bonus      decimal.Decimal `json:"bonus"`
}

func ToReviewResponse(r ClientReview) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		ClientName: r.ClientName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewDate: r.ReviewDate.Format("2006-01-02"),
		Bonus:      r.Bonus,
	}
}

type BonusTotalResponse struct {
	EmployeeID string          `json:"employee_id"`
	TotalBonus decimal.Decimal `json:"total_bonus"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}
