package highvalue

import (
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type NotificationFilter struct {
	Status     *Status
	EmployeeID *string
}

func (f *NotificationFilter) Validate() error {
	if f.Status != nil && *f.Status != StatusPending && *f.Status != StatusReviewed {
		return validator.ValidationErrors{{Field: "status", Message: ErrInvalidStatus.Error()}}
	}
	return nil
}

type AdjudicateRequest struct {
	NotificationID string           `json:"-"`
	AdminBonus     *decimal.Decimal `json:"admin_bonus,omitempty"`
}

func (r *AdjudicateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.NotificationID == "" {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.AdminBonus != nil && !validator.IsNonNegative(*r.AdminBonus) {
		errs = append(errs, validator.ValidationError{Field: "admin_bonus", Message: ErrNegativeAdminBonus.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type NotificationResponse struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	SaleID       string           `json:"sale_id"`
	PolicyNumber string           `json:"policy_number"`
	PolicyAmount decimal.Decimal  `json:"policy_amount"`
	BrokerFee    decimal.Decimal  `json:"broker_fee"`
	CurrentBonus decimal.Decimal  `json:"current_bonus"`
	AdminBonus   *decimal.Decimal `json:"admin_bonus,omitempty"`
	PayableBonus decimal.Decimal  `json:"payable_bonus"`
	Status       Status           `json:"status"`
	SaleDate     string           `json:"sale_date"`
	ReviewedBy   *string          `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time       `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ToResponse fills PayableBonus with the caller's computed figure.
func ToResponse(n Notification, payable decimal.Decimal) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		EmployeeID:   n.EmployeeID,
		SaleID:       n.SaleID,
		PolicyNumber: n.PolicyNumber,
		PolicyAmount: n.PolicyAmount,
		BrokerFee:    n.BrokerFee,
		CurrentBonus: n.CurrentBonus,
		AdminBonus:   n.AdminBonus,
		PayableBonus: payable,
		Status:       n.Status,
		SaleDate:     n.SaleDate.Format("2006-01-02"),
		ReviewedBy:   n.ReviewedBy,
		ReviewedAt:   n.ReviewedAt,
		CreatedAt:    n.CreatedAt,
	}
}

// HighValueEvent is published to admins when a notification is created.
type HighValueEvent struct {
	NotificationID string          `json:"notification_id"`
	EmployeeID     string          `json:"employee_id"`
	PolicyNumber   string          `json:"policy_number"`
	PolicyAmount   decimal.Decimal `json:"policy_amount"`
	CurrentBonus   decimal.Decimal `json:"current_bonus"`
}
