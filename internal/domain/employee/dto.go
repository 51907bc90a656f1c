package employee

import (
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeFilter struct {
	Status *Status
	Role   *Role
}

type EmployeeResponse struct {
	ID                     string           `json:"id"`
	ExternalID             string           `json:"external_id"`
	Email                  string           `json:"email"`
	FullName               string           `json:"full_name"`
	Role                   Role             `json:"role"`
	Status                 Status           `json:"status"`
	HourlyRate             decimal.Decimal  `json:"hourly_rate"`
	PreviousRate           *decimal.Decimal `json:"previous_rate,omitempty"`
	RateEffectiveDate      *string          `json:"rate_effective_date,omitempty"`
	MaxHoursBeforeOvertime decimal.Decimal  `json:"max_hours_before_overtime"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                     e.ID,
		ExternalID:             e.ExternalID,
		Email:                  e.Email,
		FullName:               e.FullName,
		Role:                   e.Role,
		Status:                 e.Status,
		HourlyRate:             e.HourlyRate,
		PreviousRate:           e.PreviousRate,
		MaxHoursBeforeOvertime: e.MaxHoursBeforeOvertime,
	}
	if e.RateEffectiveDate != nil {
		d := e.RateEffectiveDate.Format("2006-01-02")
		resp.RateEffectiveDate = &d
	}
	return resp
}

// ProvisionEmployeeRequest is built from an identity provider user.created event.
type ProvisionEmployeeRequest struct {
	ExternalID string           `json:"external_id" validate:"required"`
	Email      string           `json:"email" validate:"required,email"`
	FullName   string           `json:"full_name" validate:"required"`
	Role       string           `json:"role,omitempty" validate:"omitempty,oneof=employee admin"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *ProvisionEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.HourlyRate != nil && !validator.IsNonNegative(*r.HourlyRate) {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRateRequest struct {
	EmployeeID    string          `json:"-"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	EffectiveDate string          `json:"effective_date" validate:"required"`
}

func (r *UpdateRateRequest) Validate() error {
	errs := validator.Struct(r)
	if !validator.IsNonNegative(r.HourlyRate) {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.EffectiveDate != "" {
		if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
