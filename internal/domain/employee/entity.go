package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                     string
	ExternalID             string
	Email                  string
	FullName               string
	Role                   Role
	Status                 Status
	HourlyRate             decimal.Decimal
	PreviousRate           *decimal.Decimal
	RateEffectiveDate      *time.Time
	MaxHoursBeforeOvertime decimal.Decimal
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on_leave"
)

// DefaultMaxHoursBeforeOvertime is the weekly warning level for new employees.
var DefaultMaxHoursBeforeOvertime = decimal.NewFromInt(40)

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// TracksHours reports whether the employee clocks in. Admins are paid bonuses only.
func (e Employee) TracksHours() bool {
	return e.Role != RoleAdmin
}

func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
