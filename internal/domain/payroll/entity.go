package payroll

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// PeriodLengthDays is the width of every pay period.
	PeriodLengthDays = 14

	// RegularHoursCap is two 40-hour weeks; hours above it are overtime.
	RegularHoursCap = 80
)

var (
	// ReferenceDate anchors every period boundary. It is a Monday and must never change.
	ReferenceDate = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

	// OvertimeMultiplier is deliberately 1.0: overtime is paid at the regular rate.
	OvertimeMultiplier = decimal.NewFromInt(1)
)

type PeriodStatus string

const (
	PeriodCompleted PeriodStatus = "completed"
	PeriodCurrent   PeriodStatus = "current"
	PeriodUpcoming  PeriodStatus = "upcoming"
)

// PayPeriod is a derived 14-day window. Start and End are calendar dates at UTC
// midnight; End is inclusive.
type PayPeriod struct {
	Offset int
	Start  time.Time
	End    time.Time
	Status PeriodStatus
}

// Label renders "Jan 06 - Jan 19, 2025".
func (p PayPeriod) Label() string {
	return fmt.Sprintf("%s - %s", p.Start.Format("Jan 02"), p.End.Format("Jan 02, 2006"))
}

// Contains reports whether the calendar date of d falls inside the period.
func (p PayPeriod) Contains(d time.Time) bool {
	date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !date.Before(p.Start) && !date.After(p.End)
}

func (p PayPeriod) Next() PayPeriod {
	return shift(p, 1)
}

func (p PayPeriod) Previous() PayPeriod {
	return shift(p, -1)
}

func shift(p PayPeriod, n int) PayPeriod {
	start := p.Start.AddDate(0, 0, n*PeriodLengthDays)
	offset := p.Offset + n
	return PayPeriod{
		Offset: offset,
		Start:  start,
		End:    start.AddDate(0, 0, PeriodLengthDays-1),
		Status: StatusForOffset(offset),
	}
}

// StatusForOffset: negative offsets are completed, zero is current, positive upcoming.
func StatusForOffset(offset int) PeriodStatus {
	switch {
	case offset < 0:
		return PeriodCompleted
	case offset == 0:
		return PeriodCurrent
	default:
		return PeriodUpcoming
	}
}

func (p PayPeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Offset int          `json:"offset"`
		Start  string       `json:"start"`
		End    string       `json:"end"`
		Status PeriodStatus `json:"status"`
		Label  string       `json:"label"`
	}{
		Offset: p.Offset,
		Start:  p.Start.Format("2006-01-02"),
		End:    p.End.Format("2006-01-02"),
		Status: p.Status,
		Label:  p.Label(),
	})
}

type BonusBreakdown struct {
	BrokerFee     decimal.Decimal `json:"broker_fee"`
	CrossSell     decimal.Decimal `json:"cross_sell"`
	LifeInsurance decimal.Decimal `json:"life_insurance"`
	Review        decimal.Decimal `json:"review"`
	HighValue     decimal.Decimal `json:"high_value"`
	Total         decimal.Decimal `json:"total"`
}

// Add sums two breakdowns field by field.
func (b BonusBreakdown) Add(o BonusBreakdown) BonusBreakdown {
	return BonusBreakdown{
		BrokerFee:     b.BrokerFee.Add(o.BrokerFee),
		CrossSell:     b.CrossSell.Add(o.CrossSell),
		LifeInsurance: b.LifeInsurance.Add(o.LifeInsurance),
		Review:        b.Review.Add(o.Review),
		HighValue:     b.HighValue.Add(o.HighValue),
		Total:         b.Total.Add(o.Total),
	}
}

type EmployeePayroll struct {
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	Role           string          `json:"role"`
	NetHours       decimal.Decimal `json:"net_hours"`
	RegularHours   decimal.Decimal `json:"regular_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	RegularPay     decimal.Decimal `json:"regular_pay"`
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	Bonuses        BonusBreakdown  `json:"bonuses"`
	TotalPay       decimal.Decimal `json:"total_pay"`
	SaleCount      int             `json:"sale_count"`
	SaleAmount     decimal.Decimal `json:"sale_amount"`
	BrokerFees     decimal.Decimal `json:"broker_fees"`
	StaleSessions  int             `json:"stale_sessions,omitempty"`
	DataIncomplete bool            `json:"data_incomplete"`
}

type PayrollSummary struct {
	EmployeeCount   int             `json:"employee_count"`
	NetHours        decimal.Decimal `json:"net_hours"`
	RegularHours    decimal.Decimal `json:"regular_hours"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	RegularPay      decimal.Decimal `json:"regular_pay"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	Bonuses         BonusBreakdown  `json:"bonuses"`
	TotalPay        decimal.Decimal `json:"total_pay"`
	SaleCount       int             `json:"sale_count"`
	SaleAmount      decimal.Decimal `json:"sale_amount"`
	BrokerFees      decimal.Decimal `json:"broker_fees"`
	IncompleteCount int             `json:"incomplete_count"`
}

// Add folds one employee's figures into the summary.
func (s PayrollSummary) Add(e EmployeePayroll) PayrollSummary {
	s.EmployeeCount++
	s.NetHours = s.NetHours.Add(e.NetHours)
	s.RegularHours = s.RegularHours.Add(e.RegularHours)
	s.OvertimeHours = s.OvertimeHours.Add(e.OvertimeHours)
	s.RegularPay = s.RegularPay.Add(e.RegularPay)
	s.OvertimePay = s.OvertimePay.Add(e.OvertimePay)
	s.Bonuses = s.Bonuses.Add(e.Bonuses)
	s.TotalPay = s.TotalPay.Add(e.TotalPay)
	s.SaleCount += e.SaleCount
	s.SaleAmount = s.SaleAmount.Add(e.SaleAmount)
	s.BrokerFees = s.BrokerFees.Add(e.BrokerFees)
	if e.DataIncomplete {
		s.IncompleteCount++
	}
	return s
}

type PayrollReport struct {
	Period      PayPeriod         `json:"period"`
	Employees   []EmployeePayroll `json:"employees"`
	Summary     PayrollSummary    `json:"summary"`
	GeneratedAt time.Time         `json:"generated_at"`
}
