package timelog

import (
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SessionFilter struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (f *SessionFilter) Validate() error {
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

type SessionResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out,omitempty"`
	BreakStart *time.Time `json:"break_start,omitempty"`
	BreakEnd   *time.Time `json:"break_end,omitempty"`
	IsBreak    bool       `json:"is_break"`
	Active     bool       `json:"active"`
}

func ToResponse(s TimeSession) SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Date:       s.Date.Format("2006-01-02"),
		ClockIn:    s.ClockIn,
		ClockOut:   s.ClockOut,
		BreakStart: s.BreakStart,
		BreakEnd:   s.BreakEnd,
		IsBreak:    s.IsBreak,
		Active:     s.IsOpen(),
	}
}

type HoursSummaryResponse struct {
	EmployeeID             string          `json:"employee_id"`
	Date                   string          `json:"date"`
	ClockedIn              bool            `json:"clocked_in"`
	OnBreak                bool            `json:"on_break"`
	TodayHours             decimal.Decimal `json:"today_hours"`
	WeekHours              decimal.Decimal `json:"week_hours"`
	PeriodHours            decimal.Decimal `json:"period_hours"`
	PeriodLabel            string          `json:"period_label"`
	MaxHoursBeforeOvertime decimal.Decimal `json:"max_hours_before_overtime"`
	ApproachingOvertime    bool            `json:"approaching_overtime"`
}
