package payroll

import (
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// RateForDate returns the hourly rate in effect on date. Only one historical rate
// is kept, so any date before the effective date resolves to the previous rate.
func RateForDate(emp employee.Employee, date time.Time) decimal.Decimal {
	if emp.RateEffectiveDate == nil || emp.PreviousRate == nil {
		return emp.HourlyRate
	}
	if timeutil.DateOnly(date).Before(timeutil.DateOnly(*emp.RateEffectiveDate)) {
		return *emp.PreviousRate
	}
	return emp.HourlyRate
}
