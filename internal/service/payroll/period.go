package payroll

import (
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
)

// PeriodFor returns the pay period offset periods away from the one containing now's
// local date. Offset 0 is current.
func PeriodFor(now time.Time, offset int, loc *time.Location) payroll.PayPeriod {
	today := timeutil.LocalDateOf(now, loc)
	index := floorDiv(timeutil.DaysBetween(payroll.ReferenceDate, today), payroll.PeriodLengthDays)

	start := payroll.ReferenceDate.AddDate(0, 0, (index+offset)*payroll.PeriodLengthDays)
	return payroll.PayPeriod{
		Offset: offset,
		Start:  start,
		End:    start.AddDate(0, 0, payroll.PeriodLengthDays-1),
		Status: payroll.StatusForOffset(offset),
	}
}

// Periods enumerates offsets -previous..0 followed by the upcoming period.
func Periods(now time.Time, previous int, loc *time.Location) []payroll.PayPeriod {
	if previous < 0 {
		previous = 0
	}
	periods := make([]payroll.PayPeriod, 0, previous+2)
	for offset := -previous; offset <= 1; offset++ {
		periods = append(periods, PeriodFor(now, offset, loc))
	}
	return periods
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
