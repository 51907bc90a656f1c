package payroll

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/money"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

var hour = decimal.NewFromInt(int64(time.Hour))

// NetHours reduces sessions to paid hours as of asOf, rounded to 2 places.
// Only embedded breaks are subtracted; idle time between sessions is not. Open
// sessions count only when dated today in loc, measured up to asOf.
func NetHours(sessions []timelog.TimeSession, asOf time.Time, loc *time.Location) decimal.Decimal {
	today := timeutil.LocalDate(asOf, loc)

	var total time.Duration
	for _, s := range sortedByClockIn(sessions) {
		total += sessionWorked(s, asOf, today)
	}

	return money.Round(decimal.NewFromInt(int64(total)).Div(hour))
}

// StaleOpenSessions returns open sessions dated before asOf's local date. They
// contribute nothing to NetHours.
func StaleOpenSessions(sessions []timelog.TimeSession, asOf time.Time, loc *time.Location) []timelog.TimeSession {
	today := timeutil.LocalDate(asOf, loc)

	var stale []timelog.TimeSession
	for _, s := range sessions {
		if s.IsOpen() && !s.IsBreak && s.Date.Format(timeutil.DateLayout) < today {
			stale = append(stale, s)
		}
	}
	return stale
}

func sessionWorked(s timelog.TimeSession, asOf time.Time, today string) time.Duration {
	if s.IsBreak {
		return 0
	}

	end := asOf
	if s.ClockOut != nil {
		end = *s.ClockOut
	} else if s.Date.Format(timeutil.DateLayout) != today {
		return 0
	}

	worked := end.Sub(s.ClockIn) - breakWithin(s, end)
	if worked < 0 {
		return 0
	}
	return worked
}

// breakWithin measures the embedded break. An unfinished break runs until end only
// while the session is open; a closed session needs both ends recorded.
func breakWithin(s timelog.TimeSession, end time.Time) time.Duration {
	if s.BreakStart == nil {
		return 0
	}
	breakEnd := end
	switch {
	case s.BreakEnd != nil:
		breakEnd = *s.BreakEnd
	case s.ClockOut != nil:
		return 0
	}
	d := breakEnd.Sub(*s.BreakStart)
	if d < 0 {
		return 0
	}
	return d
}

func sortedByClockIn(sessions []timelog.TimeSession) []timelog.TimeSession {
	ordered := make([]timelog.TimeSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ClockIn.Before(ordered[j].ClockIn)
	})
	return ordered
}
