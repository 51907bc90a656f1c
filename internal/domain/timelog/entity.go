package timelog

import (
	"time"
)

// TimeSession is one clock-in/clock-out pair for one employee on one local calendar date.
type TimeSession struct {
	ID         string
	EmployeeID string
	Date       time.Time // local calendar date, stored at UTC midnight
	ClockIn    time.Time
	ClockOut   *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	IsBreak    bool // record exists only to describe a break; never paid
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s TimeSession) IsOpen() bool {
	return s.ClockOut == nil
}

func (s TimeSession) OnBreak() bool {
	return s.BreakStart != nil && s.BreakEnd == nil
}

func (s TimeSession) BreakTaken() bool {
	return s.BreakStart != nil
}
