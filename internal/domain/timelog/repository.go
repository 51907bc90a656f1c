package timelog

import (
	"context"
	"time"
)

// TimeSessionRepository is the append/close accessor over time sessions.
// List methods return sessions ordered by clock_in ascending.
type TimeSessionRepository interface {
	// Create opens a session
	Create(ctx context.Context, session TimeSession) (TimeSession, error)

	// Close sets clock_out (and break_end when a break is still open)
	Close(ctx context.Context, id string, clockOut time.Time) (TimeSession, error)

	SetBreakStart(ctx context.Context, id string, at time.Time) (TimeSession, error)
	SetBreakEnd(ctx context.Context, id string, at time.Time) (TimeSession, error)

	// GetOpenSession returns ErrSessionNotFound when the employee has no open session
	GetOpenSession(ctx context.Context, employeeID string) (TimeSession, error)

	ListByDate(ctx context.Context, employeeID string, date time.Time) ([]TimeSession, error)

	// ListByDateRange is inclusive on both dates
	ListByDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]TimeSession, error)

	// ListStaleOpenSessions returns open sessions dated before the given date, all employees
	ListStaleOpenSessions(ctx context.Context, before time.Time) ([]TimeSession, error)
}
