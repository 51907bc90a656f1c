package timelog

import "context"

type TimeLogService interface {
	ClockIn(ctx context.Context, employeeID string) (SessionResponse, error)
	ClockOut(ctx context.Context, employeeID string) (SessionResponse, error)
	StartBreak(ctx context.Context, employeeID string) (SessionResponse, error)
	EndBreak(ctx context.Context, employeeID string) (SessionResponse, error)
	GetSessions(ctx context.Context, employeeID string, filter SessionFilter) ([]SessionResponse, error)
	GetHoursSummary(ctx context.Context, employeeID string) (HoursSummaryResponse, error)
}
