package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/operator"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
)

const JobReportStaleSessions = "report_stale_sessions"

// StaleSessionJobs surfaces sessions still open from an earlier local day. They are
// left open for a human to correct; the next clock-in closes them at zero duration.
type StaleSessionJobs struct {
	sessionRepo timelog.TimeSessionRepository
	reporter    operator.Reporter
	loc         *time.Location
	interval    time.Duration
	now         func() time.Time

	mu       sync.Mutex
	reported map[string]struct{}
}

func NewStaleSessionJobs(
	sessionRepo timelog.TimeSessionRepository,
	reporter operator.Reporter,
	loc *time.Location,
	interval time.Duration,
) *StaleSessionJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &StaleSessionJobs{
		sessionRepo: sessionRepo,
		reporter:    reporter,
		loc:         loc,
		interval:    interval,
		now:         time.Now,
		reported:    make(map[string]struct{}),
	}
}

func (j *StaleSessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobReportStaleSessions, j.interval, j.ReportStaleSessions)
}

// ReportStaleSessions reports each stale session once per process.
func (j *StaleSessionJobs) ReportStaleSessions(ctx context.Context) error {
	today := timeutil.LocalDateOf(j.now(), j.loc)

	sessions, err := j.sessionRepo.ListStaleOpenSessions(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list stale sessions: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	still := make(map[string]struct{}, len(sessions))
	newCount := 0
	for _, s := range sessions {
		still[s.ID] = struct{}{}
		if _, seen := j.reported[s.ID]; seen {
			continue
		}
		newCount++
		j.reporter.Report(ctx, "stale open session", map[string]any{
			"session_id":  s.ID,
			"employee_id": s.EmployeeID,
			"date":        s.Date.Format(timeutil.DateLayout),
			"clock_in":    s.ClockIn.Format(time.RFC3339),
		})
	}
	j.reported = still

	slog.Info("Cron: Stale session check finished", "open", len(sessions), "newly_reported", newCount)
	return nil
}
