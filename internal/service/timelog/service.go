package timelog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/lock"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
	payrollService "github.com/cmlabs-hris/broker-payroll-go/internal/service/payroll"
)

const clockLockTTL = 10 * time.Second

type TimeLogServiceImpl struct {
	sessionRepo  timelog.TimeSessionRepository
	employeeRepo employee.EmployeeRepository
	locker       lock.Locker
	loc          *time.Location
	now          func() time.Time
}

func NewTimeLogService(
	sessionRepo timelog.TimeSessionRepository,
	employeeRepo employee.EmployeeRepository,
	locker lock.Locker,
	loc *time.Location,
) *TimeLogServiceImpl {
	return &TimeLogServiceImpl{
		sessionRepo:  sessionRepo,
		employeeRepo: employeeRepo,
		locker:       locker,
		loc:          loc,
		now:          time.Now,
	}
}

// SetClock replaces time.Now, for tests.
func (s *TimeLogServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

// withClockLock serializes clock actions per employee so the one-open-session rule
// holds across instances.
func (s *TimeLogServiceImpl) withClockLock(ctx context.Context, employeeID string, fn func() (timelog.SessionResponse, error)) (timelog.SessionResponse, error) {
	release, err := s.locker.Acquire(ctx, "clock:"+employeeID, clockLockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLockHeld) {
			return timelog.SessionResponse{}, timelog.ErrActionInProgress
		}
		return timelog.SessionResponse{}, fmt.Errorf("failed to acquire clock lock: %w", err)
	}
	defer release()

	return fn()
}

func (s *TimeLogServiceImpl) ClockIn(ctx context.Context, employeeID string) (timelog.SessionResponse, error) {
	return s.withClockLock(ctx, employeeID, func() (timelog.SessionResponse, error) {
		emp, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return timelog.SessionResponse{}, err
		}
		if !emp.IsActive() {
			return timelog.SessionResponse{}, employee.ErrEmployeeInactive
		}

		nowUTC := s.now().UTC()
		today := timeutil.LocalDateOf(nowUTC, s.loc)

		open, err := s.sessionRepo.GetOpenSession(ctx, employeeID)
		switch {
		case err == nil && timeutil.DateOnly(open.Date).Before(today):
			// A session left open on an earlier day is closed with zero duration.
			if _, err := s.sessionRepo.Close(ctx, open.ID, open.ClockIn); err != nil {
				return timelog.SessionResponse{}, fmt.Errorf("failed to close stale session: %w", err)
			}
			slog.WarnContext(ctx, "Closed stale open session with zero duration",
				"employee_id", employeeID, "session_id", open.ID, "date", open.Date.Format(timeutil.DateLayout))
		case err == nil:
			return timelog.SessionResponse{}, timelog.ErrAlreadyClockedIn
		case !errors.Is(err, timelog.ErrSessionNotFound):
			return timelog.SessionResponse{}, fmt.Errorf("failed to check open session: %w", err)
		}

		created, err := s.sessionRepo.Create(ctx, timelog.TimeSession{
			EmployeeID: employeeID,
			Date:       today,
			ClockIn:    nowUTC,
		})
		if err != nil {
			return timelog.SessionResponse{}, err
		}

		slog.InfoContext(ctx, "Employee clocked in", "employee_id", employeeID, "session_id", created.ID)
		return timelog.ToResponse(created), nil
	})
}

func (s *TimeLogServiceImpl) ClockOut(ctx context.Context, employeeID string) (timelog.SessionResponse, error) {
	return s.withClockLock(ctx, employeeID, func() (timelog.SessionResponse, error) {
		open, err := s.openSession(ctx, employeeID)
		if err != nil {
			return timelog.SessionResponse{}, err
		}

		nowUTC := s.now().UTC()
		if nowUTC.Before(open.ClockIn) {
			nowUTC = open.ClockIn
		}

		closed, err := s.sessionRepo.Close(ctx, open.ID, nowUTC)
		if err != nil {
			return timelog.SessionResponse{}, err
		}

		slog.InfoContext(ctx, "Employee clocked out", "employee_id", employeeID, "session_id", closed.ID)
		return timelog.ToResponse(closed), nil
	})
}

func (s *TimeLogServiceImpl) StartBreak(ctx context.Context, employeeID string) (timelog.SessionResponse, error) {
	return s.withClockLock(ctx, employeeID, func() (timelog.SessionResponse, error) {
		open, err := s.openSession(ctx, employeeID)
		if err != nil {
			return timelog.SessionResponse{}, err
		}
		if open.OnBreak() {
			return timelog.SessionResponse{}, timelog.ErrAlreadyOnBreak
		}
		if open.BreakTaken() {
			return timelog.SessionResponse{}, timelog.ErrBreakAlreadyTaken
		}

		updated, err := s.sessionRepo.SetBreakStart(ctx, open.ID, s.now().UTC())
		if err != nil {
			return timelog.SessionResponse{}, err
		}
		return timelog.ToResponse(updated), nil
	})
}

func (s *TimeLogServiceImpl) EndBreak(ctx context.Context, employeeID string) (timelog.SessionResponse, error) {
	return s.withClockLock(ctx, employeeID, func() (timelog.SessionResponse, error) {
		open, err := s.openSession(ctx, employeeID)
		if err != nil {
			return timelog.SessionResponse{}, err
		}
		if !open.OnBreak() {
			return timelog.SessionResponse{}, timelog.ErrBreakNotStarted
		}

		updated, err := s.sessionRepo.SetBreakEnd(ctx, open.ID, s.now().UTC())
		if err != nil {
			return timelog.SessionResponse{}, err
		}
		return timelog.ToResponse(updated), nil
	})
}

func (s *TimeLogServiceImpl) openSession(ctx context.Context, employeeID string) (timelog.TimeSession, error) {
	open, err := s.sessionRepo.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, timelog.ErrSessionNotFound) {
			return timelog.TimeSession{}, timelog.ErrNotClockedIn
		}
		return timelog.TimeSession{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return open, nil
}

func (s *TimeLogServiceImpl) GetSessions(ctx context.Context, employeeID string, filter timelog.SessionFilter) ([]timelog.SessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	from, _ := timeutil.ParseDate(filter.From)
	to, _ := timeutil.ParseDate(filter.To)

	sessions, err := s.sessionRepo.ListByDateRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]timelog.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, timelog.ToResponse(session))
	}
	return resp, nil
}

func (s *TimeLogServiceImpl) GetHoursSummary(ctx context.Context, employeeID string) (timelog.HoursSummaryResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return timelog.HoursSummaryResponse{}, err
	}

	now := s.now()
	period := payrollService.PeriodFor(now, 0, s.loc)
	weekStart := timeutil.LocalDateOf(timeutil.StartOfWeek(now, s.loc), s.loc)
	weekEnd := weekStart.AddDate(0, 0, 6)

	// One fetch covering both windows; a week can straddle two periods.
	from, to := period.Start, period.End
	if weekStart.Before(from) {
		from = weekStart
	}
	if weekEnd.After(to) {
		to = weekEnd
	}
	sessions, err := s.sessionRepo.ListByDateRange(ctx, employeeID, from, to)
	if err != nil {
		return timelog.HoursSummaryResponse{}, err
	}

	today := timeutil.LocalDateOf(now, s.loc)
	var todays, weeks, periods []timelog.TimeSession
	for _, session := range sessions {
		d := timeutil.DateOnly(session.Date)
		if d.Equal(today) {
			todays = append(todays, session)
		}
		if !d.Before(weekStart) && !d.After(weekEnd) {
			weeks = append(weeks, session)
		}
		if period.Contains(d) {
			periods = append(periods, session)
		}
	}

	resp := timelog.HoursSummaryResponse{
		EmployeeID:             employeeID,
		Date:                   today.Format(timeutil.DateLayout),
		TodayHours:             payrollService.NetHours(todays, now, s.loc),
		WeekHours:              payrollService.NetHours(weeks, now, s.loc),
		PeriodHours:            payrollService.NetHours(periods, now, s.loc),
		PeriodLabel:            period.Label(),
		MaxHoursBeforeOvertime: emp.MaxHoursBeforeOvertime,
	}
	resp.ApproachingOvertime = emp.MaxHoursBeforeOvertime.IsPositive() &&
		resp.WeekHours.GreaterThanOrEqual(emp.MaxHoursBeforeOvertime)

	for _, session := range sessions {
		if session.IsOpen() && !session.IsBreak && timeutil.DateOnly(session.Date).Equal(today) {
			resp.ClockedIn = true
			resp.OnBreak = session.OnBreak()
		}
	}

	return resp, nil
}
