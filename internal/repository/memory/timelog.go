package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/google/uuid"
)

type sessionRepository struct {
	store *Store
}

func (r *sessionRepository) Create(_ context.Context, s timelog.TimeSession) (timelog.TimeSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if s.ClockOut == nil && !s.IsBreak {
		for _, existing := range r.store.sessions {
			if existing.EmployeeID == s.EmployeeID && existing.IsOpen() && !existing.IsBreak {
				return timelog.TimeSession{}, timelog.ErrAlreadyClockedIn
			}
		}
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	r.store.sessions[s.ID] = s
	return s, nil
}

func (r *sessionRepository) Close(_ context.Context, id string, clockOut time.Time) (timelog.TimeSession, error) {
	return r.update(id, func(s *timelog.TimeSession) {
		s.ClockOut = &clockOut
		if s.OnBreak() {
			s.BreakEnd = &clockOut
		}
	})
}

func (r *sessionRepository) SetBreakStart(_ context.Context, id string, at time.Time) (timelog.TimeSession, error) {
	return r.update(id, func(s *timelog.TimeSession) { s.BreakStart = &at })
}

func (r *sessionRepository) SetBreakEnd(_ context.Context, id string, at time.Time) (timelog.TimeSession, error) {
	return r.update(id, func(s *timelog.TimeSession) { s.BreakEnd = &at })
}

func (r *sessionRepository) update(id string, fn func(s *timelog.TimeSession)) (timelog.TimeSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.sessions[id]
	if !ok {
		return timelog.TimeSession{}, timelog.ErrSessionNotFound
	}
	fn(&s)
	s.UpdatedAt = time.Now().UTC()
	r.store.sessions[id] = s
	return s, nil
}

func (r *sessionRepository) GetOpenSession(_ context.Context, employeeID string) (timelog.TimeSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.sessions {
		if s.EmployeeID == employeeID && s.IsOpen() && !s.IsBreak {
			return s, nil
		}
	}
	return timelog.TimeSession{}, timelog.ErrSessionNotFound
}

func (r *sessionRepository) ListByDate(ctx context.Context, employeeID string, date time.Time) ([]timelog.TimeSession, error) {
	return r.ListByDateRange(ctx, employeeID, date, date)
}

func (r *sessionRepository) ListByDateRange(_ context.Context, employeeID string, from, to time.Time) ([]timelog.TimeSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.failure(employeeID); err != nil {
		return nil, err
	}

	var out []timelog.TimeSession
	for _, s := range r.store.sessions {
		if s.EmployeeID == employeeID && inRange(s.Date, from, to) {
			out = append(out, s)
		}
	}
	sortSessions(out)
	return out, nil
}

func (r *sessionRepository) ListStaleOpenSessions(_ context.Context, before time.Time) ([]timelog.TimeSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []timelog.TimeSession
	for _, s := range r.store.sessions {
		if s.IsOpen() && !s.IsBreak && s.Date.Before(before) {
			out = append(out, s)
		}
	}
	sortSessions(out)
	return out, nil
}

func sortSessions(sessions []timelog.TimeSession) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ClockIn.Before(sessions[j].ClockIn)
	})
}

// inRange compares calendar dates, inclusive on both ends.
func inRange(d, from, to time.Time) bool {
	day := d.Format("2006-01-02")
	return day >= from.Format("2006-01-02") && day <= to.Format("2006-01-02")
}
