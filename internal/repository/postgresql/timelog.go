package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, employee_id, date, clock_in, clock_out, break_start, break_end, is_break, created_at, updated_at`

type timeSessionRepositoryImpl struct {
	db *database.DB
}

func NewTimeSessionRepository(db *database.DB) timelog.TimeSessionRepository {
	return &timeSessionRepositoryImpl{db: db}
}

func scanSession(row pgx.Row) (timelog.TimeSession, error) {
	var s timelog.TimeSession
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Date, &s.ClockIn, &s.ClockOut,
		&s.BreakStart, &s.BreakEnd, &s.IsBreak, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func collectSessions(rows pgx.Rows) ([]timelog.TimeSession, error) {
	defer rows.Close()

	var sessions []timelog.TimeSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time sessions: %w", err)
	}
	return sessions, nil
}

func (r *timeSessionRepositoryImpl) Create(ctx context.Context, session timelog.TimeSession) (timelog.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_sessions (employee_id, date, clock_in, clock_out, break_start, break_end, is_break)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + sessionColumns

	created, err := scanSession(q.QueryRow(ctx, query,
		session.EmployeeID, session.Date, session.ClockIn, session.ClockOut,
		session.BreakStart, session.BreakEnd, session.IsBreak,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_time_sessions_open") {
			return timelog.TimeSession{}, timelog.ErrAlreadyClockedIn
		}
		return timelog.TimeSession{}, fmt.Errorf("failed to create time session: %w", err)
	}
	return created, nil
}

func (r *timeSessionRepositoryImpl) Close(ctx context.Context, id string, clockOut time.Time) (timelog.TimeSession, error) {
	return r.updateOpen(ctx, id, `
		UPDATE time_sessions
		SET clock_out = $1,
			break_end = CASE WHEN break_start IS NOT NULL AND break_end IS NULL THEN $1 ELSE break_end END,
			updated_at = NOW()
		WHERE id = $2 AND clock_out IS NULL
		RETURNING `+sessionColumns, clockOut)
}

func (r *timeSessionRepositoryImpl) SetBreakStart(ctx context.Context, id string, at time.Time) (timelog.TimeSession, error) {
	return r.updateOpen(ctx, id, `
		UPDATE time_sessions
		SET break_start = $1, updated_at = NOW()
		WHERE id = $2 AND clock_out IS NULL
		RETURNING `+sessionColumns, at)
}

func (r *timeSessionRepositoryImpl) SetBreakEnd(ctx context.Context, id string, at time.Time) (timelog.TimeSession, error) {
	return r.updateOpen(ctx, id, `
		UPDATE time_sessions
		SET break_end = $1, updated_at = NOW()
		WHERE id = $2 AND clock_out IS NULL
		RETURNING `+sessionColumns, at)
}

func (r *timeSessionRepositoryImpl) updateOpen(ctx context.Context, id string, query string, at time.Time) (timelog.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSession(q.QueryRow(ctx, query, at, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.TimeSession{}, timelog.ErrSessionNotFound
		}
		return timelog.TimeSession{}, fmt.Errorf("failed to update time session %s: %w", id, err)
	}
	return s, nil
}

func (r *timeSessionRepositoryImpl) GetOpenSession(ctx context.Context, employeeID string) (timelog.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM time_sessions
		WHERE employee_id = $1 AND clock_out IS NULL AND NOT is_break
		ORDER BY clock_in DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.TimeSession{}, timelog.ErrSessionNotFound
		}
		return timelog.TimeSession{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return s, nil
}

func (r *timeSessionRepositoryImpl) ListByDate(ctx context.Context, employeeID string, date time.Time) ([]timelog.TimeSession, error) {
	return r.ListByDateRange(ctx, employeeID, date, date)
}

func (r *timeSessionRepositoryImpl) ListByDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]timelog.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM time_sessions
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY clock_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time sessions: %w", err)
	}
	return collectSessions(rows)
}

func (r *timeSessionRepositoryImpl) ListStaleOpenSessions(ctx context.Context, before time.Time) ([]timelog.TimeSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM time_sessions
		WHERE clock_out IS NULL AND NOT is_break AND date < $1
		ORDER BY clock_in ASC
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open sessions: %w", err)
	}
	return collectSessions(rows)
}
