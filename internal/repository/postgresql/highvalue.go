package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const notificationColumns = `id, employee_id, sale_id, policy_number, policy_amount, broker_fee, current_bonus,
	admin_bonus, status, sale_date, reviewed_by, reviewed_at, created_at, updated_at`

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) highvalue.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func scanNotification(row pgx.Row) (highvalue.Notification, error) {
	var n highvalue.Notification
	err := row.Scan(
		&n.ID, &n.EmployeeID, &n.SaleID, &n.PolicyNumber, &n.PolicyAmount, &n.BrokerFee, &n.CurrentBonus,
		&n.AdminBonus, &n.Status, &n.SaleDate, &n.ReviewedBy, &n.ReviewedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

func collectNotifications(rows pgx.Rows) ([]highvalue.Notification, error) {
	defer rows.Close()

	var out []highvalue.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan high-value notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate high-value notifications: %w", err)
	}
	return out, nil
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, n highvalue.Notification) (highvalue.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO high_value_notifications (
			employee_id, sale_id, policy_number, policy_amount, broker_fee, current_bonus, admin_bonus, status, sale_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + notificationColumns

	created, err := scanNotification(q.QueryRow(ctx, query,
		n.EmployeeID, n.SaleID, n.PolicyNumber, n.PolicyAmount, n.BrokerFee, n.CurrentBonus, n.AdminBonus, n.Status, n.SaleDate,
	))
	if err != nil {
		return highvalue.Notification{}, fmt.Errorf("failed to create high-value notification: %w", err)
	}
	return created, nil
}

func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id string) (highvalue.Notification, error) {
	return r.get(ctx, `SELECT `+notificationColumns+` FROM high_value_notifications WHERE id = $1`, id)
}

func (r *notificationRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (highvalue.Notification, error) {
	return r.get(ctx, `SELECT `+notificationColumns+` FROM high_value_notifications WHERE id = $1 FOR UPDATE`, id)
}

func (r *notificationRepositoryImpl) get(ctx context.Context, query string, id string) (highvalue.Notification, error) {
	q := GetQuerier(ctx, r.db)

	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return highvalue.Notification{}, highvalue.ErrNotificationNotFound
		}
		return highvalue.Notification{}, fmt.Errorf("failed to get high-value notification: %w", err)
	}
	return n, nil
}

func (r *notificationRepositoryImpl) List(ctx context.Context, filter highvalue.NotificationFilter) ([]highvalue.Notification, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	query := `SELECT ` + notificationColumns + ` FROM high_value_notifications`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list high-value notifications: %w", err)
	}
	return collectNotifications(rows)
}

func (r *notificationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]highvalue.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + notificationColumns + `
		FROM high_value_notifications
		WHERE employee_id = $1 AND sale_date BETWEEN $2 AND $3
		ORDER BY sale_date, created_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list high-value notifications for employee: %w", err)
	}
	return collectNotifications(rows)
}

func (r *notificationRepositoryImpl) MarkReviewed(ctx context.Context, id string, adminBonus *decimal.Decimal, reviewedBy string, at time.Time) (highvalue.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE high_value_notifications
		SET status = $1, admin_bonus = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
		RETURNING ` + notificationColumns

	n, err := scanNotification(q.QueryRow(ctx, query,
		highvalue.StatusReviewed, adminBonus, reviewedBy, at, id, highvalue.StatusPending,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return highvalue.Notification{}, highvalue.ErrNotificationAlreadyReviewed
		}
		return highvalue.Notification{}, fmt.Errorf("failed to mark notification reviewed: %w", err)
	}
	return n, nil
}
