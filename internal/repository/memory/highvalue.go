package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type notificationRepository struct {
	store *Store
}

func (r *notificationRepository) Create(_ context.Context, n highvalue.Notification) (highvalue.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	n.CreatedAt, n.UpdatedAt = now, now
	r.store.notifications[n.ID] = n
	return n, nil
}

func (r *notificationRepository) GetByID(_ context.Context, id string) (highvalue.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n, ok := r.store.notifications[id]
	if !ok {
		return highvalue.Notification{}, highvalue.ErrNotificationNotFound
	}
	return n, nil
}

// GetByIDForUpdate relies on Store.WithinTransaction serializing writers.
func (r *notificationRepository) GetByIDForUpdate(ctx context.Context, id string) (highvalue.Notification, error) {
	return r.GetByID(ctx, id)
}

func (r *notificationRepository) List(_ context.Context, filter highvalue.NotificationFilter) ([]highvalue.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []highvalue.Notification
	for _, n := range r.store.notifications {
		if filter.Status != nil && n.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && n.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *notificationRepository) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]highvalue.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.failure(employeeID); err != nil {
		return nil, err
	}

	var out []highvalue.Notification
	for _, n := range r.store.notifications {
		if n.EmployeeID == employeeID && inRange(n.SaleDate, from, to) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SaleDate.Before(out[j].SaleDate)
	})
	return out, nil
}

func (r *notificationRepository) MarkReviewed(_ context.Context, id string, adminBonus *decimal.Decimal, reviewedBy string, at time.Time) (highvalue.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.notifications[id]
	if !ok {
		return highvalue.Notification{}, highvalue.ErrNotificationNotFound
	}
	if n.IsReviewed() {
		return highvalue.Notification{}, highvalue.ErrNotificationAlreadyReviewed
	}
	n.Status = highvalue.StatusReviewed
	n.AdminBonus = adminBonus
	n.ReviewedBy = &reviewedBy
	n.ReviewedAt = &at
	n.UpdatedAt = at
	r.store.notifications[id] = n
	return n, nil
}
