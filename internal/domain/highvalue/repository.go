package highvalue

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	GetByID(ctx context.Context, id string) (Notification, error)
	// GetByIDForUpdate locks the row inside the caller's transaction
	GetByIDForUpdate(ctx context.Context, id string) (Notification, error)
	List(ctx context.Context, filter NotificationFilter) ([]Notification, error)
	// ListByEmployee is inclusive on both sale dates
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Notification, error)
	MarkReviewed(ctx context.Context, id string, adminBonus *decimal.Decimal, reviewedBy string, at time.Time) (Notification, error)
}
