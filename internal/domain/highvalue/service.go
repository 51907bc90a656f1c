package highvalue

import "context"

type HighValueService interface {
	ListNotifications(ctx context.Context, filter NotificationFilter) ([]NotificationResponse, error)
	// Adjudicate resolves a pending notification and credits the payable bonus
	Adjudicate(ctx context.Context, adminID string, req AdjudicateRequest) (NotificationResponse, error)
}
