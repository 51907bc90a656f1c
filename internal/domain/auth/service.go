package auth

import "context"

// IdentityService applies identity provider lifecycle events to the employee roster.
type IdentityService interface {
	// HandleEvent provisions employees on user.created; other types are acknowledged
	// with Handled=false
	HandleEvent(ctx context.Context, event IdentityEvent) (IdentityEventResponse, error)
}
