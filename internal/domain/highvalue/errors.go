package highvalue

import "errors"

var (
	ErrNotificationNotFound        = errors.New("high-value notification not found")
	ErrNotificationAlreadyReviewed = errors.New("high-value notification already reviewed")
	ErrNegativeAdminBonus          = errors.New("admin bonus must be non-negative")
	ErrInvalidStatus               = errors.New("status must be pending or reviewed")
)
