package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrExternalIDExists      = errors.New("employee already provisioned for this identity")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidRole           = errors.New("role must be employee or admin")
	ErrInvalidStatus         = errors.New("status must be active, inactive or on_leave")
	ErrNegativeRate          = errors.New("hourly rate must be non-negative")
	ErrEffectiveDateRequired = errors.New("effective date is required")
	ErrEmployeeInactive      = errors.New("employee is not active")
)
