package auth

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrMissingEmployeeID   = errors.New("token has no employee_id claim")
	ErrAdminRequired       = errors.New("admin role required")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrMalformedEventBody  = errors.New("malformed identity event body")
	ErrEmployeeNotProvided = errors.New("identity event has no user payload")
)
