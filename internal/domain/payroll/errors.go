package payroll

import "errors"

var (
	ErrInvalidOffset   = errors.New("period offset must be zero or negative")
	ErrInvalidPrevious = errors.New("previous period count must be between 0 and 26")
	ErrExportFailed    = errors.New("failed to build payroll export")
)
