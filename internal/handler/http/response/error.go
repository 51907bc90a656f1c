package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrMissingEmployeeID):
		Unauthorized(w, "Token is not bound to an employee")
	case errors.Is(err, auth.ErrInvalidSignature):
		Unauthorized(w, "Invalid webhook signature")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin role required")
	case errors.Is(err, auth.ErrMalformedEventBody), errors.Is(err, auth.ErrEmployeeNotProvided):
		BadRequest(w, err.Error(), nil)

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrExternalIDExists):
		Conflict(w, "Employee already provisioned for this identity")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, employee.ErrInvalidRole), errors.Is(err, employee.ErrInvalidStatus),
		errors.Is(err, employee.ErrNegativeRate), errors.Is(err, employee.ErrEffectiveDateRequired):
		BadRequest(w, err.Error(), nil)

	// Time log
	case errors.Is(err, timelog.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, timelog.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, timelog.ErrAlreadyOnBreak):
		Conflict(w, "Break already in progress")
	case errors.Is(err, timelog.ErrBreakNotStarted):
		Conflict(w, "No break in progress")
	case errors.Is(err, timelog.ErrBreakAlreadyTaken):
		Conflict(w, "Break already taken for this session")
	case errors.Is(err, timelog.ErrActionInProgress):
		Conflict(w, "Another clock action is in progress")
	case errors.Is(err, timelog.ErrSessionNotFound):
		NotFound(w, "Session not found")

	// Sales and reviews
	case errors.Is(err, sale.ErrPolicyNumberExists):
		Conflict(w, "Policy number already recorded")
	case errors.Is(err, sale.ErrSaleNotFound):
		NotFound(w, "Policy sale not found")
	case errors.Is(err, sale.ErrReviewNotFound):
		NotFound(w, "Client review not found")
	case errors.Is(err, sale.ErrInvalidRating), errors.Is(err, sale.ErrNegativeAmount),
		errors.Is(err, sale.ErrCrossSoldPolicyNumber):
		BadRequest(w, err.Error(), nil)

	// High-value adjudication
	case errors.Is(err, highvalue.ErrNotificationNotFound):
		NotFound(w, "High-value notification not found")
	case errors.Is(err, highvalue.ErrNotificationAlreadyReviewed):
		Conflict(w, "High-value notification already reviewed")
	case errors.Is(err, highvalue.ErrNegativeAdminBonus), errors.Is(err, highvalue.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Payroll
	case errors.Is(err, payroll.ErrInvalidOffset), errors.Is(err, payroll.ErrInvalidPrevious):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrExportFailed):
		InternalServerError(w, "Failed to render payroll export")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
