package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HighValueHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Adjudicate(w http.ResponseWriter, r *http.Request)
}

type highValueHandlerImpl struct {
	highValueService highvalue.HighValueService
}

func NewHighValueHandler(highValueService highvalue.HighValueService) HighValueHandler {
	return &highValueHandlerImpl{highValueService: highValueService}
}

func (h *highValueHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter highvalue.NotificationFilter
	if status := r.URL.Query().Get("status"); status != "" {
		s := highvalue.Status(status)
		filter.Status = &s
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	result, err := h.highValueService.ListNotifications(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Adjudicate accepts an empty body, which keeps the automatic bonus.
func (h *highValueHandlerImpl) Adjudicate(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req highvalue.AdjudicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.NotificationID = chi.URLParam(r, "id")

	result, err := h.highValueService.Adjudicate(r.Context(), claims.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "High-value policy reviewed", result)
}
