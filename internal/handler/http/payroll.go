package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	ListPeriods(w http.ResponseWriter, r *http.Request)
	GetPeriod(w http.ResponseWriter, r *http.Request)
	ExportPeriod(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	req := payroll.PeriodsRequest{}
	if raw := r.URL.Query().Get("previous"); raw != "" {
		previous, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "previous must be an integer", nil)
			return
		}
		req.Previous = previous
	}

	result, err := h.payrollService.GetPeriods(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	offset, ok := offsetParam(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetPeriodPayroll(r.Context(), offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ExportPeriod(w http.ResponseWriter, r *http.Request) {
	offset, ok := offsetParam(w, r)
	if !ok {
		return
	}

	file, err := h.payrollService.ExportPeriodPayroll(r.Context(), offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

func offsetParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	offset, err := strconv.Atoi(chi.URLParam(r, "offset"))
	if err != nil {
		response.BadRequest(w, "offset must be an integer", nil)
		return 0, false
	}
	return offset, true
}
