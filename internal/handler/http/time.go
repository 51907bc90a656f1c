package http

import (
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
)

type TimeHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Sessions(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type timeHandlerImpl struct {
	timeLogService timelog.TimeLogService
}

func NewTimeHandler(timeLogService timelog.TimeLogService) TimeHandler {
	return &timeHandlerImpl{timeLogService: timeLogService}
}

func (h *timeHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	result, err := h.timeLogService.ClockIn(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", result)
}

func (h *timeHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	result, err := h.timeLogService.ClockOut(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", result)
}

func (h *timeHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	result, err := h.timeLogService.StartBreak(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

func (h *timeHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	result, err := h.timeLogService.EndBreak(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

func (h *timeHandlerImpl) Sessions(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	filter := timelog.SessionFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	result, err := h.timeLogService.GetSessions(r.Context(), claims.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timeHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	result, err := h.timeLogService.GetHoursSummary(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
