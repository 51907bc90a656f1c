package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
)

type SaleHandler interface {
	RecordSale(w http.ResponseWriter, r *http.Request)
	ListSales(w http.ResponseWriter, r *http.Request)
	RecordReview(w http.ResponseWriter, r *http.Request)
	ListReviews(w http.ResponseWriter, r *http.Request)
	BonusTotal(w http.ResponseWriter, r *http.Request)
}

type saleHandlerImpl struct {
	saleService sale.SaleService
}

func NewSaleHandler(saleService sale.SaleService) SaleHandler {
	return &saleHandlerImpl{saleService: saleService}
}

func (h *saleHandlerImpl) RecordSale(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req sale.RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.saleService.RecordSale(r.Context(), claims.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Sale recorded"
	if len(result.NotificationIDs) > 0 {
		message = "Sale recorded; high-value policy sent for review"
	}
	response.Created(w, message, result)
}

func (h *saleHandlerImpl) ListSales(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	result, err := h.saleService.ListSales(r.Context(), claims.EmployeeID, dateRangeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *saleHandlerImpl) RecordReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req sale.RecordReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.saleService.RecordReview(r.Context(), claims.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Review recorded", result)
}

func (h *saleHandlerImpl) ListReviews(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	result, err := h.saleService.ListReviews(r.Context(), claims.EmployeeID, dateRangeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *saleHandlerImpl) BonusTotal(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	result, err := h.saleService.GetBonusTotal(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func dateRangeFromQuery(r *http.Request) sale.DateRangeFilter {
	return sale.DateRangeFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
}
