package sale

import "context"

type SaleService interface {
	// RecordSale stores the sale (and its cross-sold pair), routes high-value amounts
	// to adjudication and updates the bonus ledger in one transaction
	RecordSale(ctx context.Context, employeeID string, req RecordSaleRequest) (RecordSaleResponse, error)

	RecordReview(ctx context.Context, employeeID string, req RecordReviewRequest) (ReviewResponse, error)

	ListSales(ctx context.Context, employeeID string, filter DateRangeFilter) ([]SaleResponse, error)
	ListReviews(ctx context.Context, employeeID string, filter DateRangeFilter) ([]ReviewResponse, error)

	GetBonusTotal(ctx context.Context, employeeID string) (BonusTotalResponse, error)
}
