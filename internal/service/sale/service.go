package sale

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/money"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/operator"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/broker-payroll-go/internal/service/bonus"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const eventHighValuePolicy = "high_value_policy"

type SaleServiceImpl struct {
	db               database.Transactor
	saleRepo         sale.SaleRepository
	reviewRepo       sale.ReviewRepository
	ledgerRepo       sale.BonusLedgerRepository
	notificationRepo highvalue.NotificationRepository
	employeeRepo     employee.EmployeeRepository
	calculator       *bonus.Calculator
	publisher        sse.Publisher
	reporter         operator.Reporter
	loc              *time.Location
	now              func() time.Time
}

func NewSaleService(
	db database.Transactor,
	saleRepo sale.SaleRepository,
	reviewRepo sale.ReviewRepository,
	ledgerRepo sale.BonusLedgerRepository,
	notificationRepo highvalue.NotificationRepository,
	employeeRepo employee.EmployeeRepository,
	calculator *bonus.Calculator,
	publisher sse.Publisher,
	reporter operator.Reporter,
	loc *time.Location,
) *SaleServiceImpl {
	return &SaleServiceImpl{
		db:               db,
		saleRepo:         saleRepo,
		reviewRepo:       reviewRepo,
		ledgerRepo:       ledgerRepo,
		notificationRepo: notificationRepo,
		employeeRepo:     employeeRepo,
		calculator:       calculator,
		publisher:        publisher,
		reporter:         reporter,
		loc:              loc,
		now:              time.Now,
	}
}

// SetClock replaces time.Now, for tests.
func (s *SaleServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

func (s *SaleServiceImpl) activeEmployee(ctx context.Context, employeeID string) error {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if !emp.IsActive() {
		return employee.ErrEmployeeInactive
	}
	return nil
}

// dateOrToday parses an optional YYYY-MM-DD value, defaulting to the local calendar day.
func (s *SaleServiceImpl) dateOrToday(value string) time.Time {
	if value == "" {
		return timeutil.LocalDateOf(s.now(), s.loc)
	}
	d, _ := timeutil.ParseDate(value)
	return d
}

func (s *SaleServiceImpl) RecordSale(ctx context.Context, employeeID string, req sale.RecordSaleRequest) (sale.RecordSaleResponse, error) {
	if err := req.Validate(); err != nil {
		return sale.RecordSaleResponse{}, err
	}
	if err := s.activeEmployee(ctx, employeeID); err != nil {
		return sale.RecordSaleResponse{}, err
	}

	saleDate := s.dateOrToday(req.SaleDate)

	primary := sale.PolicySale{
		EmployeeID:   employeeID,
		PolicyNumber: req.PolicyNumber,
		ClientName:   req.ClientName,
		Amount:       money.Round(req.Amount),
		BrokerFee:    money.Round(req.BrokerFee),
		PolicyType:   req.PolicyType,
		SaleDate:     saleDate,
	}
	pending := []sale.PolicySale{primary}

	if req.CrossSold != nil {
		groupID := uuid.NewString()
		secondaryType := req.CrossSold.PolicyType

		pending[0].CrossSold = true
		pending[0].CrossSellGroupID = &groupID
		pending[0].CrossSoldPolicyType = &secondaryType

		pending = append(pending, sale.PolicySale{
			EmployeeID:        employeeID,
			PolicyNumber:      req.CrossSold.PolicyNumber,
			ClientName:        req.ClientName,
			Amount:            money.Round(req.CrossSold.Amount),
			BrokerFee:         money.Round(req.CrossSold.BrokerFee),
			PolicyType:        secondaryType,
			SaleDate:          saleDate,
			IsCrossSoldPolicy: true,
			CrossSellGroupID:  &groupID,
		})
	}

	resp := sale.RecordSaleResponse{Bonus: decimal.Zero}
	var notifications []highvalue.Notification

	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, ps := range pending {
			breakdown := s.calculator.BonusForSale(ps)
			ps.HighValue = breakdown.HighValue
			ps.BrokerFeeBonus = breakdown.BrokerFee
			ps.CrossSellBonus = breakdown.CrossSell
			ps.LifeInsuranceBonus = breakdown.LifeInsurance
			ps.Bonus = breakdown.Total

			created, err := s.saleRepo.Create(ctx, ps)
			if err != nil {
				return err
			}
			resp.Sales = append(resp.Sales, sale.ToSaleResponse(created))
			resp.Bonus = resp.Bonus.Add(created.Bonus)

			if !created.HighValue {
				continue
			}

			n, err := s.notificationRepo.Create(ctx, highvalue.Notification{
				EmployeeID:   employeeID,
				SaleID:       created.ID,
				PolicyNumber: created.PolicyNumber,
				PolicyAmount: created.Amount,
				BrokerFee:    created.BrokerFee,
				CurrentBonus: bonus.StandardBonus(created).Total,
				Status:       highvalue.StatusPending,
				SaleDate:     created.SaleDate,
			})
			if err != nil {
				return fmt.Errorf("failed to create high-value notification: %w", err)
			}
			notifications = append(notifications, n)
			resp.NotificationIDs = append(resp.NotificationIDs, n.ID)
		}

		ledger, err := s.ledgerRepo.Add(ctx, employeeID, resp.Bonus)
		if err != nil {
			return fmt.Errorf("failed to update bonus ledger: %w", err)
		}
		resp.LedgerTotal = ledger.TotalBonus
		return nil
	})
	if err != nil {
		return sale.RecordSaleResponse{}, err
	}

	slog.InfoContext(ctx, "Policy sale recorded",
		"employee_id", employeeID,
		"policy_number", req.PolicyNumber,
		"cross_sold", req.CrossSold != nil,
		"bonus", resp.Bonus.StringFixed(2),
	)

	for _, n := range notifications {
		s.announceHighValue(ctx, n)
	}

	return resp, nil
}

func (s *SaleServiceImpl) announceHighValue(ctx context.Context, n highvalue.Notification) {
	s.publisher.Publish(sse.TopicAdmins, sse.Event{
		Event: eventHighValuePolicy,
		Data: highvalue.HighValueEvent{
			NotificationID: n.ID,
			EmployeeID:     n.EmployeeID,
			PolicyNumber:   n.PolicyNumber,
			PolicyAmount:   n.PolicyAmount,
			CurrentBonus:   n.CurrentBonus,
		},
	})
	s.reporter.Report(ctx, "high-value policy awaiting adjudication", map[string]any{
		"notification_id": n.ID,
		"employee_id":     n.EmployeeID,
		"policy_number":   n.PolicyNumber,
		"policy_amount":   n.PolicyAmount.StringFixed(2),
	})
}

func (s *SaleServiceImpl) RecordReview(ctx context.Context, employeeID string, req sale.RecordReviewRequest) (sale.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return sale.ReviewResponse{}, err
	}
	if err := s.activeEmployee(ctx, employeeID); err != nil {
		return sale.ReviewResponse{}, err
	}

	review := sale.ClientReview{
		EmployeeID: employeeID,
		ClientName: req.ClientName,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewDate: s.dateOrToday(req.ReviewDate),
	}
	review.Bonus = s.calculator.Bonus(bonus.ReviewSource{Review: review})

	var created sale.ClientReview
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.reviewRepo.Create(ctx, review)
		if err != nil {
			return err
		}
		if created.Bonus.IsZero() {
			return nil
		}
		if _, err := s.ledgerRepo.Add(ctx, employeeID, created.Bonus); err != nil {
			return fmt.Errorf("failed to update bonus ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return sale.ReviewResponse{}, err
	}

	slog.InfoContext(ctx, "Client review recorded", "employee_id", employeeID, "rating", created.Rating)
	return sale.ToReviewResponse(created), nil
}

func (s *SaleServiceImpl) ListSales(ctx context.Context, employeeID string, filter sale.DateRangeFilter) ([]sale.SaleResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	from, _ := timeutil.ParseDate(filter.From)
	to, _ := timeutil.ParseDate(filter.To)

	sales, err := s.saleRepo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]sale.SaleResponse, 0, len(sales))
	for _, ps := range sales {
		resp = append(resp, sale.ToSaleResponse(ps))
	}
	return resp, nil
}

func (s *SaleServiceImpl) ListReviews(ctx context.Context, employeeID string, filter sale.DateRangeFilter) ([]sale.ReviewResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	from, _ := timeutil.ParseDate(filter.From)
	to, _ := timeutil.ParseDate(filter.To)

	reviews, err := s.reviewRepo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]sale.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, sale.ToReviewResponse(r))
	}
	return resp, nil
}

func (s *SaleServiceImpl) GetBonusTotal(ctx context.Context, employeeID string) (sale.BonusTotalResponse, error) {
	ledger, err := s.ledgerRepo.Get(ctx, employeeID)
	if err != nil {
		return sale.BonusTotalResponse{}, err
	}

	resp := sale.BonusTotalResponse{
		EmployeeID: employeeID,
		TotalBonus: ledger.TotalBonus,
	}
	if !ledger.UpdatedAt.IsZero() {
		resp.UpdatedAt = &ledger.UpdatedAt
	}
	return resp, nil
}
