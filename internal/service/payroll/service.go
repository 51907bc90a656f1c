package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/money"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/operator"
	"github.com/cmlabs-hris/broker-payroll-go/internal/service/bonus"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

var regularHoursCap = decimal.NewFromInt(payroll.RegularHoursCap)

type PayrollServiceImpl struct {
	employeeRepo     employee.EmployeeRepository
	sessionRepo      timelog.TimeSessionRepository
	saleRepo         sale.SaleRepository
	reviewRepo       sale.ReviewRepository
	notificationRepo highvalue.NotificationRepository
	calculator       *bonus.Calculator
	reporter         operator.Reporter
	loc              *time.Location
	now              func() time.Time
	concurrency      int
}

type Option func(*PayrollServiceImpl)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *PayrollServiceImpl) { s.now = now }
}

func WithConcurrency(n int) Option {
	return func(s *PayrollServiceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	sessionRepo timelog.TimeSessionRepository,
	saleRepo sale.SaleRepository,
	reviewRepo sale.ReviewRepository,
	notificationRepo highvalue.NotificationRepository,
	calculator *bonus.Calculator,
	reporter operator.Reporter,
	loc *time.Location,
	opts ...Option,
) *PayrollServiceImpl {
	s := &PayrollServiceImpl{
		employeeRepo:     employeeRepo,
		sessionRepo:      sessionRepo,
		saleRepo:         saleRepo,
		reviewRepo:       reviewRepo,
		notificationRepo: notificationRepo,
		calculator:       calculator,
		reporter:         reporter,
		loc:              loc,
		now:              time.Now,
		concurrency:      defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PayrollServiceImpl) GetPeriods(ctx context.Context, req payroll.PeriodsRequest) ([]payroll.PeriodOverview, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.activeEmployees(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	periods := Periods(now, req.Previous, s.loc)
	overviews := make([]payroll.PeriodOverview, 0, len(periods))
	for _, p := range periods {
		if p.Status == payroll.PeriodUpcoming {
			overviews = append(overviews, payroll.PeriodOverview{Period: p})
			continue
		}

		report, err := s.PayrollForPeriod(ctx, p, employees, now)
		if err != nil {
			return nil, err
		}
		summary := report.Summary
		overviews = append(overviews, payroll.PeriodOverview{Period: p, Summary: &summary})
	}

	return overviews, nil
}

func (s *PayrollServiceImpl) GetPeriodPayroll(ctx context.Context, offset int) (payroll.PayrollReport, error) {
	if offset > 0 {
		return payroll.PayrollReport{}, payroll.ErrInvalidOffset
	}

	employees, err := s.activeEmployees(ctx)
	if err != nil {
		return payroll.PayrollReport{}, err
	}

	now := s.now()
	return s.PayrollForPeriod(ctx, PeriodFor(now, offset, s.loc), employees, now)
}

func (s *PayrollServiceImpl) activeEmployees(ctx context.Context) ([]employee.Employee, error) {
	active := employee.StatusActive
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{Status: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return employees, nil
}

// PayrollForPeriod folds every employee's hours, pay and bonuses for the period.
// A failed employee slice is reported and counted as zero activity; only a
// cancelled context aborts the run.
func (s *PayrollServiceImpl) PayrollForPeriod(ctx context.Context, period payroll.PayPeriod, employees []employee.Employee, asOf time.Time) (payroll.PayrollReport, error) {
	results := make([]payroll.EmployeePayroll, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, emp := range employees {
		g.Go(func() error {
			ep, err := s.employeePayroll(gctx, period, emp, asOf)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.reportDegraded(gctx, period, emp, err)
				ep = emptyPayroll(emp)
				ep.DataIncomplete = true
			}
			results[i] = ep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.PayrollReport{}, fmt.Errorf("payroll for %s cancelled: %w", period.Label(), err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].EmployeeName != results[j].EmployeeName {
			return results[i].EmployeeName < results[j].EmployeeName
		}
		return results[i].EmployeeID < results[j].EmployeeID
	})

	summary := emptySummary()
	for _, r := range results {
		summary = summary.Add(r)
	}

	return payroll.PayrollReport{
		Period:      period,
		Employees:   results,
		Summary:     summary,
		GeneratedAt: asOf.UTC(),
	}, nil
}

func (s *PayrollServiceImpl) employeePayroll(ctx context.Context, period payroll.PayPeriod, emp employee.Employee, asOf time.Time) (payroll.EmployeePayroll, error) {
	ep := emptyPayroll(emp)

	if emp.TracksHours() {
		sessions, err := s.sessionRepo.ListByDateRange(ctx, emp.ID, period.Start, period.End)
		if err != nil {
			return ep, fmt.Errorf("failed to fetch sessions: %w", err)
		}
		ep.NetHours = NetHours(sessions, asOf, s.loc)
		if stale := StaleOpenSessions(sessions, asOf, s.loc); len(stale) > 0 {
			ep.StaleSessions = len(stale)
			slog.WarnContext(ctx, "Stale open sessions excluded from payroll",
				"employee_id", emp.ID, "period", period.Label(), "count", len(stale))
		}
	}

	ep.RegularHours = money.Min(ep.NetHours, regularHoursCap)
	ep.OvertimeHours = money.NonNegative(ep.NetHours.Sub(regularHoursCap))
	ep.HourlyRate = RateForDate(emp, period.Start)
	ep.RegularPay = money.Round(ep.RegularHours.Mul(ep.HourlyRate))
	ep.OvertimePay = money.Round(ep.OvertimeHours.Mul(ep.HourlyRate).Mul(payroll.OvertimeMultiplier))

	sales, err := s.saleRepo.ListByEmployee(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return ep, fmt.Errorf("failed to fetch sales: %w", err)
	}
	for _, sl := range sales {
		ep.SaleCount++
		ep.SaleAmount = ep.SaleAmount.Add(sl.Amount)
		ep.BrokerFees = ep.BrokerFees.Add(sl.BrokerFee)
		if sl.HighValue {
			continue
		}
		ep.Bonuses.BrokerFee = ep.Bonuses.BrokerFee.Add(sl.BrokerFeeBonus)
		ep.Bonuses.CrossSell = ep.Bonuses.CrossSell.Add(sl.CrossSellBonus)
		ep.Bonuses.LifeInsurance = ep.Bonuses.LifeInsurance.Add(sl.LifeInsuranceBonus)
	}

	reviews, err := s.reviewRepo.ListByEmployee(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return ep, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	for _, r := range reviews {
		ep.Bonuses.Review = ep.Bonuses.Review.Add(s.calculator.Bonus(bonus.ReviewSource{Review: r}))
	}

	notifications, err := s.notificationRepo.ListByEmployee(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return ep, fmt.Errorf("failed to fetch high-value notifications: %w", err)
	}
	for _, n := range notifications {
		ep.Bonuses.HighValue = ep.Bonuses.HighValue.Add(s.calculator.Bonus(bonus.NotificationSource{Notification: n}))
	}

	ep.Bonuses.Total = money.Sum(
		ep.Bonuses.BrokerFee,
		ep.Bonuses.CrossSell,
		ep.Bonuses.LifeInsurance,
		ep.Bonuses.Review,
		ep.Bonuses.HighValue,
	)
	ep.TotalPay = money.Sum(ep.RegularPay, ep.OvertimePay, ep.Bonuses.Total)

	return ep, nil
}

func (s *PayrollServiceImpl) reportDegraded(ctx context.Context, period payroll.PayPeriod, emp employee.Employee, err error) {
	slog.ErrorContext(ctx, "Payroll slice failed, counting as zero activity",
		"employee_id", emp.ID, "period", period.Label(), "error", err)
	s.reporter.Report(ctx, "payroll slice degraded", map[string]any{
		"employee_id": emp.ID,
		"period":      period.Label(),
		"error":       err.Error(),
	})
}

func emptyPayroll(emp employee.Employee) payroll.EmployeePayroll {
	return payroll.EmployeePayroll{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.FullName,
		Role:           string(emp.Role),
		NetHours:       decimal.Zero,
		RegularHours:   decimal.Zero,
		OvertimeHours:  decimal.Zero,
		HourlyRate:     emp.HourlyRate,
		RegularPay:     decimal.Zero,
		OvertimePay:    decimal.Zero,
		Bonuses:        emptyBreakdown(),
		TotalPay:       decimal.Zero,
		SaleAmount:     decimal.Zero,
		BrokerFees:     decimal.Zero,
		DataIncomplete: false,
	}
}

func emptyBreakdown() payroll.BonusBreakdown {
	return payroll.BonusBreakdown{
		BrokerFee:     decimal.Zero,
		CrossSell:     decimal.Zero,
		LifeInsurance: decimal.Zero,
		Review:        decimal.Zero,
		HighValue:     decimal.Zero,
		Total:         decimal.Zero,
	}
}

func emptySummary() payroll.PayrollSummary {
	return payroll.PayrollSummary{
		NetHours:      decimal.Zero,
		RegularHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
		RegularPay:    decimal.Zero,
		OvertimePay:   decimal.Zero,
		Bonuses:       emptyBreakdown(),
		TotalPay:      decimal.Zero,
		SaleAmount:    decimal.Zero,
		BrokerFees:    decimal.Zero,
	}
}
