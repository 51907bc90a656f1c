package payroll

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/broker-payroll-go/internal/repository/memory"
	"github.com/cmlabs-hris/broker-payroll-go/internal/service/bonus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type recordingReporter struct {
	mu     sync.Mutex
	events []map[string]any
}

func (r *recordingReporter) Report(_ context.Context, event string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fields["event"] = event
	r.events = append(r.events, fields)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

// fixedNow is mid-period: the current period runs Jan 06 - Jan 19, 2025.
var fixedNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, newYork)

type fixture struct {
	store    *memory.Store
	svc      *PayrollServiceImpl
	reporter *recordingReporter
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	reporter := &recordingReporter{}
	svc := NewPayrollService(
		store.Employees(), store.Sessions(), store.Sales(), store.Reviews(), store.Notifications(),
		bonus.NewCalculator(dec("5000")), reporter, newYork,
		WithClock(func() time.Time { return fixedNow }),
		WithConcurrency(2),
	)
	return fixture{store: store, svc: svc, reporter: reporter}
}

func (f fixture) addEmployee(t *testing.T, e employee.Employee) employee.Employee {
	t.Helper()
	if e.Status == "" {
		e.Status = employee.StatusActive
	}
	if e.Role == "" {
		e.Role = employee.RoleEmployee
	}
	created, err := f.store.Employees().Create(context.Background(), e)
	require.NoError(t, err)
	return created
}

func (f fixture) addWorkday(t *testing.T, employeeID string, day time.Time, inHour, outHour int) {
	t.Helper()
	in := time.Date(day.Year(), day.Month(), day.Day(), inHour, 0, 0, 0, newYork)
	out := time.Date(day.Year(), day.Month(), day.Day(), outHour, 0, 0, 0, newYork)
	_, err := f.store.Sessions().Create(context.Background(), timelog.TimeSession{
		EmployeeID: employeeID,
		Date:       timeutil.LocalDateOf(in, newYork),
		ClockIn:    in,
		ClockOut:   &out,
	})
	require.NoError(t, err)
}

func (f fixture) addSale(t *testing.T, s sale.PolicySale) {
	t.Helper()
	b := bonus.NewCalculator(dec("5000")).BonusForSale(s)
	s.HighValue = b.HighValue
	s.BrokerFeeBonus, s.CrossSellBonus, s.LifeInsuranceBonus, s.Bonus = b.BrokerFee, b.CrossSell, b.LifeInsurance, b.Total
	_, err := f.store.Sales().Create(context.Background(), s)
	require.NoError(t, err)
}

func (f fixture) addNotification(t *testing.T, n highvalue.Notification) {
	t.Helper()
	_, err := f.store.Notifications().Create(context.Background(), n)
	require.NoError(t, err)
}

// seed builds the shared scenario:
//   - Alice: 90h at a $20 historical rate, one standard sale, one reviewed high-value sale, one 5-star review
//   - Bob: admin, sessions ignored, one reviewed and one pending notification
//   - Carol: inactive, excluded
//   - Dave: no activity
//   - Erin: data fetch fails
func seed(t *testing.T, f fixture) {
	t.Helper()
	effective := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	alice := f.addEmployee(t, employee.Employee{
		FullName: "Alice", Email: "alice@example.com",
		HourlyRate: dec("25"), PreviousRate: decPtr("20"), RateEffectiveDate: &effective,
	})
	bob := f.addEmployee(t, employee.Employee{FullName: "Bob", Email: "bob@example.com", Role: employee.RoleAdmin, HourlyRate: dec("50")})
	carol := f.addEmployee(t, employee.Employee{FullName: "Carol", Email: "carol@example.com", Status: employee.StatusInactive, HourlyRate: dec("30")})
	f.addEmployee(t, employee.Employee{FullName: "Dave", Email: "dave@example.com", HourlyRate: dec("18")})
	erin := f.addEmployee(t, employee.Employee{FullName: "Erin", Email: "erin@example.com", HourlyRate: dec("22")})

	for day := 6; day <= 14; day++ {
		f.addWorkday(t, alice.ID, time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC), 8, 18)
		f.addWorkday(t, bob.ID, time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC), 9, 17)
		f.addWorkday(t, carol.ID, time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC), 9, 17)
	}

	f.addSale(t, sale.PolicySale{
		EmployeeID: alice.ID, PolicyNumber: "P-1", Amount: dec("1000"), BrokerFee: dec("200"),
		PolicyType: "Auto", SaleDate: time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC),
	})
	f.addSale(t, sale.PolicySale{
		EmployeeID: alice.ID, PolicyNumber: "P-2", Amount: dec("10000"), BrokerFee: dec("900"),
		PolicyType: "Term Life", SaleDate: time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC),
	})
	f.addSale(t, sale.PolicySale{
		EmployeeID: alice.ID, PolicyNumber: "P-3", Amount: dec("1000"), BrokerFee: dec("500"),
		PolicyType: "Auto", SaleDate: time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
	})
	f.addNotification(t, highvalue.Notification{
		EmployeeID: alice.ID, PolicyNumber: "P-2", PolicyAmount: dec("10000"), BrokerFee: dec("900"),
		CurrentBonus: dec("90"), Status: highvalue.StatusReviewed,
		SaleDate: time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC),
	})
	_, err := f.store.Reviews().Create(context.Background(), sale.ClientReview{
		EmployeeID: alice.ID, ClientName: "C", Rating: 5, Bonus: dec("10"),
		ReviewDate: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	f.addNotification(t, highvalue.Notification{
		EmployeeID: bob.ID, PolicyNumber: "P-9", PolicyAmount: dec("20000"), BrokerFee: dec("1000"),
		CurrentBonus: dec("90"), AdminBonus: decPtr("300"), Status: highvalue.StatusReviewed,
		SaleDate: time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC),
	})
	f.addNotification(t, highvalue.Notification{
		EmployeeID: bob.ID, PolicyNumber: "P-10", PolicyAmount: dec("20000"), BrokerFee: dec("1000"),
		CurrentBonus: dec("50"), Status: highvalue.StatusPending,
		SaleDate: time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC),
	})

	f.store.FailReadsFor(erin.ID, errors.New("connection reset"))
}

func TestGetPeriodPayroll_Scenario(t *testing.T) {
	f := newFixture(t)
	seed(t, f)

	report, err := f.svc.GetPeriodPayroll(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "Jan 06 - Jan 19, 2025", report.Period.Label())
	require.Len(t, report.Employees, 4)

	names := []string{}
	for _, e := range report.Employees {
		names = append(names, e.EmployeeName)
	}
	assert.Equal(t, []string{"Alice", "Bob", "Dave", "Erin"}, names)

	alice := report.Employees[0]
	assertDec(t, "90", alice.NetHours)
	assertDec(t, "80", alice.RegularHours)
	assertDec(t, "10", alice.OvertimeHours)
	assertDec(t, "20", alice.HourlyRate)
	assertDec(t, "1600", alice.RegularPay)
	assertDec(t, "200", alice.OvertimePay)
	assertDec(t, "10", alice.Bonuses.BrokerFee)
	assertDec(t, "0", alice.Bonuses.LifeInsurance)
	assertDec(t, "10", alice.Bonuses.Review)
	assertDec(t, "90", alice.Bonuses.HighValue)
	assertDec(t, "110", alice.Bonuses.Total)
	assertDec(t, "1910", alice.TotalPay)
	assert.Equal(t, 2, alice.SaleCount)
	assertDec(t, "11000", alice.SaleAmount)
	assertDec(t, "1100", alice.BrokerFees)

	bob := report.Employees[1]
	assertDec(t, "0", bob.NetHours)
	assertDec(t, "0", bob.RegularPay)
	assertDec(t, "300", bob.Bonuses.HighValue)
	assertDec(t, "300", bob.TotalPay)

	dave := report.Employees[2]
	assertDec(t, "0", dave.NetHours)
	assertDec(t, "0", dave.Bonuses.Total)
	assertDec(t, "0", dave.TotalPay)
	assert.False(t, dave.DataIncomplete)

	erin := report.Employees[3]
	assert.True(t, erin.DataIncomplete)
	assertDec(t, "0", erin.TotalPay)

	sum := decimal.Zero
	for _, e := range report.Employees {
		sum = sum.Add(e.TotalPay)
	}
	assert.True(t, sum.Equal(report.Summary.TotalPay))
	assertDec(t, "2210", report.Summary.TotalPay)
	assert.Equal(t, 4, report.Summary.EmployeeCount)
	assert.Equal(t, 1, report.Summary.IncompleteCount)
	assert.Equal(t, 2, report.Summary.SaleCount)

	require.Len(t, f.reporter.events, 1)
	assert.Equal(t, "payroll slice degraded", f.reporter.events[0]["event"])
}

func TestGetPeriodPayroll_Idempotent(t *testing.T) {
	f := newFixture(t)
	seed(t, f)

	first, err := f.svc.GetPeriodPayroll(context.Background(), 0)
	require.NoError(t, err)
	second, err := f.svc.GetPeriodPayroll(context.Background(), 0)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestGetPeriodPayroll_PreviousPeriodIsEmpty(t *testing.T) {
	f := newFixture(t)
	seed(t, f)

	report, err := f.svc.GetPeriodPayroll(context.Background(), -1)
	require.NoError(t, err)
	assert.Equal(t, payroll.PeriodCompleted, report.Period.Status)
	assertDec(t, "0", report.Summary.TotalPay)
}

func TestGetPeriodPayroll_RejectsUpcoming(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetPeriodPayroll(context.Background(), 1)
	assert.ErrorIs(t, err, payroll.ErrInvalidOffset)
}

func TestGetPeriods(t *testing.T) {
	f := newFixture(t)
	seed(t, f)

	overviews, err := f.svc.GetPeriods(context.Background(), payroll.PeriodsRequest{Previous: 2})
	require.NoError(t, err)
	require.Len(t, overviews, 4)

	current := overviews[2]
	assert.Equal(t, payroll.PeriodCurrent, current.Period.Status)
	require.NotNil(t, current.Summary)
	assertDec(t, "2210", current.Summary.TotalPay)

	upcoming := overviews[3]
	assert.Equal(t, payroll.PeriodUpcoming, upcoming.Period.Status)
	assert.Nil(t, upcoming.Summary)

	_, err = f.svc.GetPeriods(context.Background(), payroll.PeriodsRequest{Previous: -1})
	assert.Error(t, err)
}

func TestExportPeriodPayroll(t *testing.T) {
	f := newFixture(t)
	seed(t, f)

	file, err := f.svc.ExportPeriodPayroll(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "payroll_20250106_20250119.xlsx", file.Filename)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(employeesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Employee ID", rows[0][0])
	assert.Equal(t, "Alice", rows[1][1])
	assert.Equal(t, "1910", rows[1][15])

	summary, err := wb.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Period", "Jan 06 - Jan 19, 2025"}, summary[0])
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
