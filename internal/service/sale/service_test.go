package sale

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/broker-payroll-go/internal/repository/memory"
	"github.com/cmlabs-hris/broker-payroll-go/internal/service/bonus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []sse.Event
}

func (p *recordingPublisher) Publish(topic string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	event.Topic = topic
	p.events = append(p.events, event)
}

type recordingReporter struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingReporter) Report(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type fixture struct {
	svc       *SaleServiceImpl
	store     *memory.Store
	publisher *recordingPublisher
	reporter  *recordingReporter
	empID     string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		FullName:   "Alice",
		Email:      "alice@example.com",
		Role:       employee.RoleEmployee,
		Status:     employee.StatusActive,
		HourlyRate: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	pub := &recordingPublisher{}
	rep := &recordingReporter{}
	svc := NewSaleService(
		store,
		store.Sales(),
		store.Reviews(),
		store.Ledger(),
		store.Notifications(),
		store.Employees(),
		bonus.NewCalculator(decimal.NewFromInt(5000)),
		pub,
		rep,
		time.UTC,
	)
	svc.SetClock(func() time.Time { return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC) })

	return fixture{svc: svc, store: store, publisher: pub, reporter: rep, empID: emp.ID}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecordSale_StandardSale(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.RecordSale(context.Background(), f.empID, sale.RecordSaleRequest{
		PolicyNumber: "P-100",
		ClientName:   "Acme",
		Amount:       dec("1200"),
		BrokerFee:    dec("300"),
		PolicyType:   "auto",
	})
	require.NoError(t, err)

	require.Len(t, resp.Sales, 1)
	assert.Equal(t, "2025-01-15", resp.Sales[0].SaleDate)
	assert.True(t, dec("20").Equal(resp.Sales[0].BrokerFeeBonus))
	assert.True(t, dec("20").Equal(resp.Bonus))
	assert.True(t, dec("20").Equal(resp.LedgerTotal))
	assert.Empty(t, resp.NotificationIDs)
	assert.Empty(t, f.publisher.events)
}

func TestRecordSale_CrossSoldLifePair(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.RecordSale(context.Background(), f.empID, sale.RecordSaleRequest{
		PolicyNumber: "P-200",
		ClientName:   "Acme",
		Amount:       dec("1000"),
		BrokerFee:    dec("200"),
		PolicyType:   "auto",
		SaleDate:     "2025-01-10",
		CrossSold: &sale.CrossSoldPolicyRequest{
			PolicyNumber: "P-201",
			Amount:       dec("800"),
			BrokerFee:    dec("150"),
			PolicyType:   "Term Life",
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Sales, 2)

	primary, secondary := resp.Sales[0], resp.Sales[1]
	require.NotNil(t, primary.CrossSellGroupID)
	require.NotNil(t, secondary.CrossSellGroupID)
	assert.Equal(t, *primary.CrossSellGroupID, *secondary.CrossSellGroupID)
	assert.True(t, primary.CrossSold)
	assert.True(t, secondary.IsCrossSoldPolicy)

	// Primary: fee bonus 10, life referral via the paired policy 10.
	assert.True(t, dec("10").Equal(primary.BrokerFeeBonus))
	assert.True(t, dec("0").Equal(primary.CrossSellBonus))
	assert.True(t, dec("10").Equal(primary.LifeInsuranceBonus))
	assert.True(t, dec("20").Equal(primary.Bonus))

	// Secondary: fee bonus 5 doubled, plus life 10.
	assert.True(t, dec("5").Equal(secondary.BrokerFeeBonus))
	assert.True(t, dec("5").Equal(secondary.CrossSellBonus))
	assert.True(t, dec("10").Equal(secondary.LifeInsuranceBonus))
	assert.True(t, dec("20").Equal(secondary.Bonus))

	assert.True(t, dec("40").Equal(resp.LedgerTotal), "ledger %s", resp.LedgerTotal)
}

func TestRecordSale_HighValueCreatesPendingNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.RecordSale(ctx, f.empID, sale.RecordSaleRequest{
		PolicyNumber: "P-300",
		ClientName:   "Big Corp",
		Amount:       dec("5000"),
		BrokerFee:    dec("1100"),
		PolicyType:   "commercial",
	})
	require.NoError(t, err)

	require.Len(t, resp.Sales, 1)
	assert.True(t, resp.Sales[0].HighValue)
	assert.True(t, resp.Sales[0].Bonus.IsZero())
	assert.True(t, resp.LedgerTotal.IsZero())
	require.Len(t, resp.NotificationIDs, 1)

	n, err := f.store.Notifications().GetByID(ctx, resp.NotificationIDs[0])
	require.NoError(t, err)
	assert.Equal(t, highvalue.StatusPending, n.Status)
	assert.True(t, dec("100").Equal(n.CurrentBonus), "current bonus %s", n.CurrentBonus)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, sse.TopicAdmins, f.publisher.events[0].Topic)
	assert.Equal(t, "high_value_policy", f.publisher.events[0].Event)
	assert.Equal(t, []string{"high-value policy awaiting adjudication"}, f.reporter.events)
}

func TestRecordSale_DuplicatePolicyRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordSale(ctx, f.empID, sale.RecordSaleRequest{
		PolicyNumber: "P-400", ClientName: "Acme", Amount: dec("100"), BrokerFee: dec("200"), PolicyType: "auto",
	})
	require.NoError(t, err)

	// The secondary collides, so the new primary must not survive either.
	_, err = f.svc.RecordSale(ctx, f.empID, sale.RecordSaleRequest{
		PolicyNumber: "P-401", ClientName: "Acme", Amount: dec("100"), BrokerFee: dec("200"), PolicyType: "auto",
		CrossSold: &sale.CrossSoldPolicyRequest{PolicyNumber: "P-400", Amount: dec("50"), BrokerFee: dec("0"), PolicyType: "home"},
	})
	assert.ErrorIs(t, err, sale.ErrPolicyNumberExists)

	sales, err := f.svc.ListSales(ctx, f.empID, sale.DateRangeFilter{From: "2025-01-01", To: "2025-01-31"})
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	total, err := f.svc.GetBonusTotal(ctx, f.empID)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(total.TotalBonus))
}

func TestRecordSale_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RecordSale(context.Background(), f.empID, sale.RecordSaleRequest{
		PolicyNumber: "P-500", ClientName: "Acme", Amount: dec("-1"), BrokerFee: dec("0"), PolicyType: "auto",
	})
	assert.Error(t, err)

	_, err = f.svc.RecordSale(context.Background(), f.empID, sale.RecordSaleRequest{
		PolicyNumber: "P-501", ClientName: "Acme", Amount: dec("1"), BrokerFee: dec("0"), PolicyType: "auto",
		CrossSold: &sale.CrossSoldPolicyRequest{PolicyNumber: "P-501", PolicyType: "home"},
	})
	assert.Error(t, err)
}

func TestRecordSale_InactiveEmployee(t *testing.T) {
	f := newFixture(t)
	inactive, err := f.store.Employees().Create(context.Background(), employee.Employee{
		FullName: "Carol", Role: employee.RoleEmployee, Status: employee.StatusInactive,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordSale(context.Background(), inactive.ID, sale.RecordSaleRequest{
		PolicyNumber: "P-600", ClientName: "Acme", Amount: dec("1"), BrokerFee: dec("0"), PolicyType: "auto",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestRecordReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	five, err := f.svc.RecordReview(ctx, f.empID, sale.RecordReviewRequest{ClientName: "Acme", Rating: 5})
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(five.Bonus))
	assert.Equal(t, "2025-01-15", five.ReviewDate)

	four, err := f.svc.RecordReview(ctx, f.empID, sale.RecordReviewRequest{ClientName: "Acme", Rating: 4, ReviewDate: "2025-01-14"})
	require.NoError(t, err)
	assert.True(t, four.Bonus.IsZero())

	_, err = f.svc.RecordReview(ctx, f.empID, sale.RecordReviewRequest{ClientName: "Acme", Rating: 6})
	assert.Error(t, err)

	reviews, err := f.svc.ListReviews(ctx, f.empID, sale.DateRangeFilter{From: "2025-01-01", To: "2025-01-31"})
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	total, err := f.svc.GetBonusTotal(ctx, f.empID)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(total.TotalBonus))
	assert.NotNil(t, total.UpdatedAt)
}

func TestGetBonusTotal_NoLedgerRow(t *testing.T) {
	f := newFixture(t)

	total, err := f.svc.GetBonusTotal(context.Background(), f.empID)
	require.NoError(t, err)
	assert.True(t, total.TotalBonus.IsZero())
	assert.Nil(t, total.UpdatedAt)
}
