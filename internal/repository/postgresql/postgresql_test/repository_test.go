package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/broker-payroll-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, externalID string) employee.Employee {
	t.Helper()
	e, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{
		ExternalID:             externalID,
		Email:                  externalID + "@brokerage.test",
		FullName:               "Test " + externalID,
		Role:                   employee.RoleEmployee,
		Status:                 employee.StatusActive,
		HourlyRate:             decimal.NewFromInt(25),
		MaxHoursBeforeOvertime: employee.DefaultMaxHoursBeforeOvertime,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeRepository_CreateAndUpdateRate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	e := createTestEmployee(t, ctx, db, "ext-1")
	assert.NotEmpty(t, e.ID)
	assert.Nil(t, e.PreviousRate)

	_, err := repo.Create(ctx, employee.Employee{
		ExternalID: "ext-1", Email: "other@brokerage.test", FullName: "Dup",
		Role: employee.RoleEmployee, Status: employee.StatusActive,
		HourlyRate: decimal.Zero, MaxHoursBeforeOvertime: employee.DefaultMaxHoursBeforeOvertime,
	})
	assert.ErrorIs(t, err, employee.ErrExternalIDExists)

	updated, err := repo.UpdateRate(ctx, e.ID, decimal.NewFromInt(30), date(2025, 1, 15))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(updated.HourlyRate))
	require.NotNil(t, updated.PreviousRate)
	assert.True(t, decimal.NewFromInt(25).Equal(*updated.PreviousRate))
	require.NotNil(t, updated.RateEffectiveDate)

	byExternal, err := repo.GetByExternalID(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, e.ID, byExternal.ID)

	_, err = repo.GetByExternalID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTimeSessionRepository_SingleOpenSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewTimeSessionRepository(db)
	e := createTestEmployee(t, ctx, db, "ext-time")

	clockIn := time.Date(2025, 1, 13, 14, 0, 0, 0, time.UTC)
	s, err := repo.Create(ctx, timelog.TimeSession{EmployeeID: e.ID, Date: date(2025, 1, 13), ClockIn: clockIn})
	require.NoError(t, err)
	assert.True(t, s.IsOpen())

	_, err = repo.Create(ctx, timelog.TimeSession{EmployeeID: e.ID, Date: date(2025, 1, 13), ClockIn: clockIn.Add(time.Minute)})
	assert.ErrorIs(t, err, timelog.ErrAlreadyClockedIn)

	open, err := repo.GetOpenSession(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, open.ID)

	_, err = repo.SetBreakStart(ctx, s.ID, clockIn.Add(2*time.Hour))
	require.NoError(t, err)

	closed, err := repo.Close(ctx, s.ID, clockIn.Add(3*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, closed.ClockOut)
	require.NotNil(t, closed.BreakEnd)
	assert.True(t, closed.BreakEnd.Equal(*closed.ClockOut))

	_, err = repo.GetOpenSession(ctx, e.ID)
	assert.ErrorIs(t, err, timelog.ErrSessionNotFound)

	sessions, err := repo.ListByDateRange(ctx, e.ID, date(2025, 1, 13), date(2025, 1, 13))
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestTimeSessionRepository_ListStaleOpenSessions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewTimeSessionRepository(db)
	e := createTestEmployee(t, ctx, db, "ext-stale")

	_, err := repo.Create(ctx, timelog.TimeSession{
		EmployeeID: e.ID, Date: date(2025, 1, 10), ClockIn: time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	stale, err := repo.ListStaleOpenSessions(ctx, date(2025, 1, 13))
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	stale, err = repo.ListStaleOpenSessions(ctx, date(2025, 1, 10))
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestSaleRepository_DuplicatePolicyNumber(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewSaleRepository(db)
	e := createTestEmployee(t, ctx, db, "ext-sale")

	newSale := sale.PolicySale{
		EmployeeID:     e.ID,
		PolicyNumber:   "POL-100",
		ClientName:     "Acme",
		Amount:         decimal.NewFromInt(1000),
		BrokerFee:      decimal.NewFromInt(200),
		PolicyType:     "auto",
		SaleDate:       date(2025, 1, 14),
		BrokerFeeBonus: decimal.NewFromInt(20),
		Bonus:          decimal.NewFromInt(20),
	}
	created, err := repo.Create(ctx, newSale)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(created.Bonus))

	_, err = repo.Create(ctx, newSale)
	assert.ErrorIs(t, err, sale.ErrPolicyNumberExists)

	sales, err := repo.ListByEmployee(ctx, e.ID, date(2025, 1, 1), date(2025, 1, 31))
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestBonusLedgerRepository_AddAccumulates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewBonusLedgerRepository(db)
	e := createTestEmployee(t, ctx, db, "ext-ledger")

	empty, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, empty.TotalBonus.IsZero())

	_, err = repo.Add(ctx, e.ID, decimal.NewFromInt(20))
	require.NoError(t, err)
	l, err := repo.Add(ctx, e.ID, decimal.RequireFromString("5.50"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25.50").Equal(l.TotalBonus))
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tx := postgresql.NewTransactor(db)
	ledger := postgresql.NewBonusLedgerRepository(db)
	e := createTestEmployee(t, ctx, db, "ext-tx")

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := ledger.Add(ctx, e.ID, decimal.NewFromInt(50)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	l, err := ledger.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, l.TotalBonus.IsZero())
}

func TestNotificationRepository_MarkReviewedOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	e := createTestEmployee(t, ctx, db, "ext-hv")
	admin := createTestEmployee(t, ctx, db, "ext-admin")

	s, err := postgresql.NewSaleRepository(db).Create(ctx, sale.PolicySale{
		EmployeeID: e.ID, PolicyNumber: "POL-HV", ClientName: "Big Co",
		Amount: decimal.NewFromInt(10000), BrokerFee: decimal.NewFromInt(2000),
		PolicyType: "commercial", SaleDate: date(2025, 1, 14), HighValue: true,
		BrokerFeeBonus: decimal.NewFromInt(100), Bonus: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	repo := postgresql.NewNotificationRepository(db)
	n, err := repo.Create(ctx, highvalue.Notification{
		EmployeeID: e.ID, SaleID: s.ID, PolicyNumber: s.PolicyNumber,
		PolicyAmount: s.Amount, BrokerFee: s.BrokerFee, CurrentBonus: s.Bonus,
		Status: highvalue.StatusPending, SaleDate: s.SaleDate,
	})
	require.NoError(t, err)

	pending := highvalue.StatusPending
	list, err := repo.List(ctx, highvalue.NotificationFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	override := decimal.NewFromInt(250)
	reviewed, err := repo.MarkReviewed(ctx, n.ID, &override, admin.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, reviewed.IsReviewed())
	require.NotNil(t, reviewed.AdminBonus)
	assert.True(t, override.Equal(*reviewed.AdminBonus))

	_, err = repo.MarkReviewed(ctx, n.ID, &override, admin.ID, time.Now())
	assert.ErrorIs(t, err, highvalue.ErrNotificationAlreadyReviewed)
}
