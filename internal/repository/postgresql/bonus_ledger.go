package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type bonusLedgerRepositoryImpl struct {
	db *database.DB
}

func NewBonusLedgerRepository(db *database.DB) sale.BonusLedgerRepository {
	return &bonusLedgerRepositoryImpl{db: db}
}

func (r *bonusLedgerRepositoryImpl) Add(ctx context.Context, employeeID string, delta decimal.Decimal) (sale.BonusLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_bonus_totals (employee_id, total_bonus)
		VALUES ($1, $2)
		ON CONFLICT (employee_id) DO UPDATE SET
			total_bonus = employee_bonus_totals.total_bonus + EXCLUDED.total_bonus,
			updated_at = NOW()
		RETURNING employee_id, total_bonus, updated_at
	`

	var l sale.BonusLedger
	if err := q.QueryRow(ctx, query, employeeID, delta).Scan(&l.EmployeeID, &l.TotalBonus, &l.UpdatedAt); err != nil {
		return sale.BonusLedger{}, fmt.Errorf("failed to update bonus ledger: %w", err)
	}
	return l, nil
}

func (r *bonusLedgerRepositoryImpl) Get(ctx context.Context, employeeID string) (sale.BonusLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT employee_id, total_bonus, updated_at FROM employee_bonus_totals WHERE employee_id = $1`

	var l sale.BonusLedger
	err := q.QueryRow(ctx, query, employeeID).Scan(&l.EmployeeID, &l.TotalBonus, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sale.BonusLedger{EmployeeID: employeeID, TotalBonus: decimal.Zero}, nil
		}
		return sale.BonusLedger{}, fmt.Errorf("failed to get bonus ledger: %w", err)
	}
	return l, nil
}
