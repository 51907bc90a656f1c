package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const saleColumns = `id, employee_id, policy_number, client_name, amount, broker_fee, policy_type, sale_date,
	cross_sold, is_cross_sold_policy, cross_sell_group_id, cross_sold_policy_type, high_value,
	broker_fee_bonus, cross_sell_bonus, life_insurance_bonus, bonus, created_at`

type saleRepositoryImpl struct {
	db *database.DB
}

func NewSaleRepository(db *database.DB) sale.SaleRepository {
	return &saleRepositoryImpl{db: db}
}

func scanSale(row pgx.Row) (sale.PolicySale, error) {
	var s sale.PolicySale
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.PolicyNumber, &s.ClientName, &s.Amount, &s.BrokerFee, &s.PolicyType, &s.SaleDate,
		&s.CrossSold, &s.IsCrossSoldPolicy, &s.CrossSellGroupID, &s.CrossSoldPolicyType, &s.HighValue,
		&s.BrokerFeeBonus, &s.CrossSellBonus, &s.LifeInsuranceBonus, &s.Bonus, &s.CreatedAt,
	)
	return s, err
}

func (r *saleRepositoryImpl) Create(ctx context.Context, s sale.PolicySale) (sale.PolicySale, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO policy_sales (
			employee_id, policy_number, client_name, amount, broker_fee, policy_type, sale_date,
			cross_sold, is_cross_sold_policy, cross_sell_group_id, cross_sold_policy_type, high_value,
			broker_fee_bonus, cross_sell_bonus, life_insurance_bonus, bonus
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + saleColumns

	created, err := scanSale(q.QueryRow(ctx, query,
		s.EmployeeID, s.PolicyNumber, s.ClientName, s.Amount, s.BrokerFee, s.PolicyType, s.SaleDate,
		s.CrossSold, s.IsCrossSoldPolicy, s.CrossSellGroupID, s.CrossSoldPolicyType, s.HighValue,
		s.BrokerFeeBonus, s.CrossSellBonus, s.LifeInsuranceBonus, s.Bonus,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_policy_sales_policy_number") {
			return sale.PolicySale{}, sale.ErrPolicyNumberExists
		}
		return sale.PolicySale{}, fmt.Errorf("failed to create policy sale: %w", err)
	}
	return created, nil
}

func (r *saleRepositoryImpl) GetByID(ctx context.Context, id string) (sale.PolicySale, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + saleColumns + ` FROM policy_sales WHERE id = $1`

	s, err := scanSale(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sale.PolicySale{}, sale.ErrSaleNotFound
		}
		return sale.PolicySale{}, fmt.Errorf("failed to get policy sale: %w", err)
	}
	return s, nil
}

func (r *saleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]sale.PolicySale, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + saleColumns + `
		FROM policy_sales
		WHERE employee_id = $1 AND sale_date BETWEEN $2 AND $3
		ORDER BY sale_date, created_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list policy sales: %w", err)
	}
	defer rows.Close()

	var sales []sale.PolicySale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate policy sales: %w", err)
	}
	return sales, nil
}
