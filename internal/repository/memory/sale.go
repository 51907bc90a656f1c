package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type saleRepository struct {
	store *Store
}

func (r *saleRepository) Create(_ context.Context, s sale.PolicySale) (sale.PolicySale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.sales {
		if existing.PolicyNumber == s.PolicyNumber {
			return sale.PolicySale{}, sale.ErrPolicyNumberExists
		}
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()
	r.store.sales[s.ID] = s
	return s, nil
}

func (r *saleRepository) GetByID(_ context.Context, id string) (sale.PolicySale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.sales[id]
	if !ok {
		return sale.PolicySale{}, sale.ErrSaleNotFound
	}
	return s, nil
}

func (r *saleRepository) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]sale.PolicySale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.failure(employeeID); err != nil {
		return nil, err
	}

	var out []sale.PolicySale
	for _, s := range r.store.sales {
		if s.EmployeeID == employeeID && inRange(s.SaleDate, from, to) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.Before(out[j].SaleDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type reviewRepository struct {
	store *Store
}

func (r *reviewRepository) Create(_ context.Context, review sale.ClientReview) (sale.ClientReview, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now().UTC()
	r.store.reviews[review.ID] = review
	return review, nil
}

func (r *reviewRepository) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]sale.ClientReview, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.failure(employeeID); err != nil {
		return nil, err
	}

	var out []sale.ClientReview
	for _, rv := range r.store.reviews {
		if rv.EmployeeID == employeeID && inRange(rv.ReviewDate, from, to) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReviewDate.Before(out[j].ReviewDate)
	})
	return out, nil
}

type ledgerRepository struct {
	store *Store
}

func (r *ledgerRepository) Add(_ context.Context, employeeID string, delta decimal.Decimal) (sale.BonusLedger, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.ledgers[employeeID]
	if !ok {
		l = sale.BonusLedger{EmployeeID: employeeID, TotalBonus: decimal.Zero}
	}
	l.TotalBonus = l.TotalBonus.Add(delta)
	l.UpdatedAt = time.Now().UTC()
	r.store.ledgers[employeeID] = l
	return l, nil
}

func (r *ledgerRepository) Get(_ context.Context, employeeID string) (sale.BonusLedger, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	l, ok := r.store.ledgers[employeeID]
	if !ok {
		return sale.BonusLedger{EmployeeID: employeeID, TotalBonus: decimal.Zero}, nil
	}
	return l, nil
}
