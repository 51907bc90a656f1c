// Package memory holds in-memory repositories for tests and local runs without Postgres.
package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/timelog"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	employees     map[string]employee.Employee
	sessions      map[string]timelog.TimeSession
	sales         map[string]sale.PolicySale
	reviews       map[string]sale.ClientReview
	notifications map[string]highvalue.Notification
	ledgers       map[string]sale.BonusLedger

	// failures makes reads for an employee fail, to exercise degraded paths.
	failures map[string]error
}

func NewStore() *Store {
	return &Store{
		employees:     make(map[string]employee.Employee),
		sessions:      make(map[string]timelog.TimeSession),
		sales:         make(map[string]sale.PolicySale),
		reviews:       make(map[string]sale.ClientReview),
		notifications: make(map[string]highvalue.Notification),
		ledgers:       make(map[string]sale.BonusLedger),
		failures:      make(map[string]error),
	}
}

// FailReadsFor makes every per-employee list call for employeeID return err.
func (s *Store) FailReadsFor(employeeID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[employeeID] = err
}

func (s *Store) failure(employeeID string) error {
	return s.failures[employeeID]
}

// WithinTransaction serializes transactions and restores a snapshot when fn fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	employees     map[string]employee.Employee
	sessions      map[string]timelog.TimeSession
	sales         map[string]sale.PolicySale
	reviews       map[string]sale.ClientReview
	notifications map[string]highvalue.Notification
	ledgers       map[string]sale.BonusLedger
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		employees:     cloneMap(s.employees),
		sessions:      cloneMap(s.sessions),
		sales:         cloneMap(s.sales),
		reviews:       cloneMap(s.reviews),
		notifications: cloneMap(s.notifications),
		ledgers:       cloneMap(s.ledgers),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = snap.employees
	s.sessions = snap.sessions
	s.sales = snap.sales
	s.reviews = snap.reviews
	s.notifications = snap.notifications
	s.ledgers = snap.ledgers
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{store: s}
}

func (s *Store) Sessions() timelog.TimeSessionRepository {
	return &sessionRepository{store: s}
}

func (s *Store) Sales() sale.SaleRepository {
	return &saleRepository{store: s}
}

func (s *Store) Reviews() sale.ReviewRepository {
	return &reviewRepository{store: s}
}

func (s *Store) Ledger() sale.BonusLedgerRepository {
	return &ledgerRepository{store: s}
}

func (s *Store) Notifications() highvalue.NotificationRepository {
	return &notificationRepository{store: s}
}
