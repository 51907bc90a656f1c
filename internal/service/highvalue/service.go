package highvalue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/highvalue"
	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/money"
	"github.com/cmlabs-hris/broker-payroll-go/internal/service/bonus"
	"github.com/shopspring/decimal"
)

type HighValueServiceImpl struct {
	db               database.Transactor
	notificationRepo highvalue.NotificationRepository
	ledgerRepo       sale.BonusLedgerRepository
	calculator       *bonus.Calculator
	now              func() time.Time
}

func NewHighValueService(
	db database.Transactor,
	notificationRepo highvalue.NotificationRepository,
	ledgerRepo sale.BonusLedgerRepository,
	calculator *bonus.Calculator,
) *HighValueServiceImpl {
	return &HighValueServiceImpl{
		db:               db,
		notificationRepo: notificationRepo,
		ledgerRepo:       ledgerRepo,
		calculator:       calculator,
		now:              time.Now,
	}
}

func (s *HighValueServiceImpl) ListNotifications(ctx context.Context, filter highvalue.NotificationFilter) ([]highvalue.NotificationResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]highvalue.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, highvalue.ToResponse(n, s.calculator.Bonus(bonus.NotificationSource{Notification: n})))
	}
	return resp, nil
}

// Adjudicate marks a pending notification reviewed and credits its payable bonus to the
// employee's ledger in the same transaction. A nil or zero admin bonus keeps the
// automatic figure.
func (s *HighValueServiceImpl) Adjudicate(ctx context.Context, adminID string, req highvalue.AdjudicateRequest) (highvalue.NotificationResponse, error) {
	if err := req.Validate(); err != nil {
		return highvalue.NotificationResponse{}, err
	}

	adminBonus := req.AdminBonus
	if adminBonus != nil {
		rounded := money.Round(*adminBonus)
		adminBonus = &rounded
	}

	var reviewed highvalue.Notification
	payable := decimal.Zero

	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.notificationRepo.GetByIDForUpdate(ctx, req.NotificationID)
		if err != nil {
			return err
		}
		if n.IsReviewed() {
			return highvalue.ErrNotificationAlreadyReviewed
		}

		reviewed, err = s.notificationRepo.MarkReviewed(ctx, n.ID, adminBonus, adminID, s.now().UTC())
		if err != nil {
			return err
		}

		payable = s.calculator.Bonus(bonus.NotificationSource{Notification: reviewed})
		if payable.IsZero() {
			return nil
		}
		if _, err := s.ledgerRepo.Add(ctx, reviewed.EmployeeID, payable); err != nil {
			return fmt.Errorf("failed to update bonus ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return highvalue.NotificationResponse{}, err
	}

	slog.InfoContext(ctx, "High-value policy adjudicated",
		"notification_id", reviewed.ID,
		"employee_id", reviewed.EmployeeID,
		"reviewed_by", adminID,
		"payable_bonus", payable.StringFixed(2),
	)
	return highvalue.ToResponse(reviewed, payable), nil
}
