package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/diewo77/go-freelance/internal/models"
	"gorm.io/gorm"
)

// DebtService maintains debts and their append-only payment ledger.
type DebtService struct {
	db *gorm.DB
}

func NewDebtService(db *gorm.DB) *DebtService {
	return &DebtService{db: db}
}

// RecordPayment appends a payment to a debt's ledger and recomputes the
// running total and derived status, all in one transaction.
//
// The amount must be positive, may not exceed the remaining balance, and
// closed debts (paid or cancelled) reject further payments.
func (s *DebtService) RecordPayment(ctx context.Context, userID, debtID uint, amount float64, notes string, now time.Time) (*models.Debt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var debt models.Debt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
			return err
		}
		if debt.IsClosed() {
			return ErrDebtClosed
		}
		if amount > debt.Remaining() {
			return ErrAmountExceedsBalance
		}

		payment := models.DebtPayment{
			DebtID: debt.ID,
			Amount: amount,
			PaidAt: now,
			Notes:  notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		debt.AmountPaid += amount
		debt.Status = models.DeriveDebtStatus(debt.Amount, debt.AmountPaid)
		return tx.Model(&models.Debt{}).Where("id = ?", debt.ID).
			Updates(map[string]any{
				"amount_paid": debt.AmountPaid,
				"status":      debt.Status,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "debt payment recorded",
		"debt_id", debt.ID, "amount", amount, "status", debt.Status)
	return &debt, nil
}

// Cancel marks a debt cancelled. Cancelled is terminal: the debt drops out
// of the finance totals and accepts no further payments.
func (s *DebtService) Cancel(ctx context.Context, userID, debtID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Debt{}).
		Where("id = ? AND user_id = ?", debtID, userID).
		Update("status", models.DebtStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
