package services

import (
	"context"
	"time"

	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/period"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// FinanceService aggregates revenue, expenses and debts into the finance
// dashboard summary. It performs no mutation: its only job is to fan out
// the independent queries and recombine their results.
type FinanceService struct {
	db *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

// Summary is the composed finance overview for a user.
type Summary struct {
	PaidRevenue      float64 `json:"paid_revenue"`
	PendingRevenue   float64 `json:"pending_revenue"`
	ProjectedRevenue float64 `json:"projected_revenue"`
	TotalExpenses    float64 `json:"total_expenses"`
	ManualIncome     float64 `json:"manual_income"`
	NetBalance       float64 `json:"net_balance"`
	TotalDebts       float64 `json:"total_debts"`
	PendingDebts     float64 `json:"pending_debts"`
}

// Summarize builds the finance summary, optionally restricted to a period.
//
// Paid revenue and expenses honor the period (by issue date and expense
// date); pending revenue deliberately does not, matching the reference
// behavior of showing all outstanding invoices regardless of filter. The
// five underlying queries run concurrently.
func (s *FinanceService) Summarize(ctx context.Context, userID uint, key period.Key, now time.Time) (*Summary, error) {
	r := period.Resolve(key, now)
	sum := &Summary{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q := s.db.WithContext(ctx).Model(&models.Invoice{}).
			Where("user_id = ? AND status = ?", userID, models.InvoiceStatusPaid)
		if r != nil {
			q = q.Where("issue_date >= ? AND issue_date < ?", r.Start, r.End.AddDate(0, 0, 1))
		}
		return q.Select("COALESCE(SUM(total), 0)").Scan(&sum.PaidRevenue).Error
	})

	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Invoice{}).
			Where("user_id = ? AND status = ?", userID, models.InvoiceStatusSent).
			Select("COALESCE(SUM(total), 0)").Scan(&sum.PendingRevenue).Error
	})

	g.Go(func() error {
		var projects []models.Project
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND status IN ?", userID,
				[]models.ProjectStatus{models.ProjectStatusActive, models.ProjectStatusDraft}).
			Find(&projects).Error
		if err != nil {
			return err
		}
		for _, p := range projects {
			sum.ProjectedRevenue += p.ExpectedValue()
		}
		return nil
	})

	g.Go(func() error {
		q := s.db.WithContext(ctx).Model(&models.Expense{}).
			Where("user_id = ?", userID)
		if r != nil {
			q = q.Where("date >= ? AND date < ?", r.Start, r.End.AddDate(0, 0, 1))
		}
		return q.Select("COALESCE(SUM(amount), 0)").Scan(&sum.TotalExpenses).Error
	})

	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Income{}).
			Where("user_id = ? AND invoice_id IS NULL", userID).
			Select("COALESCE(SUM(amount), 0)").Scan(&sum.ManualIncome).Error
	})

	g.Go(func() error {
		var debts []models.Debt
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND status <> ?", userID, models.DebtStatusCancelled).
			Find(&debts).Error
		if err != nil {
			return err
		}
		for _, d := range debts {
			sum.TotalDebts += d.Amount
			sum.PendingDebts += d.Remaining()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sum.NetBalance = sum.PaidRevenue + sum.ManualIncome - sum.TotalExpenses
	return sum, nil
}
