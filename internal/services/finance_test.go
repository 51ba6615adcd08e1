package services

import (
	"context"
	"testing"
	"time"

	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestFinanceService_Summarize(t *testing.T) {
	dbi := setupDB(t)
	uid := createUser(t, dbi, "finance@example.com")
	stranger := createUser(t, dbi, "stranger@example.com")
	svc := NewFinanceService(dbi)

	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.Local)
	issue := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)
	due := issue.AddDate(0, 1, 0)

	require.NoError(t, dbi.Create(&[]models.Invoice{
		{UserID: uid, Number: "INV-2025-0001", Year: 2025, Sequence: 1, IssueDate: issue, DueDate: due, Status: models.InvoiceStatusPaid, Total: 240},
		{UserID: uid, Number: "INV-2025-0002", Year: 2025, Sequence: 2, IssueDate: issue, DueDate: due, Status: models.InvoiceStatusSent, Total: 100},
		{UserID: uid, Number: "INV-2025-0003", Year: 2025, Sequence: 3, IssueDate: issue, DueDate: due, Status: models.InvoiceStatusDraft, Total: 999},
		{UserID: stranger, Number: "INV-2025-0001", Year: 2025, Sequence: 1, IssueDate: issue, DueDate: due, Status: models.InvoiceStatusPaid, Total: 10000},
	}).Error)

	require.NoError(t, dbi.Create(&[]models.Project{
		{UserID: uid, Name: "Site vitrine", Status: models.ProjectStatusActive, FixedPrice: ptr(1500.0)},
		{UserID: uid, Name: "Refonte", Status: models.ProjectStatusDraft, Budget: ptr(900.0)},
		{UserID: uid, Name: "Livré", Status: models.ProjectStatusCompleted, FixedPrice: ptr(5000.0)},
	}).Error)

	require.NoError(t, dbi.Create(&[]models.Expense{
		{UserID: uid, Description: "Hébergement", Amount: 50, Date: issue, PaymentMethod: models.PaymentMethodCard},
	}).Error)

	require.NoError(t, dbi.Create(&[]models.Income{
		{UserID: uid, Source: "Formation", Amount: 300, Date: issue},
		{UserID: uid, Source: "Facture INV-2025-0001", Amount: 240, Date: issue, InvoiceID: ptr(uint(1))},
	}).Error)

	require.NoError(t, dbi.Create(&[]models.Debt{
		{UserID: uid, PersonName: "Moussa", Amount: 500, AmountPaid: 200, Status: models.DebtStatusPartial},
		{UserID: uid, PersonName: "Fatou", Amount: 100, Status: models.DebtStatusPending},
		{UserID: uid, PersonName: "Oublié", Amount: 999, Status: models.DebtStatusCancelled},
	}).Error)

	sum, err := svc.Summarize(context.Background(), uid, period.All, now)
	require.NoError(t, err)

	assert.InDelta(t, 240.0, sum.PaidRevenue, 1e-9)
	assert.InDelta(t, 100.0, sum.PendingRevenue, 1e-9)
	assert.InDelta(t, 2400.0, sum.ProjectedRevenue, 1e-9)
	assert.InDelta(t, 50.0, sum.TotalExpenses, 1e-9)
	assert.InDelta(t, 300.0, sum.ManualIncome, 1e-9)
	assert.InDelta(t, 490.0, sum.NetBalance, 1e-9) // 240 + 300 - 50
	assert.InDelta(t, 600.0, sum.TotalDebts, 1e-9)
	assert.InDelta(t, 400.0, sum.PendingDebts, 1e-9)
}

func TestFinanceService_Summarize_PeriodFilter(t *testing.T) {
	dbi := setupDB(t)
	uid := createUser(t, dbi, "financeperiod@example.com")
	svc := NewFinanceService(dbi)

	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.Local)
	inMonth := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.Local)
	lastYear := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)

	require.NoError(t, dbi.Create(&[]models.Invoice{
		{UserID: uid, Number: "INV-2025-0001", Year: 2025, Sequence: 1, IssueDate: inMonth, DueDate: inMonth.AddDate(0, 1, 0), Status: models.InvoiceStatusPaid, Total: 200},
		{UserID: uid, Number: "INV-2024-0001", Year: 2024, Sequence: 1, IssueDate: lastYear, DueDate: lastYear.AddDate(0, 1, 0), Status: models.InvoiceStatusPaid, Total: 700},
		{UserID: uid, Number: "INV-2024-0002", Year: 2024, Sequence: 2, IssueDate: lastYear, DueDate: lastYear.AddDate(0, 1, 0), Status: models.InvoiceStatusSent, Total: 80},
	}).Error)
	require.NoError(t, dbi.Create(&[]models.Expense{
		{UserID: uid, Description: "Courant", Amount: 30, Date: inMonth, PaymentMethod: models.PaymentMethodCash},
		{UserID: uid, Description: "Ancien", Amount: 500, Date: lastYear, PaymentMethod: models.PaymentMethodCash},
	}).Error)

	sum, err := svc.Summarize(context.Background(), uid, period.Month, now)
	require.NoError(t, err)

	assert.InDelta(t, 200.0, sum.PaidRevenue, 1e-9, "paid revenue honors the period")
	assert.InDelta(t, 30.0, sum.TotalExpenses, 1e-9, "expenses honor the period")
	// Pending revenue deliberately ignores the period filter.
	assert.InDelta(t, 80.0, sum.PendingRevenue, 1e-9)
}

func TestFinanceService_Summarize_EmptyAccount(t *testing.T) {
	dbi := setupDB(t)
	uid := createUser(t, dbi, "empty@example.com")
	svc := NewFinanceService(dbi)

	sum, err := svc.Summarize(context.Background(), uid, period.All, time.Now())
	require.NoError(t, err)
	assert.Zero(t, sum.PaidRevenue)
	assert.Zero(t, sum.PendingRevenue)
	assert.Zero(t, sum.ProjectedRevenue)
	assert.Zero(t, sum.TotalExpenses)
	assert.Zero(t, sum.NetBalance)
	assert.Zero(t, sum.TotalDebts)
	assert.Zero(t, sum.PendingDebts)
}
