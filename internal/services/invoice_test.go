package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diewo77/go-freelance/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name    string
		items   []models.InvoiceItem
		taxRate float64
		want    Totals
	}{
		{
			name:    "single line with 20% tax",
			items:   []models.InvoiceItem{{Quantity: 2, UnitPrice: 100}},
			taxRate: 20,
			want:    Totals{Subtotal: 200, TaxAmount: 40, Total: 240},
		},
		{
			name:    "several lines",
			items:   []models.InvoiceItem{{Quantity: 1, UnitPrice: 500}, {Quantity: 3, UnitPrice: 50}},
			taxRate: 10,
			want:    Totals{Subtotal: 650, TaxAmount: 65, Total: 715},
		},
		{
			name:    "zero tax",
			items:   []models.InvoiceItem{{Quantity: 4, UnitPrice: 25}},
			taxRate: 0,
			want:    Totals{Subtotal: 100, TaxAmount: 0, Total: 100},
		},
		{
			name:    "empty items",
			items:   nil,
			taxRate: 20,
			want:    Totals{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.taxRate)
			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.TaxAmount, got.TaxAmount, 1e-9)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
			assert.InDelta(t, got.Subtotal+got.TaxAmount, got.Total, 1e-9)
		})
	}
}

func TestInvoiceService_Create_FirstOfYear(t *testing.T) {
	dbi := setupDB(t)
	uid := createUser(t, dbi, "create@example.com")
	svc := NewInvoiceService(dbi)

	inv := models.Invoice{
		UserID:    uid,
		IssueDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		Status:    models.InvoiceStatusDraft,
		Currency:  "EUR",
		TaxRate:   20,
	}
	items := []models.InvoiceItem{{Description: "Dev", Quantity: 2, UnitPrice: 100}}
	require.NoError(t, svc.Create(context.Background(), &inv, items))

	assert.Equal(t, "INV-2025-0001", inv.Number)
	assert.Equal(t, 1, inv.Sequence)
	assert.InDelta(t, 200.0, inv.Subtotal, 1e-9)
	assert.InDelta(t, 40.0, inv.TaxAmount, 1e-9)
	assert.InDelta(t, 240.0, inv.Total, 1e-9)

	var stored models.Invoice
	require.NoError(t, dbi.Preload("Items").First(&stored, inv.ID).Error)
	require.Len(t, stored.Items, 1)
	assert.InDelta(t, 200.0, stored.Items[0].Total, 1e-9)
}

func TestInvoiceService_Create_SequenceFollowsPrevious(t *testing.T) {
	dbi := setupDB(t)
	uid := createUser(t, dbi, "seq@example.com")
	svc := NewInvoiceService(dbi)

	existing := models.Invoice{
		UserID:    uid,
		Number:    "INV-2025-0007",
		Year:      2025,
		Sequence:  7,
		IssueDate: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		Status:    models.InvoiceStatusSent,
	}
	require.NoError(t, dbi.Create(&existing).Error)

	inv := models.Invoice{
		UserID:    uid,
		IssueDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.InvoiceStatusDraft,
	}
	require.NoError(t, svc.Create(context.Background(), &inv, nil))
	assert.Equal(t, "INV-2025-0008", inv.Number)

	// A new year restarts the sequence.
	inv2026 := models.Invoice{
		UserID:    uid,
		IssueDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
		Status:    models.InvoiceStatusDraft,
	}
	require.NoError(t, svc.Create(context.Background(), &inv2026, nil))
	assert.Equal(t, "INV-2026-0001", inv2026.Number)
}

func TestInvoiceService_Create_RetriesAfterSequenceConflict(t *testing.T) {
	dbi := setupDB(t)
	uid := createUser(t, dbi, "retry@example.com")
	svc := NewInvoiceService(dbi)

	// Fail the first insert with a unique violation after the line items
	// were written, as if a concurrent creation had taken the sequence.
	conflicts := 1
	err := dbi.Callback().Create().After("gorm:save_after_associations").
		Register("force_sequence_conflict", func(tx *gorm.DB) {
			if tx.Statement.Table != "invoices" || conflicts == 0 {
				return
			}
			conflicts--
			tx.AddError(errors.New("UNIQUE constraint failed: idx_invoice_user_year_seq"))
		})
	require.NoError(t, err)

	inv := models.Invoice{
		UserID:    uid,
		IssueDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		Status:    models.InvoiceStatusDraft,
	}
	items := []models.InvoiceItem{
		{Description: "Design", Quantity: 1, UnitPrice: 400},
		{Description: "Dev", Quantity: 3, UnitPrice: 200},
	}
	require.NoError(t, svc.Create(context.Background(), &inv, items))
	assert.Equal(t, 0, conflicts)
	assert.Equal(t, "INV-2025-0001", inv.Number)

	// The rolled-back attempt must leave no trace: the retry inserts
	// fresh rows, all attached to the surviving invoice.
	var stored models.Invoice
	require.NoError(t, dbi.Preload("Items").First(&stored, inv.ID).Error)
	require.Len(t, stored.Items, 2)
	for _, item := range stored.Items {
		assert.Equal(t, inv.ID, item.InvoiceID)
		assert.NotZero(t, item.ID)
	}
	var itemCount int64
	require.NoError(t, dbi.Model(&models.InvoiceItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 2, itemCount)
}

func TestInvoiceService_Create_SequencesAreIsolatedPerUser(t *testing.T) {
	dbi := setupDB(t)
	uidA := createUser(t, dbi, "a@example.com")
	uidB := createUser(t, dbi, "b@example.com")
	svc := NewInvoiceService(dbi)

	issue := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 1, 0)

	invA := models.Invoice{UserID: uidA, IssueDate: issue, DueDate: due, Status: models.InvoiceStatusDraft}
	require.NoError(t, svc.Create(context.Background(), &invA, nil))
	invB := models.Invoice{UserID: uidB, IssueDate: issue, DueDate: due, Status: models.InvoiceStatusDraft}
	require.NoError(t, svc.Create(context.Background(), &invB, nil))

	assert.Equal(t, "INV-2025-0001", invA.Number)
	assert.Equal(t, "INV-2025-0001", invB.Number)
}

func TestInvoiceService_UpdateStatus_PaidCreatesIncomeOnce(t *testing.T) {
	dbi := setupDB(t)
	uid := createUser(t, dbi, "paid@example.com")
	svc := NewInvoiceService(dbi)

	client := models.Client{UserID: uid, Name: "Awa Diop"}
	require.NoError(t, dbi.Create(&client).Error)

	inv := models.Invoice{
		UserID:    uid,
		ClientID:  &client.ID,
		IssueDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		Status:    models.InvoiceStatusDraft,
		TaxRate:   20,
	}
	require.NoError(t, svc.Create(context.Background(), &inv, []models.InvoiceItem{{Description: "Dev", Quantity: 2, UnitPrice: 100}}))

	now := time.Date(2025, time.April, 2, 15, 0, 0, 0, time.Local)

	_, err := svc.UpdateStatus(context.Background(), uid, inv.ID, models.InvoiceStatusSent, now)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), uid, inv.ID, models.InvoiceStatusPaid, now)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, updated.Status)

	var incomes []models.Income
	require.NoError(t, dbi.Where("user_id = ?", uid).Find(&incomes).Error)
	require.Len(t, incomes, 1)
	assert.Equal(t, "Facture "+inv.Number, incomes[0].Source)
	assert.Equal(t, "Paiement de Awa Diop", incomes[0].Description)
	assert.InDelta(t, inv.Total, incomes[0].Amount, 1e-9)
	require.NotNil(t, incomes[0].InvoiceID)
	assert.Equal(t, inv.ID, *incomes[0].InvoiceID)

	// Re-submitting paid must not duplicate the income row.
	_, err = svc.UpdateStatus(context.Background(), uid, inv.ID, models.InvoiceStatusPaid, now)
	require.NoError(t, err)
	require.NoError(t, dbi.Where("user_id = ?", uid).Find(&incomes).Error)
	assert.Len(t, incomes, 1)
}

func TestInvoiceService_UpdateStatus_RejectsDerivedAndUnknown(t *testing.T) {
	dbi := setupDB(t)
	uid := createUser(t, dbi, "status@example.com")
	svc := NewInvoiceService(dbi)

	// Overdue is derived at read time and never storable.
	_, err := svc.UpdateStatus(context.Background(), uid, 1, models.InvoiceStatusOverdue, time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), uid, 1, models.InvoiceStatus("bogus"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestInvoiceService_UpdateStatus_ScopedToOwner(t *testing.T) {
	dbi := setupDB(t)
	owner := createUser(t, dbi, "owner@example.com")
	other := createUser(t, dbi, "other@example.com")
	svc := NewInvoiceService(dbi)

	inv := models.Invoice{
		UserID:    owner,
		IssueDate: time.Now(),
		DueDate:   time.Now().AddDate(0, 1, 0),
		Status:    models.InvoiceStatusSent,
	}
	require.NoError(t, svc.Create(context.Background(), &inv, nil))

	_, err := svc.UpdateStatus(context.Background(), other, inv.ID, models.InvoiceStatusPaid, time.Now())
	assert.Error(t, err, "another user's invoice must read as not found")
}
