package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/diewo77/go-freelance/internal/models"
	"gorm.io/gorm"
)

// InvoiceService encapsulates invoice numbering, totals and status
// transitions, including the income auto-sync on payment.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// Totals are the amounts derived from an invoice's line items.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// ComputeTotals sums the line items and applies the tax rate (percent).
// No rounding happens here: rounding is a formatting concern.
func ComputeTotals(items []models.InvoiceItem, taxRatePercent float64) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal += item.LineTotal()
	}
	t.TaxAmount = t.Subtotal * (taxRatePercent / 100)
	t.Total = t.Subtotal + t.TaxAmount
	return t
}

// NextSequence returns the next invoice sequence for a user and year by
// numeric ordering. The composite unique index on (user, year, sequence)
// backs this against concurrent allocation; Create retries on conflict.
func (s *InvoiceService) NextSequence(tx *gorm.DB, userID uint, year int) (int, error) {
	var max int
	err := tx.Model(&models.Invoice{}).
		Where("user_id = ? AND year = ?", userID, year).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Create persists an invoice with its items, allocating the next invoice
// number for the issue year and computing the persisted totals. The whole
// operation runs in one transaction; a lost race on the sequence index is
// retried with a fresh allocation.
func (s *InvoiceService) Create(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
	for i := range items {
		items[i].Total = items[i].LineTotal()
	}
	totals := ComputeTotals(items, inv.TaxRate)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	inv.Year = inv.IssueDate.Year()

	const attempts = 3
	var err error
	for i := 0; i < attempts; i++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			seq, err := s.NextSequence(tx, inv.UserID, inv.Year)
			if err != nil {
				return err
			}
			inv.Sequence = seq
			inv.Number = models.FormatNumber(inv.Year, seq)
			inv.Items = items
			return tx.Create(inv).Error
		})
		if err == nil || !isDuplicate(err) {
			return err
		}
		inv.ID = 0
		// The rolled-back attempt assigned primary keys to the invoice and
		// its items; clear them so the retry inserts fresh rows.
		for j := range items {
			items[j].ID = 0
			items[j].InvoiceID = 0
		}
		slog.WarnContext(ctx, "invoice number collision, reallocating",
			"user_id", inv.UserID, "year", inv.Year, "sequence", inv.Sequence)
	}
	return err
}

// UpdateStatus transitions an invoice to a new stored status.
//
// The transition into paid, when the stored status was anything else,
// creates exactly one income row referencing the invoice; repeating the
// call on an already paid invoice creates nothing. Both writes share one
// transaction.
func (s *InvoiceService) UpdateStatus(ctx context.Context, userID, invoiceID uint, newStatus models.InvoiceStatus, now time.Time) (*models.Invoice, error) {
	if !models.ValidInvoiceStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var inv models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", invoiceID, userID).
			Preload("Client").First(&inv).Error; err != nil {
			return err
		}

		becamePaid := newStatus == models.InvoiceStatusPaid && inv.Status != models.InvoiceStatusPaid
		inv.Status = newStatus
		if err := tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).
			Update("status", newStatus).Error; err != nil {
			return err
		}
		if !becamePaid {
			return nil
		}

		clientName := "Client"
		if inv.Client != nil {
			clientName = inv.Client.Name
		}
		income := models.Income{
			UserID:      userID,
			InvoiceID:   &inv.ID,
			Source:      "Facture " + inv.Number,
			Description: "Paiement de " + clientName,
			Amount:      inv.Total,
			Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		}
		return tx.Create(&income).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// isDuplicate reports whether err is a unique-constraint violation.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}
