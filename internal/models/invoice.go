package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// InvoiceStatus represents the stored status of an invoice.
//
// "overdue" is intentionally absent: it is a display state derived from a
// sent invoice whose due date has passed, never persisted. Use
// DisplayStatus to obtain it.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"

	// InvoiceStatusOverdue is the derived display status. It is never
	// written to storage.
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// ValidInvoiceStatus reports whether s is a storable invoice status.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice represents a billing invoice with its line items.
type Invoice struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"index;not null;uniqueIndex:idx_invoice_user_year_seq" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	ClientID  *uint    `gorm:"index" json:"client_id,omitempty"`
	Client    *Client  `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"client,omitempty"`
	ProjectID *uint    `gorm:"index" json:"project_id,omitempty"`
	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"project,omitempty"`

	// Number is the user-facing identifier, "INV-2025-0001". Year and
	// Sequence are its numeric source of truth; the composite unique index
	// guards concurrent allocation for the same user and year.
	Number   string `gorm:"size:50;index;not null" json:"invoice_number"`
	Year     int    `gorm:"not null;uniqueIndex:idx_invoice_user_year_seq" json:"year"`
	Sequence int    `gorm:"not null;uniqueIndex:idx_invoice_user_year_seq" json:"sequence"`

	IssueDate time.Time `gorm:"not null" json:"issue_date"`
	DueDate   time.Time `gorm:"not null" json:"due_date"`

	Status   InvoiceStatus `gorm:"size:20;default:'draft'" json:"status"`
	Currency string        `gorm:"size:3;default:'EUR'" json:"currency"`

	// Totals are computed from the items at write time and persisted.
	Subtotal  float64 `gorm:"not null" json:"subtotal"`
	TaxRate   float64 `gorm:"not null" json:"tax_rate"` // percent, e.g. 20 for 20%
	TaxAmount float64 `gorm:"not null" json:"tax_amount"`
	Total     float64 `gorm:"not null" json:"total"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// GetUserID implements the Ownable interface.
func (i *Invoice) GetUserID() uint {
	return i.UserID
}

// IsDraft returns true if the invoice has not been sent yet.
func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

// IsClosed returns true when no further status transitions make sense.
func (i *Invoice) IsClosed() bool {
	return i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled
}

// DisplayStatus derives the status shown to the user: a sent invoice whose
// due date is strictly before today renders as overdue.
func (i *Invoice) DisplayStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoiceStatusSent {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if i.DueDate.Before(today) {
			return InvoiceStatusOverdue
		}
	}
	return i.Status
}

// FormatNumber renders the canonical invoice number for a year and sequence.
func FormatNumber(year, sequence int) string {
	return fmt.Sprintf("INV-%d-%04d", year, sequence)
}

// InvoiceItem represents a line on an invoice. Total is persisted as
// quantity times unit price, computed when the invoice is written.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	Description string  `gorm:"size:500;not null" json:"description"`
	Quantity    float64 `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	Total       float64 `gorm:"not null" json:"total"`
}

// LineTotal computes quantity times unit price for the item.
func (item *InvoiceItem) LineTotal() float64 {
	return item.Quantity * item.UnitPrice
}
