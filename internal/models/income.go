package models

import (
	"time"

	"gorm.io/gorm"
)

// Income represents incoming money. A row with a non-nil InvoiceID was
// auto-created when the linked invoice transitioned to paid and is treated
// as read-only; a nil InvoiceID means manually entered income.
type Income struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	InvoiceID *uint    `gorm:"index" json:"invoice_id,omitempty"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:SET NULL" json:"invoice,omitempty"`

	Source      string    `gorm:"size:255;not null" json:"source"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	IsRecurring bool      `gorm:"default:false" json:"is_recurring"`
}

// GetUserID implements the Ownable interface.
func (i *Income) GetUserID() uint {
	return i.UserID
}

// IsAutoSynced reports whether the row was created from an invoice payment.
func (i *Income) IsAutoSynced() bool {
	return i.InvoiceID != nil
}
