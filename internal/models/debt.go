package models

import (
	"time"

	"gorm.io/gorm"
)

// DebtStatus represents the repayment state of a debt. Pending, partial and
// paid are derived from the amounts; cancelled is a terminal override.
type DebtStatus string

const (
	DebtStatusPending   DebtStatus = "pending"
	DebtStatusPartial   DebtStatus = "partial"
	DebtStatusPaid      DebtStatus = "paid"
	DebtStatusCancelled DebtStatus = "cancelled"
)

// DeriveDebtStatus computes the status implied by the amounts: paid once
// the running total covers the debt, partial when anything has been paid,
// pending otherwise. Cancellation is an override, never derived.
func DeriveDebtStatus(amount, amountPaid float64) DebtStatus {
	switch {
	case amountPaid >= amount:
		return DebtStatusPaid
	case amountPaid > 0:
		return DebtStatusPartial
	default:
		return DebtStatusPending
	}
}

// Debt represents money owed to the user by a third party, with an
// append-only ledger of payments.
type Debt struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	PersonName    string `gorm:"size:255;not null" json:"person_name"`
	PersonContact string `gorm:"size:255" json:"person_contact,omitempty"`
	Description   string `gorm:"type:text" json:"description,omitempty"`

	// Amount is the total owed; AmountPaid is the running total of the
	// payment ledger and never decreases.
	Amount     float64    `gorm:"not null" json:"amount"`
	AmountPaid float64    `gorm:"not null;default:0" json:"amount_paid"`
	Status     DebtStatus `gorm:"size:20;default:'pending'" json:"status"`
	DueDate    *time.Time `json:"due_date,omitempty"`

	Payments []DebtPayment `gorm:"foreignKey:DebtID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// GetUserID implements the Ownable interface.
func (d *Debt) GetUserID() uint {
	return d.UserID
}

// Remaining returns the outstanding balance, floored at zero.
func (d *Debt) Remaining() float64 {
	if r := d.Amount - d.AmountPaid; r > 0 {
		return r
	}
	return 0
}

// IsClosed reports whether the debt accepts no further payments.
func (d *Debt) IsClosed() bool {
	return d.Status == DebtStatusPaid || d.Status == DebtStatusCancelled
}

// DebtPayment is one entry of a debt's payment ledger. Rows are immutable
// once created; corrections go through new payments.
type DebtPayment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	DebtID uint `gorm:"index;not null" json:"debt_id"`

	Amount float64   `gorm:"not null" json:"amount"`
	PaidAt time.Time `gorm:"not null" json:"paid_at"`
	Notes  string    `gorm:"size:500" json:"notes,omitempty"`
}
