package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentMethod represents how an expense was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodOther        PaymentMethod = "other"
)

// PaymentMethods lists the valid payment methods in display order.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
	PaymentMethodMobileMoney, PaymentMethodOther,
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// ExpenseCategory groups expenses. Eight default categories are seeded for
// every account at signup; users can add their own on top.
type ExpenseCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Color     string `gorm:"size:20" json:"color"`
	Icon      string `gorm:"size:50" json:"icon"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`
}

// GetUserID implements the Ownable interface.
func (c *ExpenseCategory) GetUserID() uint {
	return c.UserID
}

// Expense represents money spent, business or personal.
type Expense struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	CategoryID *uint            `gorm:"index" json:"category_id,omitempty"`
	Category   *ExpenseCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`

	Description   string        `gorm:"size:255;not null" json:"description"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Date          time.Time     `gorm:"not null;index" json:"date"`
	PaymentMethod PaymentMethod `gorm:"size:20;default:'card'" json:"payment_method"`
	IsBusiness    bool          `gorm:"default:false" json:"is_business"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
}

// GetUserID implements the Ownable interface.
func (e *Expense) GetUserID() uint {
	return e.UserID
}
