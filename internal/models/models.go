// Package models defines the persistent entities of the application.
//
// Every business entity carries a UserID: rows are owned by exactly one
// account and all queries are scoped to the authenticated user.
package models

// Ownable is implemented by every model owned by a single user account.
type Ownable interface {
	GetUserID() uint
}

// All returns the full set of models for migration, in dependency order.
func All() []any {
	return []any{
		&User{},
		&UserProfile{},
		&Client{},
		&Project{},
		&Task{},
		&TimeEntry{},
		&Invoice{},
		&InvoiceItem{},
		&ExpenseCategory{},
		&Expense{},
		&Debt{},
		&DebtPayment{},
		&Income{},
	}
}
