package models

import (
	"testing"
	"time"
)

func TestDeriveDebtStatus(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		amountPaid float64
		want       DebtStatus
	}{
		{"nothing paid", 500, 0, DebtStatusPending},
		{"partially paid", 500, 200, DebtStatusPartial},
		{"exactly paid", 500, 500, DebtStatusPaid},
		{"overpaid", 500, 600, DebtStatusPaid},
		{"zero amount", 0, 0, DebtStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveDebtStatus(tt.amount, tt.amountPaid); got != tt.want {
				t.Errorf("DeriveDebtStatus(%v, %v) = %s, want %s", tt.amount, tt.amountPaid, got, tt.want)
			}
		})
	}
}

func TestDebt_Remaining(t *testing.T) {
	d := &Debt{Amount: 500, AmountPaid: 200}
	if got := d.Remaining(); got != 300 {
		t.Errorf("Remaining() = %v, want 300", got)
	}
	// Overpaid debts floor at zero.
	d = &Debt{Amount: 500, AmountPaid: 700}
	if got := d.Remaining(); got != 0 {
		t.Errorf("Remaining() = %v, want 0", got)
	}
}

func TestDebt_IsClosed(t *testing.T) {
	tests := []struct {
		status DebtStatus
		closed bool
	}{
		{DebtStatusPending, false},
		{DebtStatusPartial, false},
		{DebtStatusPaid, true},
		{DebtStatusCancelled, true},
	}
	for _, tt := range tests {
		d := &Debt{Status: tt.status}
		if got := d.IsClosed(); got != tt.closed {
			t.Errorf("IsClosed() with %s = %v, want %v", tt.status, got, tt.closed)
		}
	}
}

func TestInvoice_DisplayStatus(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		status  InvoiceStatus
		dueDate time.Time
		want    InvoiceStatus
	}{
		{"sent past due", InvoiceStatusSent, yesterday, InvoiceStatusOverdue},
		{"sent due today", InvoiceStatusSent, now, InvoiceStatusSent},
		{"sent due later", InvoiceStatusSent, tomorrow, InvoiceStatusSent},
		{"draft past due stays draft", InvoiceStatusDraft, yesterday, InvoiceStatusDraft},
		{"paid past due stays paid", InvoiceStatusPaid, yesterday, InvoiceStatusPaid},
		{"cancelled past due stays cancelled", InvoiceStatusCancelled, yesterday, InvoiceStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{Status: tt.status, DueDate: tt.dueDate}
			if got := inv.DisplayStatus(now); got != tt.want {
				t.Errorf("DisplayStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(2025, 7); got != "INV-2025-0007" {
		t.Errorf("FormatNumber(2025, 7) = %q, want INV-2025-0007", got)
	}
	// Sequences past the padding width keep growing instead of wrapping.
	if got := FormatNumber(2025, 12345); got != "INV-2025-12345" {
		t.Errorf("FormatNumber(2025, 12345) = %q, want INV-2025-12345", got)
	}
}

func TestProject_ExpectedValue(t *testing.T) {
	fixed := 1500.0
	budget := 900.0
	tests := []struct {
		name    string
		project Project
		want    float64
	}{
		{"fixed price wins", Project{FixedPrice: &fixed, Budget: &budget}, 1500},
		{"budget fallback", Project{Budget: &budget}, 900},
		{"neither", Project{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.project.ExpectedValue(); got != tt.want {
				t.Errorf("ExpectedValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeEntry_Duration(t *testing.T) {
	start := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.Local)
	end := start.Add(95 * time.Minute)

	e := &TimeEntry{StartedAt: start, EndedAt: &end}
	if got := e.Duration(time.Now()); got != 95*time.Minute {
		t.Errorf("Duration() = %v, want 95m", got)
	}
	if e.IsRunning() {
		t.Error("entry with EndedAt should not be running")
	}

	running := &TimeEntry{StartedAt: start}
	if !running.IsRunning() {
		t.Error("entry without EndedAt should be running")
	}
	if got := running.Duration(start.Add(time.Hour)); got != time.Hour {
		t.Errorf("running Duration() = %v, want 1h", got)
	}
}

func TestInvoiceItem_LineTotal(t *testing.T) {
	item := &InvoiceItem{Quantity: 2, UnitPrice: 100}
	if got := item.LineTotal(); got != 200 {
		t.Errorf("LineTotal() = %v, want 200", got)
	}
}

func TestClient_DisplayName(t *testing.T) {
	c := &Client{Name: "Awa Diop", Company: "Diop Studio"}
	if got := c.DisplayName(); got != "Diop Studio" {
		t.Errorf("DisplayName() = %q, want company", got)
	}
	c = &Client{Name: "Awa Diop"}
	if got := c.DisplayName(); got != "Awa Diop" {
		t.Errorf("DisplayName() = %q, want name", got)
	}
}
