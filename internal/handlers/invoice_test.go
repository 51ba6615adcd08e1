package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/services"
)

func TestInvoiceHandler_Create(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	handler := NewInvoiceHandler(db, services.NewInvoiceService(db))

	form := url.Values{
		"issue_date":      {"2025-03-01"},
		"due_date":        {"2025-03-31"},
		"tax_rate":        {"20"},
		"item_description": {"Design", "Development"},
		"item_quantity":    {"1", "10"},
		"item_unit_price":  {"500", "80"},
	}
	req := authed(postForm("/invoices", form), user.ID)
	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body.String())
	}

	var inv models.Invoice
	if err := db.Preload("Items").Where("user_id = ?", user.ID).First(&inv).Error; err != nil {
		t.Fatalf("invoice not created: %v", err)
	}
	if inv.Number != "INV-2025-0001" {
		t.Errorf("expected INV-2025-0001, got %s", inv.Number)
	}
	if len(inv.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(inv.Items))
	}
	// 500 + 800 = 1300, 20% tax
	if inv.Subtotal != 1300 || inv.TaxAmount != 260 || inv.Total != 1560 {
		t.Errorf("unexpected totals: %+v", inv)
	}
	if inv.Status != models.InvoiceStatusDraft {
		t.Errorf("expected draft, got %s", inv.Status)
	}
}

func TestInvoiceHandler_Create_RequiresItems(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	handler := NewInvoiceHandler(db, services.NewInvoiceService(db))

	form := url.Values{
		"issue_date": {"2025-03-01"},
		"tax_rate":   {"20"},
	}
	req := authed(postForm("/invoices", form), user.ID)
	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	if rr.Code == http.StatusSeeOther {
		t.Fatal("expected validation failure, got redirect")
	}
	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no invoices, got %d", count)
	}
}

func TestInvoiceHandler_UpdateStatus_PaidCreatesIncome(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	svc := services.NewInvoiceService(db)
	handler := NewInvoiceHandler(db, svc)

	inv := models.Invoice{UserID: user.ID}
	items := []models.InvoiceItem{{Description: "Work", Quantity: 1, UnitPrice: 100}}
	if err := svc.Create(req(t).Context(), &inv, items); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	r := authed(postForm("/invoices/1/status", url.Values{"status": {"paid"}}), user.ID)
	r.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	handler.UpdateStatus(rr, r)

	wantRedirect(t, rr, "/invoices/1")

	var income models.Income
	if err := db.Where("user_id = ? AND invoice_id = ?", user.ID, inv.ID).First(&income).Error; err != nil {
		t.Fatalf("income not created: %v", err)
	}
	if income.Amount != inv.Total {
		t.Errorf("income amount %f != invoice total %f", income.Amount, inv.Total)
	}
}

func TestInvoiceHandler_UpdateStatus_RejectsOverdue(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	svc := services.NewInvoiceService(db)
	handler := NewInvoiceHandler(db, svc)

	inv := models.Invoice{UserID: user.ID}
	if err := svc.Create(req(t).Context(), &inv, []models.InvoiceItem{{Description: "W", Quantity: 1, UnitPrice: 50}}); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	r := authed(postForm("/invoices/1/status", url.Values{"status": {"overdue"}}), user.ID)
	r.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	handler.UpdateStatus(rr, r)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for stored overdue, got %d", rr.Code)
	}
}

func req(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/", nil)
}
