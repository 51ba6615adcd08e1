package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/internal/validation"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	db      *gorm.DB
	service *services.InvoiceService
}

func NewInvoiceHandler(conn *gorm.DB, service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{db: conn, service: service}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	status := r.URL.Query().Get("status")
	page, offset, limit := pageParam(r)
	now := time.Now()

	scoped := h.db.Where("user_id = ?", userID)
	switch models.InvoiceStatus(status) {
	case models.InvoiceStatusOverdue:
		// Overdue is derived, not stored: sent invoices past their due date.
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		scoped = scoped.Where("status = ? AND due_date < ?", models.InvoiceStatusSent, today)
	case models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusPaid, models.InvoiceStatusCancelled:
		scoped = scoped.Where("status = ?", status)
	}

	var invoices []models.Invoice
	var total int64
	scoped.Model(&models.Invoice{}).Count(&total)
	logged(r, scoped.Preload("Client").Order("issue_date DESC, sequence DESC").Limit(limit).Offset(offset).Find(&invoices))

	display := make([]models.InvoiceStatus, len(invoices))
	for i := range invoices {
		display[i] = invoices[i].DisplayStatus(now)
	}

	view.Render(w, r, "invoices/index.html", map[string]any{
		"Invoices":        invoices,
		"DisplayStatuses": display,
		"Status":          status,
		"Page":            page,
		"Total":           total,
		"Limit":           limit,
	})
}

func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var clients []models.Client
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&clients))

	var projects []models.Project
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&projects))

	view.Render(w, r, "invoices/new.html", map[string]any{
		"Clients":  clients,
		"Projects": projects,
	})
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form", http.StatusBadRequest)
		return
	}

	v := make(validation.Violations)
	issueDate := validation.Date("issue_date", r.FormValue("issue_date"), v)
	dueDate := validation.Date("due_date", r.FormValue("due_date"), v)
	if issueDate == nil {
		now := time.Now()
		d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		issueDate = &d
	}
	if dueDate == nil {
		d := issueDate.AddDate(0, 0, 30)
		dueDate = &d
	}

	taxRate := formFloat(r, "tax_rate")
	validation.RangeFloat("tax_rate", taxRate, 0, 100, v)

	items := parseInvoiceItems(r)
	if len(items) == 0 {
		v["items"] = "required"
	}
	for _, it := range items {
		if it.Description == "" {
			v["items"] = "required"
		}
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			v["items"] = "invalid"
		}
	}

	currency := r.FormValue("currency")
	if currency == "" {
		currency = "EUR"
	}

	inv := models.Invoice{
		UserID:    userID,
		ClientID:  formUintPtr(r, "client_id"),
		ProjectID: formUintPtr(r, "project_id"),
		IssueDate: *issueDate,
		DueDate:   *dueDate,
		Status:    models.InvoiceStatusDraft,
		Currency:  currency,
		TaxRate:   taxRate,
		Notes:     r.FormValue("notes"),
	}

	if !v.Empty() {
		var clients []models.Client
		logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&clients))
		var projects []models.Project
		logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&projects))
		view.Render(w, r, "invoices/new.html", map[string]any{
			"Invoice":  inv,
			"Items":    items,
			"Clients":  clients,
			"Projects": projects,
			"Errors":   v,
		})
		return
	}

	if err := h.service.Create(r.Context(), &inv, items); err != nil {
		http.Error(w, "Failed to create invoice", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/invoices/"+strconv.FormatUint(uint64(inv.ID), 10), http.StatusSeeOther)
}

func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var inv models.Invoice
	err := h.db.Preload("Client").Preload("Project").Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).First(&inv).Error
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var profile models.UserProfile
	h.db.Where("user_id = ?", userID).First(&profile)

	view.Render(w, r, "invoices/view.html", map[string]any{
		"Invoice":       inv,
		"DisplayStatus": inv.DisplayStatus(time.Now()),
		"Profile":       profile,
	})
}

// UpdateStatus transitions the stored status. A transition to paid also
// records the matching income row.
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	status := models.InvoiceStatus(r.FormValue("status"))
	_, err = h.service.UpdateStatus(r.Context(), userID, uint(id), status, time.Now())
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		http.Error(w, "Failed to update invoice", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/invoices/"+r.PathValue("id"), http.StatusSeeOther)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Invoice{}).Error; err != nil {
		http.Error(w, "Failed to delete invoice", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// parseInvoiceItems reads the parallel item form arrays. Rows with an empty
// description and zero price are treated as blank filler and skipped.
func parseInvoiceItems(r *http.Request) []models.InvoiceItem {
	descs := r.Form["item_description"]
	quantities := r.Form["item_quantity"]
	prices := r.Form["item_unit_price"]

	var items []models.InvoiceItem
	for i, desc := range descs {
		var qty, price float64
		if i < len(quantities) {
			qty, _ = strconv.ParseFloat(quantities[i], 64)
		}
		if i < len(prices) {
			price, _ = strconv.ParseFloat(prices[i], 64)
		}
		if desc == "" && price == 0 {
			continue
		}
		if qty == 0 {
			qty = 1
		}
		items = append(items, models.InvoiceItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items
}
