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

type DebtHandler struct {
	db      *gorm.DB
	service *services.DebtService
}

func NewDebtHandler(conn *gorm.DB, service *services.DebtService) *DebtHandler {
	return &DebtHandler{db: conn, service: service}
}

func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	status := r.URL.Query().Get("status")

	scoped := h.db.Where("user_id = ?", userID)
	if status != "" {
		scoped = scoped.Where("status = ?", status)
	}

	var debts []models.Debt
	logged(r, scoped.Order("created_at DESC").Find(&debts))

	var totalOutstanding float64
	for i := range debts {
		if !debts[i].IsClosed() {
			totalOutstanding += debts[i].Remaining()
		}
	}

	view.Render(w, r, "debts/index.html", map[string]any{
		"Debts":            debts,
		"Status":           status,
		"TotalOutstanding": totalOutstanding,
	})
}

func (h *DebtHandler) New(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "debts/new.html", nil)
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	v := make(validation.Violations)
	amount := formFloat(r, "amount")

	debt := models.Debt{
		UserID:        userID,
		PersonName:    r.FormValue("person_name"),
		PersonContact: r.FormValue("person_contact"),
		Description:   r.FormValue("description"),
		Amount:        amount,
		Status:        models.DebtStatusPending,
		DueDate:       validation.Date("due_date", r.FormValue("due_date"), v),
	}

	validation.Required("person_name", debt.PersonName, v)
	validation.PositiveFloat("amount", amount, v)

	if !v.Empty() {
		view.Render(w, r, "debts/new.html", map[string]any{
			"Debt":   debt,
			"Errors": v,
		})
		return
	}

	if err := h.db.Create(&debt).Error; err != nil {
		http.Error(w, "Failed to create debt", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/debts", http.StatusSeeOther)
}

// View shows the debt with its full payment ledger.
func (h *DebtHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var debt models.Debt
	err := h.db.Preload("Payments", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("paid_at DESC, id DESC")
	}).Where("id = ? AND user_id = ?", id, userID).First(&debt).Error
	if err != nil {
		http.NotFound(w, r)
		return
	}

	view.Render(w, r, "debts/view.html", map[string]any{
		"Debt":      debt,
		"Remaining": debt.Remaining(),
	})
}

// RecordPayment appends a payment to the debt's ledger.
func (h *DebtHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	amount := formFloat(r, "amount")
	notes := r.FormValue("notes")

	_, err = h.service.RecordPayment(r.Context(), userID, uint(id), amount, notes, time.Now())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, services.ErrInvalidAmount):
		http.Redirect(w, r, "/debts/"+r.PathValue("id")+"?error=invalid_amount", http.StatusSeeOther)
		return
	case errors.Is(err, services.ErrAmountExceedsBalance):
		http.Redirect(w, r, "/debts/"+r.PathValue("id")+"?error=exceeds_balance", http.StatusSeeOther)
		return
	case errors.Is(err, services.ErrDebtClosed):
		http.Redirect(w, r, "/debts/"+r.PathValue("id")+"?error=closed", http.StatusSeeOther)
		return
	case err != nil:
		http.Error(w, "Failed to record payment", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/debts/"+r.PathValue("id"), http.StatusSeeOther)
}

// Cancel marks the debt cancelled. Cancelled debts accept no payments and
// never return to an open status.
func (h *DebtHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.Cancel(r.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to cancel debt", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/debts/"+r.PathValue("id"), http.StatusSeeOther)
}

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Debt{}).Error; err != nil {
		http.Error(w, "Failed to delete debt", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/debts", http.StatusSeeOther)
}
