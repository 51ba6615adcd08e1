package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/period"
	"github.com/diewo77/go-freelance/internal/validation"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

type IncomeHandler struct {
	db *gorm.DB
}

func NewIncomeHandler(conn *gorm.DB) *IncomeHandler {
	return &IncomeHandler{db: conn}
}

func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	key := period.ParseKey(r.URL.Query().Get("period"))
	page, offset, limit := pageParam(r)

	scoped := h.db.Where("user_id = ?", userID)
	if rng := period.Resolve(key, time.Now()); rng != nil {
		scoped = scoped.Where("date >= ? AND date < ?", rng.Start, rng.End.AddDate(0, 0, 1))
	}

	var incomes []models.Income
	var total int64
	var sum float64
	scoped.Model(&models.Income{}).Count(&total)
	scoped.Model(&models.Income{}).Select("COALESCE(SUM(amount), 0)").Scan(&sum)
	logged(r, scoped.Preload("Invoice").Order("date DESC").Limit(limit).Offset(offset).Find(&incomes))

	view.Render(w, r, "income/index.html", map[string]any{
		"Incomes": incomes,
		"Period":  string(key),
		"Sum":     sum,
		"Page":    page,
		"Total":   total,
		"Limit":   limit,
	})
}

func (h *IncomeHandler) New(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "income/new.html", nil)
}

// Create records manually entered income. Invoice-linked rows are created
// by the invoice service only.
func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	v := make(validation.Violations)
	amount := formFloat(r, "amount")
	date := validation.Date("date", r.FormValue("date"), v)

	income := models.Income{
		UserID:      userID,
		Source:      r.FormValue("source"),
		Description: r.FormValue("description"),
		Amount:      amount,
		IsRecurring: formBool(r, "is_recurring"),
	}
	if date != nil {
		income.Date = *date
	} else {
		v["date"] = "required"
	}

	validation.Required("source", income.Source, v)
	validation.PositiveFloat("amount", amount, v)

	if !v.Empty() {
		view.Render(w, r, "income/new.html", map[string]any{
			"Income": income,
			"Errors": v,
		})
		return
	}

	if err := h.db.Create(&income).Error; err != nil {
		http.Error(w, "Failed to create income", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/income", http.StatusSeeOther)
}

// Delete removes a manual income row. Auto-synced rows follow their
// invoice and cannot be deleted directly.
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var income models.Income
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if income.IsAutoSynced() {
		http.Error(w, "Invoice income cannot be deleted", http.StatusForbidden)
		return
	}

	if err := h.db.Delete(&income).Error; err != nil {
		http.Error(w, "Failed to delete income", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/income", http.StatusSeeOther)
}
