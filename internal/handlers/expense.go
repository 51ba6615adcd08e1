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

type ExpenseHandler struct {
	db *gorm.DB
}

func NewExpenseHandler(conn *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{db: conn}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	key := period.ParseKey(r.URL.Query().Get("period"))
	page, offset, limit := pageParam(r)

	scoped := h.db.Where("user_id = ?", userID)
	if rng := period.Resolve(key, time.Now()); rng != nil {
		scoped = scoped.Where("date >= ? AND date < ?", rng.Start, rng.End.AddDate(0, 0, 1))
	}
	if cid := r.URL.Query().Get("category_id"); cid != "" {
		scoped = scoped.Where("category_id = ?", cid)
	}

	var expenses []models.Expense
	var total int64
	var sum float64
	scoped.Model(&models.Expense{}).Count(&total)
	scoped.Model(&models.Expense{}).Select("COALESCE(SUM(amount), 0)").Scan(&sum)
	logged(r, scoped.Preload("Category").Order("date DESC").Limit(limit).Offset(offset).Find(&expenses))

	var categories []models.ExpenseCategory
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&categories))

	view.Render(w, r, "expenses/index.html", map[string]any{
		"Expenses":   expenses,
		"Categories": categories,
		"Methods":    models.PaymentMethods,
		"Period":     string(key),
		"CategoryID": r.URL.Query().Get("category_id"),
		"Sum":        sum,
		"Page":       page,
		"Total":      total,
		"Limit":      limit,
	})
}

func (h *ExpenseHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var categories []models.ExpenseCategory
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&categories))

	view.Render(w, r, "expenses/new.html", map[string]any{
		"Categories": categories,
		"Methods":    models.PaymentMethods,
	})
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	v := make(validation.Violations)
	date := validation.Date("date", r.FormValue("date"), v)
	amount := formFloat(r, "amount")

	expense := models.Expense{
		UserID:        userID,
		CategoryID:    h.ownedCategoryID(userID, formUintPtr(r, "category_id")),
		Description:   r.FormValue("description"),
		Amount:        amount,
		PaymentMethod: models.PaymentMethod(r.FormValue("payment_method")),
		IsBusiness:    formBool(r, "is_business"),
		Notes:         r.FormValue("notes"),
	}
	if expense.PaymentMethod == "" {
		expense.PaymentMethod = models.PaymentMethodCard
	}
	if date != nil {
		expense.Date = *date
	} else {
		v["date"] = "required"
	}

	validation.Required("description", expense.Description, v)
	validation.PositiveFloat("amount", amount, v)
	if !models.ValidPaymentMethod(expense.PaymentMethod) {
		v["payment_method"] = "invalid"
	}

	if !v.Empty() {
		var categories []models.ExpenseCategory
		logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&categories))
		view.Render(w, r, "expenses/new.html", map[string]any{
			"Expense":    expense,
			"Categories": categories,
			"Methods":    models.PaymentMethods,
			"Errors":     v,
		})
		return
	}

	if err := h.db.Create(&expense).Error; err != nil {
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (h *ExpenseHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var expense models.Expense
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	var categories []models.ExpenseCategory
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&categories))

	view.Render(w, r, "expenses/edit.html", map[string]any{
		"Expense":    expense,
		"Categories": categories,
		"Methods":    models.PaymentMethods,
	})
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var expense models.Expense
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	v := make(validation.Violations)
	date := validation.Date("date", r.FormValue("date"), v)
	amount := formFloat(r, "amount")

	expense.CategoryID = h.ownedCategoryID(userID, formUintPtr(r, "category_id"))
	expense.Description = r.FormValue("description")
	expense.Amount = amount
	expense.PaymentMethod = models.PaymentMethod(r.FormValue("payment_method"))
	expense.IsBusiness = formBool(r, "is_business")
	expense.Notes = r.FormValue("notes")
	if date != nil {
		expense.Date = *date
	}

	validation.Required("description", expense.Description, v)
	validation.PositiveFloat("amount", amount, v)
	if !models.ValidPaymentMethod(expense.PaymentMethod) {
		v["payment_method"] = "invalid"
	}

	if !v.Empty() {
		var categories []models.ExpenseCategory
		logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&categories))
		view.Render(w, r, "expenses/edit.html", map[string]any{
			"Expense":    expense,
			"Categories": categories,
			"Methods":    models.PaymentMethods,
			"Errors":     v,
		})
		return
	}

	if err := h.db.Save(&expense).Error; err != nil {
		http.Error(w, "Failed to update expense", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{}).Error; err != nil {
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

// CreateCategory adds a custom expense category on top of the seeded ones.
func (h *ExpenseHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	name := r.FormValue("name")
	if name == "" {
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
		return
	}

	category := models.ExpenseCategory{
		UserID: userID,
		Name:   name,
		Color:  r.FormValue("color"),
		Icon:   r.FormValue("icon"),
	}
	if err := h.db.Create(&category).Error; err != nil {
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

// DeleteCategory removes a custom category. Expenses keep their rows with
// the category reference nulled.
func (h *ExpenseHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	h.db.Model(&models.Expense{}).
		Where("user_id = ? AND category_id = ?", userID, id).
		Update("category_id", nil)

	if err := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ExpenseCategory{}).Error; err != nil {
		http.Error(w, "Failed to delete category", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (h *ExpenseHandler) ownedCategoryID(userID uint, categoryID *uint) *uint {
	if categoryID == nil {
		return nil
	}
	var count int64
	h.db.Model(&models.ExpenseCategory{}).Where("id = ? AND user_id = ?", *categoryID, userID).Count(&count)
	if count == 0 {
		return nil
	}
	return categoryID
}
