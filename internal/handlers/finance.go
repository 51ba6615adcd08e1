package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/period"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

type FinanceHandler struct {
	db      *gorm.DB
	service *services.FinanceService
}

func NewFinanceHandler(conn *gorm.DB, service *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{db: conn, service: service}
}

// Dashboard renders the finance overview for the selected period.
func (h *FinanceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	key := period.ParseKey(r.URL.Query().Get("period"))
	now := time.Now()

	summary, err := h.service.Summarize(r.Context(), userID, key, now)
	if err != nil {
		http.Error(w, "Failed to load summary", http.StatusInternalServerError)
		return
	}

	var recentExpenses []models.Expense
	if err := h.db.Preload("Category").Where("user_id = ?", userID).
		Order("date DESC").Limit(5).Find(&recentExpenses).Error; err != nil {
		slog.ErrorContext(r.Context(), "failed to load recent expenses", "error", err)
	}

	var recentIncome []models.Income
	if err := h.db.Where("user_id = ?", userID).
		Order("date DESC").Limit(5).Find(&recentIncome).Error; err != nil {
		slog.ErrorContext(r.Context(), "failed to load recent income", "error", err)
	}

	var openDebts []models.Debt
	if err := h.db.Where("user_id = ? AND status IN ?", userID,
		[]models.DebtStatus{models.DebtStatusPending, models.DebtStatusPartial}).
		Order("due_date IS NULL, due_date").Limit(5).Find(&openDebts).Error; err != nil {
		slog.ErrorContext(r.Context(), "failed to load open debts", "error", err)
	}

	view.Render(w, r, "finance/dashboard.html", map[string]any{
		"Summary":        summary,
		"Period":         string(key),
		"RecentExpenses": recentExpenses,
		"RecentIncome":   recentIncome,
		"OpenDebts":      openDebts,
	})
}
