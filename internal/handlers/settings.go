package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

// SettingsHandler manages the company identity shown on invoices.
type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(conn *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: conn}
}

func (h *SettingsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var profile models.UserProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "settings.html", map[string]any{
		"Profile": profile,
	})
}

// Update upserts the single profile row for the user.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var profile models.UserProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}
	profile.UserID = userID

	profile.CompanyName = r.FormValue("company_name")
	profile.CompanyTagline = r.FormValue("company_tagline")
	profile.CompanyEmail = r.FormValue("company_email")
	profile.CompanyPhone = r.FormValue("company_phone")
	profile.CompanyAddress = r.FormValue("company_address")
	profile.CompanyWebsite = r.FormValue("company_website")
	profile.CompanySIRET = r.FormValue("company_siret")

	if err := h.db.Save(&profile).Error; err != nil {
		view.Render(w, r, "settings.html", map[string]any{
			"Profile": profile,
			"Error":   "Failed to save settings",
		})
		return
	}

	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
