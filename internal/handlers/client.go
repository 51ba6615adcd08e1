package handlers

import (
	"net/http"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/validation"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(conn *gorm.DB) *ClientHandler {
	return &ClientHandler{db: conn}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	query := r.URL.Query().Get("q")
	page, offset, limit := pageParam(r)

	var clients []models.Client
	var total int64

	scoped := h.db.Where("user_id = ?", userID)
	if query != "" {
		like := "%" + query + "%"
		scoped = scoped.Where("LOWER(name) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?)", like, like)
	}

	scoped.Model(&models.Client{}).Count(&total)
	logged(r, scoped.Order("name").Limit(limit).Offset(offset).Find(&clients))

	view.Render(w, r, "clients/index.html", map[string]any{
		"Clients": clients,
		"Query":   query,
		"Page":    page,
		"Total":   total,
		"Limit":   limit,
	})
}

func (h *ClientHandler) New(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "clients/new.html", nil)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	client := models.Client{
		UserID:  userID,
		Name:    r.FormValue("name"),
		Company: r.FormValue("company"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Address: r.FormValue("address"),
		Notes:   r.FormValue("notes"),
	}

	v := make(validation.Violations)
	validation.Required("name", client.Name, v)

	if !v.Empty() {
		view.Render(w, r, "clients/new.html", map[string]any{
			"Client": client,
			"Errors": v,
		})
		return
	}

	if err := h.db.Create(&client).Error; err != nil {
		view.Render(w, r, "clients/new.html", map[string]any{
			"Client": client,
			"Error":  "Failed to create client",
		})
		return
	}

	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

func (h *ClientHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var client models.Client
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	var projects []models.Project
	logged(r, h.db.Where("user_id = ? AND client_id = ?", userID, client.ID).Order("created_at DESC").Find(&projects))

	var invoices []models.Invoice
	logged(r, h.db.Where("user_id = ? AND client_id = ?", userID, client.ID).Order("issue_date DESC").Find(&invoices))

	view.Render(w, r, "clients/view.html", map[string]any{
		"Client":   client,
		"Projects": projects,
		"Invoices": invoices,
	})
}

func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var client models.Client
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	view.Render(w, r, "clients/edit.html", map[string]any{
		"Client": client,
	})
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var client models.Client
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	client.Name = r.FormValue("name")
	client.Company = r.FormValue("company")
	client.Email = r.FormValue("email")
	client.Phone = r.FormValue("phone")
	client.Address = r.FormValue("address")
	client.Notes = r.FormValue("notes")

	v := make(validation.Violations)
	validation.Required("name", client.Name, v)

	if !v.Empty() {
		view.Render(w, r, "clients/edit.html", map[string]any{
			"Client": client,
			"Errors": v,
		})
		return
	}

	if err := h.db.Save(&client).Error; err != nil {
		view.Render(w, r, "clients/edit.html", map[string]any{
			"Client": client,
			"Error":  "Failed to update client",
		})
		return
	}

	http.Redirect(w, r, "/clients/"+id, http.StatusSeeOther)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Client{}).Error; err != nil {
		http.Error(w, "Failed to delete client", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}
