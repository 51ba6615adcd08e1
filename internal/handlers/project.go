package handlers

import (
	"net/http"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/validation"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	db *gorm.DB
}

func NewProjectHandler(conn *gorm.DB) *ProjectHandler {
	return &ProjectHandler{db: conn}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	status := r.URL.Query().Get("status")
	page, offset, limit := pageParam(r)

	var projects []models.Project
	var total int64

	scoped := h.db.Where("user_id = ?", userID)
	if status != "" {
		scoped = scoped.Where("status = ?", status)
	}

	scoped.Model(&models.Project{}).Count(&total)
	logged(r, scoped.Preload("Client").Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects))

	view.Render(w, r, "projects/index.html", map[string]any{
		"Projects": projects,
		"Status":   status,
		"Statuses": models.ProjectStatuses,
		"Page":     page,
		"Total":    total,
		"Limit":    limit,
	})
}

func (h *ProjectHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var clients []models.Client
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&clients))

	view.Render(w, r, "projects/new.html", map[string]any{
		"Clients":  clients,
		"Statuses": models.ProjectStatuses,
	})
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	v := make(validation.Violations)
	project := models.Project{
		UserID:      userID,
		ClientID:    h.ownedClientID(userID, formUintPtr(r, "client_id")),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Status:      models.ProjectStatus(r.FormValue("status")),
		FixedPrice:  formFloatPtr(r, "fixed_price"),
		Budget:      formFloatPtr(r, "budget"),
		HourlyRate:  formFloatPtr(r, "hourly_rate"),
		StartDate:   validation.Date("start_date", r.FormValue("start_date"), v),
		EndDate:     validation.Date("end_date", r.FormValue("end_date"), v),
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusDraft
	}

	validation.Required("name", project.Name, v)
	if !validProjectStatus(project.Status) {
		v["status"] = "invalid"
	}

	if !v.Empty() {
		h.renderForm(w, r, "projects/new.html", project, v, "")
		return
	}

	if err := h.db.Create(&project).Error; err != nil {
		h.renderForm(w, r, "projects/new.html", project, nil, "Failed to create project")
		return
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

func (h *ProjectHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var project models.Project
	if err := h.db.Preload("Client").Where("id = ? AND user_id = ?", id, userID).First(&project).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	var tasks []models.Task
	logged(r, h.db.Where("user_id = ? AND project_id = ?", userID, project.ID).Order("created_at DESC").Find(&tasks))

	var entries []models.TimeEntry
	logged(r, h.db.Where("user_id = ? AND project_id = ?", userID, project.ID).Order("started_at DESC").Limit(20).Find(&entries))

	var trackedMinutes int64
	h.db.Model(&models.TimeEntry{}).
		Where("user_id = ? AND project_id = ? AND duration_minutes IS NOT NULL", userID, project.ID).
		Select("COALESCE(SUM(duration_minutes), 0)").Scan(&trackedMinutes)

	view.Render(w, r, "projects/view.html", map[string]any{
		"Project":        project,
		"Tasks":          tasks,
		"TimeEntries":    entries,
		"TrackedMinutes": trackedMinutes,
	})
}

func (h *ProjectHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var project models.Project
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&project).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	var clients []models.Client
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&clients))

	view.Render(w, r, "projects/edit.html", map[string]any{
		"Project":  project,
		"Clients":  clients,
		"Statuses": models.ProjectStatuses,
	})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var project models.Project
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&project).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	v := make(validation.Violations)
	project.ClientID = h.ownedClientID(userID, formUintPtr(r, "client_id"))
	project.Name = r.FormValue("name")
	project.Description = r.FormValue("description")
	project.Status = models.ProjectStatus(r.FormValue("status"))
	project.FixedPrice = formFloatPtr(r, "fixed_price")
	project.Budget = formFloatPtr(r, "budget")
	project.HourlyRate = formFloatPtr(r, "hourly_rate")
	project.StartDate = validation.Date("start_date", r.FormValue("start_date"), v)
	project.EndDate = validation.Date("end_date", r.FormValue("end_date"), v)

	validation.Required("name", project.Name, v)
	if !validProjectStatus(project.Status) {
		v["status"] = "invalid"
	}

	if !v.Empty() {
		h.renderForm(w, r, "projects/edit.html", project, v, "")
		return
	}

	if err := h.db.Save(&project).Error; err != nil {
		h.renderForm(w, r, "projects/edit.html", project, nil, "Failed to update project")
		return
	}

	http.Redirect(w, r, "/projects/"+id, http.StatusSeeOther)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Project{}).Error; err != nil {
		http.Error(w, "Failed to delete project", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// ownedClientID drops a client reference that does not belong to the user.
func (h *ProjectHandler) ownedClientID(userID uint, clientID *uint) *uint {
	if clientID == nil {
		return nil
	}
	var count int64
	h.db.Model(&models.Client{}).Where("id = ? AND user_id = ?", *clientID, userID).Count(&count)
	if count == 0 {
		return nil
	}
	return clientID
}

func (h *ProjectHandler) renderForm(w http.ResponseWriter, r *http.Request, tpl string, project models.Project, v validation.Violations, errMsg string) {
	var clients []models.Client
	logged(r, h.db.Where("user_id = ?", project.UserID).Order("name").Find(&clients))

	data := map[string]any{
		"Project":  project,
		"Clients":  clients,
		"Statuses": models.ProjectStatuses,
	}
	if len(v) > 0 {
		data["Errors"] = v
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	view.Render(w, r, tpl, data)
}

func validProjectStatus(s models.ProjectStatus) bool {
	for _, v := range models.ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}
