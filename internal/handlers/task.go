package handlers

import (
	"net/http"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/validation"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db *gorm.DB
}

func NewTaskHandler(conn *gorm.DB) *TaskHandler {
	return &TaskHandler{db: conn}
}

// List renders the task board grouped by status columns.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	scoped := h.db.Where("user_id = ?", userID)
	if pid := r.URL.Query().Get("project_id"); pid != "" {
		scoped = scoped.Where("project_id = ?", pid)
	}

	var tasks []models.Task
	logged(r, scoped.Preload("Project").Order("due_date IS NULL, due_date, created_at DESC").Find(&tasks))

	board := make(map[models.TaskStatus][]models.Task, len(models.TaskStatuses))
	for _, t := range tasks {
		board[t.Status] = append(board[t.Status], t)
	}

	var projects []models.Project
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&projects))

	view.Render(w, r, "tasks/index.html", map[string]any{
		"Board":     board,
		"Statuses":  models.TaskStatuses,
		"Projects":  projects,
		"ProjectID": r.URL.Query().Get("project_id"),
	})
}

func (h *TaskHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var projects []models.Project
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&projects))

	view.Render(w, r, "tasks/new.html", map[string]any{
		"Projects":   projects,
		"Statuses":   models.TaskStatuses,
		"Priorities": models.TaskPriorities,
	})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	v := make(validation.Violations)
	task := models.Task{
		UserID:         userID,
		ProjectID:      h.ownedProjectID(userID, formUintPtr(r, "project_id")),
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		Status:         models.TaskStatus(r.FormValue("status")),
		Priority:       models.TaskPriority(r.FormValue("priority")),
		DueDate:        validation.Date("due_date", r.FormValue("due_date"), v),
		EstimatedHours: formFloatPtr(r, "estimated_hours"),
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	validation.Required("title", task.Title, v)
	if !validTaskStatus(task.Status) {
		v["status"] = "invalid"
	}
	if !validTaskPriority(task.Priority) {
		v["priority"] = "invalid"
	}

	if !v.Empty() {
		var projects []models.Project
		logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&projects))
		view.Render(w, r, "tasks/new.html", map[string]any{
			"Task":       task,
			"Projects":   projects,
			"Statuses":   models.TaskStatuses,
			"Priorities": models.TaskPriorities,
			"Errors":     v,
		})
		return
	}

	if err := h.db.Create(&task).Error; err != nil {
		http.Error(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var task models.Task
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	var projects []models.Project
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&projects))

	view.Render(w, r, "tasks/edit.html", map[string]any{
		"Task":       task,
		"Projects":   projects,
		"Statuses":   models.TaskStatuses,
		"Priorities": models.TaskPriorities,
	})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var task models.Task
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	v := make(validation.Violations)
	task.ProjectID = h.ownedProjectID(userID, formUintPtr(r, "project_id"))
	task.Title = r.FormValue("title")
	task.Description = r.FormValue("description")
	task.Status = models.TaskStatus(r.FormValue("status"))
	task.Priority = models.TaskPriority(r.FormValue("priority"))
	task.DueDate = validation.Date("due_date", r.FormValue("due_date"), v)
	task.EstimatedHours = formFloatPtr(r, "estimated_hours")

	validation.Required("title", task.Title, v)
	if !validTaskStatus(task.Status) {
		v["status"] = "invalid"
	}
	if !validTaskPriority(task.Priority) {
		v["priority"] = "invalid"
	}

	if !v.Empty() {
		var projects []models.Project
		logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&projects))
		view.Render(w, r, "tasks/edit.html", map[string]any{
			"Task":       task,
			"Projects":   projects,
			"Statuses":   models.TaskStatuses,
			"Priorities": models.TaskPriorities,
			"Errors":     v,
		})
		return
	}

	if err := h.db.Save(&task).Error; err != nil {
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// UpdateStatus moves a task between board columns without a full edit.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	status := models.TaskStatus(r.FormValue("status"))
	if !validTaskStatus(status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	res := h.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if res.Error != nil {
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{}).Error; err != nil {
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *TaskHandler) ownedProjectID(userID uint, projectID *uint) *uint {
	if projectID == nil {
		return nil
	}
	var count int64
	h.db.Model(&models.Project{}).Where("id = ? AND user_id = ?", *projectID, userID).Count(&count)
	if count == 0 {
		return nil
	}
	return projectID
}

func validTaskStatus(s models.TaskStatus) bool {
	for _, v := range models.TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func validTaskPriority(p models.TaskPriority) bool {
	for _, v := range models.TaskPriorities {
		if v == p {
			return true
		}
	}
	return false
}
