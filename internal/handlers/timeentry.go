package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

type TimeEntryHandler struct {
	db    *gorm.DB
	timer *services.TimerService
}

func NewTimeEntryHandler(conn *gorm.DB, timer *services.TimerService) *TimeEntryHandler {
	return &TimeEntryHandler{db: conn, timer: timer}
}

func (h *TimeEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	page, offset, limit := pageParam(r)

	scoped := h.db.Where("user_id = ?", userID)
	if pid := r.URL.Query().Get("project_id"); pid != "" {
		scoped = scoped.Where("project_id = ?", pid)
	}

	var entries []models.TimeEntry
	var total int64
	scoped.Model(&models.TimeEntry{}).Count(&total)
	logged(r, scoped.Preload("Project").Preload("Task").
		Order("started_at DESC").Limit(limit).Offset(offset).Find(&entries))

	running, err := h.timer.Running(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load timer", http.StatusInternalServerError)
		return
	}

	var projects []models.Project
	logged(r, h.db.Where("user_id = ?", userID).Order("name").Find(&projects))

	view.Render(w, r, "time/index.html", map[string]any{
		"Entries":  entries,
		"Running":  running,
		"Projects": projects,
		"Page":     page,
		"Total":    total,
		"Limit":    limit,
	})
}

// Start opens a new running timer. At most one timer runs per user.
func (h *TimeEntryHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	entry := models.TimeEntry{
		UserID:      userID,
		ProjectID:   formUintPtr(r, "project_id"),
		TaskID:      formUintPtr(r, "task_id"),
		Description: r.FormValue("description"),
		IsBillable:  true,
	}
	if r.FormValue("is_billable") != "" {
		entry.IsBillable = formBool(r, "is_billable")
	}

	if err := h.timer.Start(r.Context(), &entry, time.Now()); err != nil {
		if errors.Is(err, services.ErrTimerRunning) {
			http.Redirect(w, r, "/time?error=timer_running", http.StatusSeeOther)
			return
		}
		http.Error(w, "Failed to start timer", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/time", http.StatusSeeOther)
}

// Stop closes a running timer and records its duration.
func (h *TimeEntryHandler) Stop(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	_, err = h.timer.Stop(r.Context(), userID, uint(id), time.Now())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, services.ErrTimerNotRunning):
		http.Redirect(w, r, "/time?error=not_running", http.StatusSeeOther)
		return
	case err != nil:
		http.Error(w, "Failed to stop timer", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/time", http.StatusSeeOther)
}

// Create records a finished block of time entered by hand.
func (h *TimeEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	startedAt, err1 := time.ParseInLocation("2006-01-02T15:04", r.FormValue("started_at"), time.Local)
	endedAt, err2 := time.ParseInLocation("2006-01-02T15:04", r.FormValue("ended_at"), time.Local)
	if err1 != nil || err2 != nil || !endedAt.After(startedAt) {
		http.Redirect(w, r, "/time?error=invalid_range", http.StatusSeeOther)
		return
	}

	minutes := int(endedAt.Sub(startedAt).Minutes())
	entry := models.TimeEntry{
		UserID:          userID,
		ProjectID:       formUintPtr(r, "project_id"),
		TaskID:          formUintPtr(r, "task_id"),
		Description:     r.FormValue("description"),
		StartedAt:       startedAt,
		EndedAt:         &endedAt,
		DurationMinutes: &minutes,
		IsBillable:      formBool(r, "is_billable"),
	}

	if err := h.db.Create(&entry).Error; err != nil {
		http.Error(w, "Failed to create time entry", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/time", http.StatusSeeOther)
}

func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.TimeEntry{}).Error; err != nil {
		http.Error(w, "Failed to delete time entry", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/time", http.StatusSeeOther)
}
