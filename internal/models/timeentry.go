package models

import (
	"time"

	"gorm.io/gorm"
)

// TimeEntry represents a tracked block of work time. An entry with a nil
// EndedAt is a running timer; DurationMinutes stays nil until the timer
// stops. At most one running entry exists per user, enforced by the timer
// service rather than a storage constraint.
type TimeEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	ProjectID *uint    `gorm:"index" json:"project_id,omitempty"`
	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"project,omitempty"`
	TaskID    *uint    `gorm:"index" json:"task_id,omitempty"`
	Task      *Task    `gorm:"foreignKey:TaskID;constraint:OnDelete:SET NULL" json:"task,omitempty"`

	Description     string     `gorm:"size:500" json:"description,omitempty"`
	StartedAt       time.Time  `gorm:"not null;index" json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	IsBillable      bool       `gorm:"default:true" json:"is_billable"`
}

// GetUserID implements the Ownable interface.
func (e *TimeEntry) GetUserID() uint {
	return e.UserID
}

// IsRunning reports whether the timer is still open.
func (e *TimeEntry) IsRunning() bool {
	return e.EndedAt == nil
}

// Duration returns the entry duration. Running entries are measured
// against now.
func (e *TimeEntry) Duration(now time.Time) time.Duration {
	if e.EndedAt != nil {
		return e.EndedAt.Sub(e.StartedAt)
	}
	return now.Sub(e.StartedAt)
}
