package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskStatuses lists the valid task statuses in board order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone,
}

// TaskPriorities lists the valid priorities from lowest to highest.
var TaskPriorities = []TaskPriority{
	TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent,
}

// Task represents a unit of work, optionally attached to a project.
type Task struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	ProjectID *uint    `gorm:"index" json:"project_id,omitempty"`
	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"project,omitempty"`

	Title          string       `gorm:"size:255;not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	Status         TaskStatus   `gorm:"size:20;default:'todo'" json:"status"`
	Priority       TaskPriority `gorm:"size:20;default:'medium'" json:"priority"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty"`
}

// GetUserID implements the Ownable interface.
func (t *Task) GetUserID() uint {
	return t.UserID
}

// IsDone reports whether the task has reached its terminal status.
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}
