package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusPaused    ProjectStatus = "paused"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// ProjectStatuses lists the valid project statuses in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusDraft, ProjectStatusActive, ProjectStatusPaused, ProjectStatusCompleted,
}

// Project represents an engagement for a client.
type Project struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	ClientID *uint   `gorm:"index" json:"client_id,omitempty"`
	Client   *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"client,omitempty"`

	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Status      ProjectStatus `gorm:"size:20;default:'draft'" json:"status"`

	// FixedPrice and Budget are mutually informative: the expected value of
	// the project is FixedPrice when set, else Budget.
	FixedPrice *float64 `json:"fixed_price,omitempty"`
	Budget     *float64 `json:"budget,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// GetUserID implements the Ownable interface.
func (p *Project) GetUserID() uint {
	return p.UserID
}

// ExpectedValue returns the amount the project is expected to bring in:
// the fixed price when set, else the budget, else zero.
func (p *Project) ExpectedValue() float64 {
	if p.FixedPrice != nil {
		return *p.FixedPrice
	}
	if p.Budget != nil {
		return *p.Budget
	}
	return 0
}

// IsOpen reports whether the project counts toward projected revenue.
func (p *Project) IsOpen() bool {
	return p.Status == ProjectStatusActive || p.Status == ProjectStatusDraft
}
